// Package prompt collects answers interactively on a line-oriented terminal.
// Free-text questions show their default in brackets; list questions are
// numbered menus. Validators re-ask the same question until the input passes.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// ErrInputClosed is returned when the input ends before every question was answered.
var ErrInputClosed = errors.New("input closed before all questions were answered")

// Descriptor describes a single question.
type Descriptor struct {
	Name     string
	Message  string
	Choices  []string            // non-empty turns the question into a numbered menu
	Validate func(string) error  // optional; a non-nil error re-asks the question
	Filter   func(string) string // optional; applied before validation
	Default  string
}

// Asker reads answers from In and writes questions to Out.
type Asker struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates an Asker over the given reader and writer.
func New(r io.Reader, w io.Writer) *Asker {
	return &Asker{in: bufio.NewReader(r), out: w}
}

// Ask walks the descriptors in order and returns name → answer.
func (a *Asker) Ask(descriptors []Descriptor) (map[string]string, error) {
	answers := make(map[string]string, len(descriptors))
	for _, d := range descriptors {
		var (
			value string
			err   error
		)
		if len(d.Choices) > 0 {
			value, err = a.choose(d)
		} else {
			value, err = a.input(d)
		}
		if err != nil {
			return nil, err
		}
		answers[d.Name] = value
	}
	return answers, nil
}

// input asks a free-text question until the answer passes validation.
func (a *Asker) input(d Descriptor) (string, error) {
	for {
		if d.Default != "" {
			fmt.Fprintf(a.out, "? %s (%s) ", d.Message, d.Default)
		} else {
			fmt.Fprintf(a.out, "? %s ", d.Message)
		}

		line, err := a.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			line = d.Default
		}
		if d.Filter != nil {
			line = d.Filter(line)
		}
		if d.Validate != nil {
			if verr := d.Validate(line); verr != nil {
				fmt.Fprintf(a.out, ">> %s\n", verr)
				continue
			}
		}
		return line, nil
	}
}

// choose presents a numbered list and returns the selected value. The
// answer may be the item number or the item itself; an empty answer picks
// the default when it is one of the choices.
func (a *Asker) choose(d Descriptor) (string, error) {
	for {
		fmt.Fprintf(a.out, "? %s\n", d.Message)
		for i, item := range d.Choices {
			marker := " "
			if item == d.Default {
				marker = "*"
			}
			fmt.Fprintf(a.out, " %s %d) %s\n", marker, i+1, item)
		}
		fmt.Fprintf(a.out, "Enter number [1-%d]: ", len(d.Choices))

		line, err := a.readLine()
		if err != nil {
			return "", err
		}

		if value, ok := pick(d, line); ok {
			return value, nil
		}
		fmt.Fprintf(a.out, ">> invalid selection %q: choose 1-%d\n", line, len(d.Choices))
	}
}

func pick(d Descriptor, line string) (string, bool) {
	if line == "" {
		if slices.Contains(d.Choices, d.Default) {
			return d.Default, true
		}
		return "", false
	}
	if num, err := strconv.Atoi(line); err == nil {
		if num < 1 || num > len(d.Choices) {
			return "", false
		}
		return d.Choices[num-1], true
	}
	if slices.Contains(d.Choices, line) {
		return line, true
	}
	return "", false
}

// readLine returns the next trimmed line. A final line without a newline is
// still accepted; an empty read at EOF yields ErrInputClosed.
func (a *Asker) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
