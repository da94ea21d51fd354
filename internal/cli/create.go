package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/t2-labs/create-block/internal/answers"
	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/builtin"
	"github.com/t2-labs/create-block/internal/config"
	"github.com/t2-labs/create-block/internal/output"
	"github.com/t2-labs/create-block/internal/prompt"
	"github.com/t2-labs/create-block/internal/resolver"
	"github.com/t2-labs/create-block/internal/scaffold"
)

var (
	createTemplate    string
	createNamespace   string
	createTitle       string
	createDescription string
	createCategory    string
	createOutputDir   string
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&createTemplate, "template", "t", "", `Block template: a built-in name, a local path, a git URL or an npm package (default "`+builtin.DefaultTemplate+`")`)
	f.StringVar(&createNamespace, "namespace", "", "Internal namespace for the block name")
	f.StringVar(&createTitle, "title", "", "Display title for the block")
	f.StringVar(&createDescription, "short-description", "", "Short description for the block")
	f.StringVar(&createCategory, "category", "", "Category name for the block")
	f.StringVar(&createOutputDir, "output-dir", "", "Directory the block folder is created in (default: current directory)")
}

// templateResolver resolves a template identifier.
type templateResolver interface {
	Resolve(ctx context.Context, id string) (*blocktemplate.BlockTemplate, error)
}

// blockWriter writes a rendered block.
type blockWriter interface {
	Write(ctx context.Context, tmpl *blocktemplate.BlockTemplate, set answers.Set) (*scaffold.Result, error)
}

// createOptions are the inputs of one scaffold run.
type createOptions struct {
	Slug     string
	Template string
	// Settings are user config defaults, applied below Flags.
	Settings answers.Set
	// Flags holds the answers given on the command line.
	Flags answers.Set
}

// createEnv holds the collaborators of runCreate.
type createEnv struct {
	In          io.Reader
	Out         io.Writer
	Printer     *output.Printer
	Interactive bool
	Resolver    templateResolver
	Writer      blockWriter
}

func runRoot(cmd *cobra.Command, args []string) error {
	config.Load()
	logger := output.NewLogger(cmd.ErrOrStderr(), flagVerbose)

	opts := createOptions{
		Template: firstNonEmpty(createTemplate, config.Get(config.KeyTemplate), builtin.DefaultTemplate),
		Settings: answers.Set{
			answers.KeyNamespace: config.Get(config.KeyNamespace),
			answers.KeyCategory:  config.Get(config.KeyCategory),
		},
		Flags: answers.Set{
			answers.KeyNamespace:   createNamespace,
			answers.KeyTitle:       createTitle,
			answers.KeyDescription: createDescription,
			answers.KeyCategory:    createCategory,
		},
	}
	if len(args) == 1 {
		opts.Slug = args[0]
	}

	env := &createEnv{
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Printer:     newPrinter(cmd),
		Interactive: output.IsInteractive(cmd.InOrStdin()),
		Resolver:    resolver.New(builtin.Registry(), resolver.Options{Logger: logger}),
		Writer:      scaffold.NewWriter(firstNonEmpty(createOutputDir, config.Get(config.KeyOutputDir)), logger),
	}
	return runCreate(cmd.Context(), opts, env)
}

// runCreate resolves the template, collects answers and writes the block.
func runCreate(ctx context.Context, opts createOptions, env *createEnv) error {
	flags, err := answers.Merge(opts.Settings, opts.Flags)
	if err != nil {
		return err
	}
	given := answers.Compact(opts.Flags)
	if opts.Slug != "" {
		given[answers.KeySlug] = opts.Slug
	}
	supplied, err := answers.Merge(flags, given)
	if err != nil {
		return err
	}
	if err := answers.Validate(supplied); err != nil {
		return err
	}
	if opts.Slug == "" && !env.Interactive {
		return output.NewUserError("No block slug given and input is not a terminal. Pass the slug as an argument to use quick mode.")
	}

	tmpl, err := env.Resolver.Resolve(ctx, opts.Template)
	if err != nil {
		return err
	}
	defaults, err := answers.Merge(answers.Defaults(), tmpl.DefaultValues)
	if err != nil {
		return err
	}

	set, err := collectAnswers(env, opts.Slug, defaults, flags, given)
	if err != nil {
		return err
	}

	p := env.Printer
	root := scaffold.OutputRootName(set.Get(answers.KeyNamespace), set.Get(answers.KeySlug))
	p.Info("")
	p.Info("Creating a new WordPress block in %q folder.", root)

	result, err := env.Writer.Write(ctx, tmpl, set)
	if err != nil {
		return err
	}

	p.Info("")
	p.Success("Done: block %q bootstrapped in the %q folder.", set.Get(answers.KeyTitle), result.OutputDir)
	p.Info("")
	p.Info("Inside that directory, you can run:")
	p.Code("npm install")
	p.Code("npm start")
	p.Info("")
	p.Info("Code is Poetry")
	return nil
}

// collectAnswers builds the final answer set, in quick mode when a slug was
// given and from interactive questions otherwise.
func collectAnswers(env *createEnv, slug string, defaults, flags, given answers.Set) (answers.Set, error) {
	if slug != "" {
		return answers.QuickMode(defaults, slug, flags)
	}
	shown, err := answers.Merge(defaults, flags)
	if err != nil {
		return nil, err
	}
	collected, err := askAnswers(env, shown, given)
	if err != nil {
		return nil, err
	}
	return answers.Merge(defaults, flags, collected)
}

// askAnswers runs the interactive questions not already answered by flags.
func askAnswers(env *createEnv, defaults, given answers.Set) (answers.Set, error) {
	env.Printer.Info("")
	env.Printer.Info("Let's customize your block:")
	got, err := prompt.New(env.In, env.Out).Ask(answers.Prompts(defaults, given))
	if errors.Is(err, prompt.ErrInputClosed) {
		return nil, output.NewUserError("Input closed before all questions were answered.")
	}
	if err != nil {
		return nil, err
	}
	return answers.Set(got), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
