// Package output provides terminal output, diagnostic logging and exit-code
// handling for the CLI.
//
// # Printer
//
// Printer writes the human-facing progress lines of a scaffold run. Styles
// are lipgloss based and collapse to plain text when the writer is not a
// terminal:
//
//	p := output.NewPrinter(cmd.OutOrStdout(), output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())
//	p.Info("Creating a new WordPress block in %q folder.", dir)
//	p.Success("Done: block %q bootstrapped.", title)
//	p.Code("$ npm start")
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success
//	output.ExitUserError   // 1: recognized configuration error (bad template, invalid slug)
//	output.ExitSystemError // 2: anything else (I/O failure, internal error)
//
// An error is "recognized" when it, or anything it wraps, implements
// UserFacing. Recognized errors are printed as a single message; everything
// else is printed with its full diagnostic.
package output
