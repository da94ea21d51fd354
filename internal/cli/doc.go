// Package cli defines the Cobra command tree for the t2-create-block CLI. The
// root command scaffolds a block; each other file registers one subcommand
// (config, doctor, templates, version). Command implementations delegate to
// internal packages for business logic and only handle flag parsing, I/O
// formatting, and user interaction.
package cli
