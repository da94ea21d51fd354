// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit one file to rename the
// command, its home directory and its environment prefix.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	ScratchPrefix string `yaml:"scratch_prefix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "t2-create-block",
			DisplayName:   "T2 Create Block",
			Description:   "Scaffold WordPress block plugins from block templates",
			HomeDir:       ".t2-create-block",
			EnvPrefix:     "T2_CREATE_BLOCK",
			ScratchPrefix: "t2-create-block-",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "t2-create-block").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".t2-create-block").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "T2_CREATE_BLOCK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ScratchPrefix returns the name prefix for temporary template checkouts.
func ScratchPrefix() string { load(); return defaults.ScratchPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("template") → "T2_CREATE_BLOCK_TEMPLATE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
