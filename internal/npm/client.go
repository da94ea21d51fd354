package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

// InstallFlags keep an install confined to its prefix and stop package
// lifecycle scripts from running.
var InstallFlags = []string{
	"--no-save",
	"--no-package-lock",
	"--ignore-scripts",
	"--no-audit",
	"--no-fund",
}

var (
	// ErrInvalidName is returned for identifiers that are not npm package names.
	ErrInvalidName = errors.New("invalid npm package name")
	// ErrNoMatchingVersion is returned when no published version satisfies a range.
	ErrNoMatchingVersion = errors.New("no published version satisfies the requested range")
)

var namePattern = regexp.MustCompile(`^(@[a-z0-9][a-z0-9._~-]*/)?[a-z0-9][a-z0-9._~-]*$`)

// Client wraps the npm command line.
type Client struct {
	Runner Runner
	Logger zerolog.Logger
}

// NewClient returns a Client backed by the real npm binary.
func NewClient(logger zerolog.Logger) *Client {
	return &Client{Runner: ExecRunner{}, Logger: logger}
}

// ParseIdentifier splits "name@range" into the package name and range. The
// leading @ of a scoped package is part of the name.
func ParseIdentifier(id string) (name, constraint string, err error) {
	name = id
	start := 0
	if strings.HasPrefix(id, "@") {
		start = 1
	}
	if i := strings.Index(id[start:], "@"); i >= 0 {
		name = id[:start+i]
		constraint = id[start+i+1:]
	}
	if len(name) > 214 || !namePattern.MatchString(name) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidName, id)
	}
	return name, constraint, nil
}

// Versions returns the published versions of a package. Any failure,
// including an unknown package, is returned as an error.
func (c *Client) Versions(ctx context.Context, name string) ([]string, error) {
	out, err := c.Runner.Run(ctx, "", "npm", "view", name, "versions", "--json")
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", name, err)
	}
	versions, err := parseVersions(out)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", name, err)
	}
	c.Logger.Debug().Str("package", name).Int("versions", len(versions)).Msg("package found in registry")
	return versions, nil
}

// parseVersions decodes `npm view versions --json` output, which is a bare
// string for a package with a single version and an array otherwise.
func parseVersions(out []byte) ([]string, error) {
	var raw any
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("decoding versions: %w", err)
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		versions := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				versions = append(versions, s)
			}
		}
		if len(versions) == 0 {
			return nil, errors.New("no published versions")
		}
		return versions, nil
	default:
		return nil, fmt.Errorf("unexpected versions payload %T", raw)
	}
}

// SelectVersion returns the highest version satisfying constraint. An empty
// constraint or "latest" picks the highest stable release, falling back to
// the highest pre-release when nothing stable is published.
func SelectVersion(versions []string, constraint string) (string, error) {
	var check *semver.Constraints
	if constraint != "" && constraint != "latest" {
		c, err := semver.NewConstraint(constraint)
		if err != nil {
			return "", fmt.Errorf("parsing version range %q: %w", constraint, err)
		}
		check = c
	}

	var best, bestPre *semver.Version
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if check != nil {
			if check.Check(v) && (best == nil || v.GreaterThan(best)) {
				best = v
			}
			continue
		}
		if v.Prerelease() != "" {
			if bestPre == nil || v.GreaterThan(bestPre) {
				bestPre = v
			}
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}

	if best == nil {
		best = bestPre
	}
	if best == nil {
		if constraint == "" {
			return "", ErrNoMatchingVersion
		}
		return "", fmt.Errorf("%w %q", ErrNoMatchingVersion, constraint)
	}
	return best.Original(), nil
}

// Install installs name@version under prefix and returns the package
// directory.
func (c *Client) Install(ctx context.Context, prefix, name, version string) (string, error) {
	args := append([]string{"install", name + "@" + version}, InstallFlags...)
	args = append(args, "--prefix", prefix)

	c.Logger.Debug().Str("package", name).Str("version", version).Str("prefix", prefix).Msg("installing template package")
	if _, err := c.Runner.Run(ctx, prefix, "npm", args...); err != nil {
		return "", fmt.Errorf("installing %s@%s: %w", name, version, err)
	}

	dir := PackageDir(prefix, name)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("installed package %s not found: %w", name, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("installed package %s is not a directory", name)
	}
	return dir, nil
}

// PackageDir returns where npm places name when installing under prefix.
func PackageDir(prefix, name string) string {
	return filepath.Join(prefix, "node_modules", filepath.FromSlash(name))
}
