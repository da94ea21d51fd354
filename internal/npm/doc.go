// Package npm talks to the npm registry through the npm command line:
// probing which versions of a package are published, choosing one for a
// semver range and installing it into an isolated prefix with lifecycle
// scripts disabled.
package npm
