// Package scaffold renders a block template against an answer set and
// writes the resulting plugin tree. It powers the root command, producing
// the "<namespace>_<slug>" folder with rendered sources plus raw assets.
// Files are written into a staging directory that replaces the output root
// only once every write succeeded.
package scaffold
