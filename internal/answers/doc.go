// Package answers builds the final answer set that a block template is
// rendered with. Answers come from four layers merged by strict precedence:
// global defaults, template defaults, command-line flags and interactive
// prompt answers. The package also owns the prompt descriptors and the slug
// and namespace format check.
package answers
