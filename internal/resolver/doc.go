// Package resolver turns a template identifier into a materialized block
// template.
//
// Resolution walks an ordered list of strategies: the built-in registry,
// a local directory or manifest, a git repository and finally the npm
// registry. Each strategy answers with a tagged Result so expected absence
// is never signalled through an error. The first strategy that finds a
// definition wins; a fatal result stops the walk.
package resolver
