// Package blocktemplate defines the block template model and turns a
// template definition (where the template files live plus its default
// answers) into a materialized BlockTemplate held fully in memory.
//
// Definitions come either from code (the built-in registry) or from a
// template manifest: a template.yaml, template.json or package.json entry
// point validated against the embedded JSON Schema.
package blocktemplate
