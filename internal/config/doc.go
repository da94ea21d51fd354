// Package config manages user-level settings stored at ~/.t2-create-block/config.yaml.
// Settings provide fallbacks for the default template, namespace, category and
// output directory; every key can also be set through a T2_CREATE_BLOCK_*
// environment variable.
package config
