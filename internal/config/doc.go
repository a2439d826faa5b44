// Package config loads wire CLI configuration from local and global YAML
// files with precedence rules. It is internal; CLI code maps flags and files
// into effective settings.
package config
