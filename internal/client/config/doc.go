// Package config loads runtime settings for the GigLine CLI from layered
// sources: built-in defaults, the environment (including a .env file),
// an optional JSON file and command-line flags, in that order of
// precedence (later wins).
package config
