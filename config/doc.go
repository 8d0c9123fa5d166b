// Package config loads configuration for httpkit consumers from YAML files
// and the environment.
//
// Load reads an optional config.yml, an optional .env file, and the process
// environment (in that order, later sources winning) and unmarshals the
// result into a caller-supplied struct:
//
//	var cfg sparql.Config
//	if err := config.Load("myservice", &cfg); err != nil { ... }
package config
