// Package config defines the configuration model for pravdactl and loads it
// by layering built-in defaults, the user config file
// (~/.config/pravdactl/config.yaml), and the project config file
// (./.pravdactl/config.yaml), in that order of precedence.
package config
