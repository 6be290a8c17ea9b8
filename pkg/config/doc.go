// Package config defines the experiment configuration file: the submission
// command, static labels, and the parameter grid to expand.
package config
