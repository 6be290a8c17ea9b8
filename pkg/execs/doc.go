// Package execs executes external scheduler commands, as defined by the
// experiment configuration.
//
// It owns environment construction for the spawned process and captures the
// process output for the caller. It has no submission policy of its own; the
// submit package decides what to run and with which arguments.
package execs
