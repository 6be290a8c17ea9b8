package execs

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	// ErrCommandExecution is returned when command execution fails.
	ErrCommandExecution = errors.New("run")

	// ErrEmptyCommand is returned when a command is empty.
	ErrEmptyCommand = errors.New("empty command")
)

// Result represents the captured output of a command execution.
type Result struct {
	Stdout string
	Stderr string
}

// Command describes an external command and the environment it runs with.
type Command struct {
	baseEnv map[string]string

	// Command is the command to execute.
	Command string `json:"command" jsonschema:"title=Command,pattern=^\\S+$"`
	// Args contains the command line arguments.
	Args []string `json:"args,omitempty" jsonschema:"title=Arguments" yaml:"args,flow,omitempty"`
	// Env contains environment variable definitions.
	Env []EnvVar `json:"env,omitempty" jsonschema:"title=Environment Variables"`
	// EnvFrom contains sources for inheriting environment variables.
	EnvFrom []EnvFromSource `json:"envFrom,omitempty" jsonschema:"title=Environment Variables From"`
}

// NewCommand creates a new [Command].
// It accepts a base environment, which usually will be from [os.Environ].
func NewCommand(baseEnv []string) Command {
	c := Command{
		Env:     []EnvVar{},
		EnvFrom: []EnvFromSource{},
	}
	c.SetBaseEnv(baseEnv)

	return c
}

// SetBaseEnv replaces the base environment of the command.
func (c *Command) SetBaseEnv(baseEnv []string) {
	c.baseEnv = make(map[string]string)
	for _, envVar := range baseEnv {
		if eqIdx := strings.Index(envVar, "="); eqIdx != -1 {
			c.baseEnv[envVar[:eqIdx]] = envVar[eqIdx+1:]
		}
	}
}

// AddEnvVar adds a single environment variable.
func (c *Command) AddEnvVar(envVar EnvVar) {
	c.Env = append(c.Env, envVar)
}

// AddEnvFrom adds environment variable sources.
func (c *Command) AddEnvFrom(envFrom []EnvFromSource) {
	c.EnvFrom = append(c.EnvFrom, envFrom...)
}

// GetEnv constructs the environment for command execution. Only essential
// variables pass through from the base environment; everything else must be
// requested explicitly via Env or EnvFrom.
func (c *Command) GetEnv() []string {
	envMap := make(map[string]string)

	essentialVars := []string{"PATH", "HOME", "USER", "TERM"}
	for key, value := range c.baseEnv {
		if slices.Contains(essentialVars, key) {
			envMap[key] = value
		}
	}

	c.applyEnvFrom(envMap)
	c.applyEnv(envMap)

	env := []string{}
	for key, value := range envMap {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

// CompilePatterns eagerly compiles all regex patterns, surfacing bad
// patterns at configuration load time rather than at first submission.
func (c *Command) CompilePatterns() error {
	for i, envVar := range c.Env {
		if envVar.ValueFrom != nil && envVar.ValueFrom.CallerRef != nil {
			err := envVar.ValueFrom.CallerRef.Compile()
			if err != nil {
				return fmt.Errorf("env[%d]: %w", i, err)
			}
		}
	}

	for i, envFromSource := range c.EnvFrom {
		if envFromSource.CallerRef != nil {
			err := envFromSource.CallerRef.Compile()
			if err != nil {
				return fmt.Errorf("envFrom[%d]: %w", i, err)
			}
		}
	}

	return nil
}

func (c *Command) String() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.Command, strings.Join(c.Args, " ")))
}

// applyEnvFrom applies all envFrom sources to the environment map.
func (c *Command) applyEnvFrom(envMap map[string]string) {
	for _, envFromSource := range c.EnvFrom {
		if envFromSource.CallerRef == nil {
			continue
		}

		// Pattern-based inheritance.
		if pattern, err := envFromSource.CallerRef.regex(); err == nil && pattern != nil {
			for key, value := range c.baseEnv {
				if pattern.MatchString(key) {
					envMap[key] = value
				}
			}
		}

		// Name-based inheritance.
		if name := envFromSource.CallerRef.Name; name != "" {
			if value, exists := c.baseEnv[name]; exists {
				envMap[name] = value
			}
		}
	}
}

// applyEnv applies environment variables from the env field.
func (c *Command) applyEnv(envMap map[string]string) {
	for _, envVar := range c.Env {
		if envVar.Name == "" {
			continue
		}

		if envVar.Value != "" {
			envMap[envVar.Name] = envVar.Value

			continue
		}

		if envVar.ValueFrom != nil && envVar.ValueFrom.CallerRef != nil && envVar.ValueFrom.CallerRef.Name != "" {
			if value, exists := envMap[envVar.ValueFrom.CallerRef.Name]; exists {
				envMap[envVar.Name] = value
			}
		}
	}
}

// EnvVar represents an environment variable definition.
type EnvVar struct {
	// ValueFrom specifies a source for the environment variable value.
	ValueFrom *EnvVarSource `json:"valueFrom,omitempty" jsonschema:"title=Value From"`
	// Name is the environment variable name.
	Name string `json:"name" jsonschema:"title=Name"`
	// Value is the environment variable value.
	Value string `json:"value,omitempty" jsonschema:"title=Value"`
}

// EnvVarSource represents a source for an environment variable value.
type EnvVarSource struct {
	// CallerRef specifies how to get the value from the caller process environment.
	CallerRef *CallerRef `json:"callerRef,omitempty" jsonschema:"title=Caller Reference"`
}

// EnvFromSource represents a source for inheriting environment variables.
type EnvFromSource struct {
	// CallerRef specifies how to inherit environment variables from the caller process.
	CallerRef *CallerRef `json:"callerRef,omitempty" jsonschema:"title=Caller Reference"`
}

// CallerRef selects environment variables from the caller process, either by
// exact name or by regex pattern.
type CallerRef struct {
	compiled *LazyRegexp

	// Pattern is a regex pattern for matching environment variable names.
	Pattern string `json:"pattern,omitempty" jsonschema:"title=Pattern,format=regex"`
	// Name is the specific environment variable name to inherit.
	Name string `json:"name,omitempty" jsonschema:"title=Name"`
}

// Compile compiles the caller reference pattern if one is provided.
func (c *CallerRef) Compile() error {
	_, err := c.regex()

	return err
}

func (c *CallerRef) regex() (*regexp.Regexp, error) {
	if c.Pattern == "" {
		return nil, nil //nolint:nilnil // No pattern means nothing to match.
	}

	if c.compiled == nil {
		c.compiled = NewLazyRegexp(c.Pattern)
	}

	return c.compiled.Get()
}
