package gen

import (
	"errors"

	"github.com/syssam/resgen/ecosystem"
)

// Option configures code generation.
type Option func(*Config) error

// WithEcosystem selects the ecosystem by name, overriding the build tag
// selection.
func WithEcosystem(name string) Option {
	return func(c *Config) error {
		e, ok := ecosystem.Lookup(name)
		if !ok {
			return NewConfigError("Ecosystem", name, "unknown ecosystem")
		}
		c.Ecosystem = e
		return nil
	}
}

// WithWrapper overrides the ownership wrapper. scope is the default scope tag
// of a scoped wrapper and may be empty.
// For example: "github.com/org/hal.Handle", "github.com/org/hal.Static".
func WithWrapper(wrapper, scope string) Option {
	return func(c *Config) error {
		id, err := ecosystem.ParseIdent(wrapper)
		if err != nil {
			return NewConfigError("Wrapper", wrapper, err.Error())
		}
		w := &ecosystem.Wrapper{Ident: id}
		if scope != "" {
			s, err := ecosystem.ParseIdent(scope)
			if err != nil {
				return NewConfigError("Scope", scope, err.Error())
			}
			w.Scope = &s
		}
		c.Wrapper = w
		return nil
	}
}

// WithContainer overrides the default peripherals container type.
func WithContainer(container string) Option {
	return func(c *Config) error {
		id, err := ecosystem.ParseIdent(container)
		if err != nil {
			return NewConfigError("Container", container, err.Error())
		}
		c.Container = &id
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTarget sets the output directory.
// By default files are written next to their definitions.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithCache enables the generation manifest at the given path.
func WithCache(file string) Option {
	return func(c *Config) error {
		if file == "" {
			return NewConfigError("CacheFile", nil, "cache file cannot be empty")
		}
		c.CacheFile = file
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading definition packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
