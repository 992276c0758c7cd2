package gen

import (
	"fmt"
	"runtime"

	"github.com/syssam/resgen/ecosystem"
)

// DefaultHeader is the first line of every generated file.
const DefaultHeader = "Code generated by resgen. DO NOT EDIT."

// Config holds the configuration for code generation.
type Config struct {
	// Ecosystem fixes the ownership wrapper and the default container type.
	// A nil Ecosystem means the one selected by build tags.
	Ecosystem *ecosystem.Ecosystem
	// Wrapper, if set, overrides the wrapper of the ecosystem.
	Wrapper *ecosystem.Wrapper
	// Container, if set, overrides the container type of the ecosystem.
	// Groups may override it again with the container= option.
	Container *ecosystem.Ident
	// Header is the header comment of generated files.
	Header string
	// Target, if set, is the directory all files are written to. By default a
	// group is generated next to its definition.
	Target string
	// Workers limits the number of files generated in parallel.
	Workers int
	// CacheFile is the path of the generation manifest. Empty disables the
	// cache.
	CacheFile string
	// Features holds the enabled feature flags.
	Features []Feature
	// BuildFlags are passed to the go tool when loading definitions.
	BuildFlags []string
}

// FeatureEnabled reports if the given feature name is enabled.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if name != f.Name {
			continue
		}
		if f.Default {
			return true, nil
		}
		for _, e := range c.Features {
			if e.Name == name {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("unexpected feature name %q", name)
}

func (c *Config) enabled(f Feature) bool {
	on, _ := c.FeatureEnabled(f.Name)
	return on
}

// ecosystem returns the configured ecosystem, falling back to the build tag
// selection.
func (c *Config) ecosystem() (*ecosystem.Ecosystem, error) {
	if c.Ecosystem != nil {
		return c.Ecosystem, nil
	}
	return ecosystem.Selected()
}

// wrapper returns the effective wrapper and container of the run.
func (c *Config) wrapper() (ecosystem.Wrapper, ecosystem.Ident, error) {
	if c.Wrapper != nil && c.Container != nil {
		return *c.Wrapper, *c.Container, nil
	}
	e, err := c.ecosystem()
	if err != nil {
		return ecosystem.Wrapper{}, ecosystem.Ident{}, err
	}
	w, container := e.Wrapper, e.Container
	if c.Wrapper != nil {
		w = *c.Wrapper
	}
	if c.Container != nil {
		container = *c.Container
	}
	return w, container, nil
}

func (c *Config) header() string {
	if c.Header == "" {
		return DefaultHeader
	}
	return c.Header
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
