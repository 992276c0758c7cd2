// Package load reads resource group definitions from Go packages and YAML
// schema files.
package load

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Config holds the configuration for loading definitions.
type Config struct {
	// Dir is the directory patterns are resolved against.
	Dir string
	// BuildFlags are passed to the go tool in addition to "-tags=resgen".
	BuildFlags []string
}

// Load loads the resource groups of the given patterns. A pattern is either
// a package pattern understood by the go tool, or the path of a YAML schema
// file. Groups are returned sorted by directory and name.
func (c *Config) Load(ctx context.Context, patterns ...string) ([]*Group, error) {
	var (
		pkgPatterns []string
		schemas     schemaSet
	)
	for _, p := range patterns {
		if isSchemaFile(p) {
			schemas.add(schemaSource{path: c.abs(p)})
		} else {
			pkgPatterns = append(pkgPatterns, p)
		}
	}
	var (
		groups []*Group
		errs   []error
	)
	if len(pkgPatterns) > 0 {
		gs, files, err := c.loadPackages(ctx, pkgPatterns)
		groups = append(groups, gs...)
		if err != nil {
			errs = append(errs, err)
		}
		for _, f := range files {
			schemas.add(f)
		}
	}
	for _, src := range schemas.list {
		data, err := os.ReadFile(src.path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read schema: %w", err))
			continue
		}
		gs, err := parseSchema(src.path, data, src.pkgName, src.pkgPath)
		groups = append(groups, gs...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	slices.SortStableFunc(groups, func(a, b *Group) int {
		if c := strings.Compare(a.Dir, b.Dir); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return groups, nil
}

// loadPackages parses the definitions of the matched packages and returns
// the YAML schema files found next to them.
func (c *Config) loadPackages(ctx context.Context, patterns []string) ([]*Group, []schemaSource, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Dir:        c.Dir,
		Fset:       token.NewFileSet(),
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		BuildFlags: c.buildFlags(),
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("loading packages: %w", err)
	}
	var (
		groups []*Group
		files  []schemaSource
		errs   []error
	)
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			// Type errors are expected: definitions and generated code
			// declare the same names. Only syntax and listing errors matter.
			if e.Kind == packages.TypeError {
				continue
			}
			errs = append(errs, fmt.Errorf("package %s: %s", pkg.PkgPath, e))
		}
		for _, f := range pkg.Syntax {
			gs, err := ParseFile(cfg.Fset, f, pkg.PkgPath)
			groups = append(groups, gs...)
			if err != nil {
				errs = append(errs, err)
			}
		}
		if len(pkg.GoFiles) > 0 {
			matches, _ := filepath.Glob(filepath.Join(filepath.Dir(pkg.GoFiles[0]), "*"+SchemaFileSuffix))
			for _, m := range matches {
				files = append(files, schemaSource{path: m, pkgName: pkg.Name, pkgPath: pkg.PkgPath})
			}
		}
	}
	return groups, files, errors.Join(errs...)
}

// schemaSource is a YAML schema file and, when it was found next to the Go
// files of a package, the name and import path of that package.
type schemaSource struct {
	path    string
	pkgName string
	pkgPath string
}

// schemaSet holds schema files keyed by absolute path. A file named on the
// command line and also found next to a package is read once, with the
// package defaults.
type schemaSet struct {
	list  []schemaSource
	index map[string]int
}

func (s *schemaSet) add(src schemaSource) {
	key, err := filepath.Abs(src.path)
	if err != nil {
		key = filepath.Clean(src.path)
	}
	if i, ok := s.index[key]; ok {
		if s.list[i].pkgPath == "" && src.pkgPath != "" {
			s.list[i] = src
		}
		return
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[key] = len(s.list)
	s.list = append(s.list, src)
}

// buildFlags returns the configured flags with the resgen tag added to the
// last -tags flag, or to a new one.
func (c *Config) buildFlags() []string {
	flags := slices.Clone(c.BuildFlags)
	for i := len(flags) - 1; i >= 0; i-- {
		if tags, ok := strings.CutPrefix(flags[i], "-tags="); ok {
			flags[i] = "-tags=" + tags + "," + BuildTag
			return flags
		}
	}
	return append(flags, "-tags="+BuildTag)
}

func (c *Config) abs(name string) string {
	if filepath.IsAbs(name) || c.Dir == "" {
		return name
	}
	return filepath.Join(c.Dir, name)
}

func isSchemaFile(p string) bool {
	return strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml")
}
