package gen

import (
	"errors"
	"slices"
	"strings"

	"github.com/syssam/resgen"
	"github.com/syssam/resgen/compiler/load"
)

// Graph holds the resolved groups of one generation run.
type Graph struct {
	*Config
	// Groups sorted by directory and name.
	Groups []*Group
}

// NewGraph resolves the loaded definitions. Every failing definition is
// reported; the returned error joins them.
func NewGraph(c *Config, defs ...*load.Group) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	w, container, err := c.wrapper()
	if err != nil {
		return nil, err
	}
	declared := make(map[string]*load.Group, len(defs))
	var errs []error
	for _, d := range defs {
		k := d.Dir + "\x00" + d.Name
		if prev, ok := declared[k]; ok {
			errs = append(errs, invalidGroup(d, "", "resource group already declared at %s", prev.Pos))
			continue
		}
		declared[k] = d
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	g := &Graph{Config: c}
	for _, d := range defs {
		if err := checkNested(d, declared); err != nil {
			errs = append(errs, err)
			continue
		}
		grp, err := NewGroup(c, d, w, container)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		g.Groups = append(g.Groups, grp)
	}
	slices.SortStableFunc(g.Groups, func(a, b *Group) int {
		if c := strings.Compare(a.Dir, b.Dir); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	errs = append(errs, g.checkPackages()...)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// checkNested rejects fields whose resource type is another group of the same
// package.
func checkNested(d *load.Group, declared map[string]*load.Group) error {
	for _, f := range d.Fields {
		t := f.Type.Unwrap()
		if t.PkgPath != "" && t.PkgPath != d.PkgPath {
			continue
		}
		if _, ok := declared[d.Dir+"\x00"+t.Name]; ok {
			return invalidGroup(d, f.Name, "field type %s is a resource group: nested groups are not supported", t.Name)
		}
	}
	return nil
}

// checkPackages reports names declared by two groups of one package, and
// groups that would be generated into the same file.
func (g *Graph) checkPackages() []error {
	var (
		errs   []error
		owners = make(map[string]string)
		files  = make(map[string]string)
	)
	for _, grp := range g.Groups {
		file := g.outputDir(grp) + "\x00" + grp.File()
		if prev, ok := files[file]; ok {
			errs = append(errs, invalidGroup(grp.def, "", "group %s is also generated into %s", prev, grp.File()))
			continue
		}
		files[file] = grp.Name
		for _, d := range grp.declarations() {
			k := grp.Dir + "\x00" + d.name
			if prev, ok := owners[k]; ok {
				errs = append(errs, resgen.NewAliasCollisionError(grp.Name, d.name, prev, d.owner))
				break
			}
			owners[k] = d.owner
		}
	}
	return errs
}

type declaration struct{ name, owner string }

// declarations returns the package-level names the group emits.
func (g *Group) declarations() []declaration {
	ds := []declaration{
		{g.Name, "record " + g.Name},
		{g.Extractor, "extractor of " + g.Name},
	}
	if v := g.ExtractorVar(); v != "" {
		ds = append(ds, declaration{v, "extractor variable of " + g.Name})
	}
	for _, a := range g.Aliases {
		ds = append(ds, declaration{a.Name, "alias of " + g.Name + "." + a.Field})
	}
	return ds
}
