package load

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaFileSuffix is the suffix of YAML schema files picked up next to the
// Go files of a package.
const SchemaFileSuffix = ".resgen.yaml"

// schemaFile is the on-disk YAML layout.
type schemaFile struct {
	Package string            `yaml:"package"`
	PkgPath string            `yaml:"pkg_path"`
	Imports map[string]string `yaml:"imports"`
	Groups  []schemaGroup     `yaml:"groups"`
}

type schemaGroup struct {
	Name       string        `yaml:"name"`
	Visibility string        `yaml:"visibility"`
	Mode       string        `yaml:"mode"`
	Container  string        `yaml:"container"`
	Members    string        `yaml:"members"`
	Scope      string        `yaml:"scope"`
	Fields     []schemaField `yaml:"fields"`
	line       int
}

type schemaField struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Alias      string   `yaml:"alias"`
	Attributes []string `yaml:"attributes"`
	Tag        string   `yaml:"tag"`
}

// UnmarshalYAML records the line of the group for diagnostics.
func (g *schemaGroup) UnmarshalYAML(node *yaml.Node) error {
	type plain schemaGroup
	if err := node.Decode((*plain)(g)); err != nil {
		return err
	}
	g.line = node.Line
	return nil
}

// ParseYAML parses a YAML schema file. name is used for positions and to
// locate the output directory.
//
//	package: board
//	imports:
//	  hal: example.com/fw/hal
//	groups:
//	  - name: LedResources
//	    mode: no_aliases
//	    fields:
//	      - {name: r, type: PA2}
//	      - {name: tim2, type: hal.TIM2, alias: PWMTimer}
func ParseYAML(name string, data []byte) ([]*Group, error) {
	return parseSchema(name, data, "", "")
}

// parseSchema parses a YAML schema file. pkgName and pkgPath are the
// defaults of the package and pkg_path keys, taken from the Go package the
// file sits in.
func parseSchema(name string, data []byte, pkgName, pkgPath string) ([]*Group, error) {
	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if sf.Package == "" {
		sf.Package = pkgName
	}
	if sf.Package == "" {
		sf.Package = filepath.Base(filepath.Dir(name))
	}
	if sf.PkgPath == "" {
		sf.PkgPath = pkgPath
	}
	var (
		groups []*Group
		errs   []error
	)
	for _, sg := range sf.Groups {
		g, err := sf.group(name, sg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		groups = append(groups, g)
	}
	return groups, errors.Join(errs...)
}

func (sf *schemaFile) group(name string, sg schemaGroup) (*Group, error) {
	g := &Group{
		Name:    sg.Name,
		Package: sf.Package,
		PkgPath: sf.PkgPath,
		Imports: sf.Imports,
		Dir:     filepath.Dir(name),
		Pos:     fmt.Sprintf("%s:%d", name, sg.line),
	}
	if g.Imports == nil {
		g.Imports = map[string]string{}
	}
	if !validIdent(g.Name) {
		return nil, invalid(g, "", g.Pos, "invalid group name %q", g.Name)
	}
	if sg.Visibility == "" {
		g.Visibility = visibilityOf(g.Name, g.PkgPath)
	} else {
		v, err := ParseVisibility(sg.Visibility)
		if err != nil {
			return nil, invalid(g, "", g.Pos, "%v", err)
		}
		g.Visibility = v
	}
	var args []string
	if sg.Mode != "" {
		args = append(args, sg.Mode)
	}
	for _, opt := range []struct{ key, value string }{
		{"container", sg.Container},
		{"members", sg.Members},
		{"scope", sg.Scope},
	} {
		if opt.value != "" {
			args = append(args, opt.key+"="+opt.value)
		}
	}
	if err := applyGroupArgs(g, args); err != nil {
		return nil, err
	}
	if len(sg.Fields) == 0 {
		return nil, invalid(g, "", g.Pos, "resource group has no fields")
	}
	seen := make(map[string]bool)
	for _, f := range sg.Fields {
		if !validIdent(f.Name) {
			return nil, invalid(g, f.Name, g.Pos, "invalid field name")
		}
		if seen[f.Name] {
			return nil, invalid(g, f.Name, g.Pos, "duplicate field name")
		}
		seen[f.Name] = true
		typ, err := ParseTypeExpr(f.Type, g.Imports)
		if err != nil {
			return nil, invalid(g, f.Name, g.Pos, "%v", err)
		}
		attrs := append([]string(nil), f.Attributes...)
		if f.Alias != "" {
			attrs = append(attrs, AliasDirective+" "+strings.TrimSpace(f.Alias))
		}
		g.Fields = append(g.Fields, &Field{
			Name:       f.Name,
			Type:       typ,
			Attributes: attrs,
			Tag:        f.Tag,
			Pos:        g.Pos,
		})
	}
	return g, nil
}
