package load

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"strconv"
	"strings"

	"github.com/syssam/resgen"
)

// Group represents a resource group definition loaded from a Go source file
// or a YAML schema file.
type Group struct {
	Name            string            `json:"name,omitempty"`
	Visibility      Visibility        `json:"visibility"`
	GenerateAliases bool              `json:"generate_aliases"`
	Container       *TypeRef          `json:"container,omitempty"`
	Members         MemberSource      `json:"members,omitempty"`
	Scope           *TypeRef          `json:"scope,omitempty"`
	Fields          []*Field          `json:"fields,omitempty"`
	Package         string            `json:"package,omitempty"`
	PkgPath         string            `json:"pkg_path,omitempty"`
	Imports         map[string]string `json:"imports,omitempty"`
	Dir             string            `json:"-"`
	Pos             string            `json:"-"`
}

// Field represents a field of a loaded resource group.
type Field struct {
	Name string   `json:"name,omitempty"`
	Type *TypeRef `json:"type,omitempty"`
	// Attributes holds the raw comment lines attached to the field, in order,
	// including resgen directives.
	Attributes []string `json:"attributes,omitempty"`
	Tag        string   `json:"tag,omitempty"`
	Pos        string   `json:"-"`
}

// TypeRef references a named, possibly qualified and generic, Go type.
type TypeRef struct {
	PkgPath string     `json:"pkg_path,omitempty"`
	Pkg     string     `json:"pkg,omitempty"` // qualifier as written in source
	Name    string     `json:"name"`
	Args    []*TypeRef `json:"args,omitempty"`
}

// String returns the type as written in Go source.
func (t *TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *TypeRef) write(b *strings.Builder) {
	if t.Pkg != "" {
		b.WriteString(t.Pkg)
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	if len(t.Args) == 0 {
		return
	}
	b.WriteByte('[')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
	b.WriteByte(']')
}

// Generic reports whether the type is instantiated with type arguments.
func (t *TypeRef) Generic() bool { return len(t.Args) > 0 }

// Unwrap returns the resource type a field of type t holds: the last type
// argument of a generic type, or t itself.
func (t *TypeRef) Unwrap() *TypeRef {
	if !t.Generic() {
		return t
	}
	return t.Args[len(t.Args)-1]
}

// Same reports whether t and o name the same type.
func (t *TypeRef) Same(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.PkgPath != o.PkgPath || t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Same(o.Args[i]) {
			return false
		}
	}
	return true
}

// ParseTypeExpr parses a Go type expression such as "PA2", "hal.TIM2" or
// "Box[PA2]". Package qualifiers are resolved with imports (name to path).
func ParseTypeExpr(expr string, imports map[string]string) (*TypeRef, error) {
	x, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	return typeRef(x, imports)
}

// typeRef converts a type expression into a TypeRef. Only named types are
// resource types; pointers, slices, maps and the like are rejected.
func typeRef(x ast.Expr, imports map[string]string) (*TypeRef, error) {
	switch x := x.(type) {
	case *ast.Ident:
		return &TypeRef{Name: x.Name}, nil
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported qualified type %s", exprString(x))
		}
		p, ok := imports[pkg.Name]
		if !ok {
			return nil, fmt.Errorf("unknown package qualifier %q", pkg.Name)
		}
		return &TypeRef{PkgPath: p, Pkg: pkg.Name, Name: x.Sel.Name}, nil
	case *ast.IndexExpr:
		return instantiate(x.X, []ast.Expr{x.Index}, imports)
	case *ast.IndexListExpr:
		return instantiate(x.X, x.Indices, imports)
	case *ast.ParenExpr:
		return typeRef(x.X, imports)
	default:
		return nil, fmt.Errorf("unsupported type %s: resource types must be named types", exprString(x))
	}
}

func instantiate(base ast.Expr, args []ast.Expr, imports map[string]string) (*TypeRef, error) {
	t, err := typeRef(base, imports)
	if err != nil {
		return nil, err
	}
	if t.Generic() {
		return nil, fmt.Errorf("unsupported type %s", exprString(base))
	}
	for _, a := range args {
		at, err := typeRef(a, imports)
		if err != nil {
			return nil, err
		}
		t.Args = append(t.Args, at)
	}
	return t, nil
}

func exprString(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return exprString(x.X) + "." + x.Sel.Name
	case *ast.StarExpr:
		return "*" + exprString(x.X)
	case *ast.ArrayType:
		return "[]" + exprString(x.Elt)
	case *ast.MapType:
		return "map[" + exprString(x.Key) + "]" + exprString(x.Value)
	default:
		return fmt.Sprintf("%T", x)
	}
}

// importName returns the name a package is referenced by when its import
// spec carries no explicit name.
func importName(p string) string {
	name := path.Base(p)
	if len(name) > 1 && name[0] == 'v' {
		if _, err := strconv.Atoi(name[1:]); err == nil {
			if dir := path.Dir(p); dir != "." {
				name = path.Base(dir)
			}
		}
	}
	return strings.TrimPrefix(name, "go-")
}

// validIdent reports whether s can name a Go declaration.
func validIdent(s string) bool {
	return token.IsIdentifier(s) && s != "_"
}

func invalid(g *Group, field, pos, format string, args ...any) error {
	err := resgen.NewInvalidInputError(g.Name, field, fmt.Sprintf(format, args...))
	err.Pos = pos
	return err
}
