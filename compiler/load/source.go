package load

import (
	"errors"
	"go/ast"
	"go/token"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/syssam/resgen"
)

// ParseFile extracts the resource groups declared in f. pkgPath is the import
// path of the package f belongs to; it decides whether exported groups are
// Restricted. Every failing definition is reported; the returned error joins
// them.
func ParseFile(fset *token.FileSet, f *ast.File, pkgPath string) ([]*Group, error) {
	imports := fileImports(f)
	dir := filepath.Dir(fset.Position(f.Package).Filename)
	var (
		groups []*Group
		errs   []error
	)
	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				doc := specDoc(decl, spec)
				args, ok := findGroupDirective(doc)
				if !ok {
					continue
				}
				g := &Group{
					Package: f.Name.Name,
					PkgPath: pkgPath,
					Imports: imports,
					Dir:     dir,
					Pos:     fset.Position(spec.Pos()).String(),
				}
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					errs = append(errs, invalid(g, "", g.Pos, "%s must annotate a struct type, found %s declaration", GroupDirective, decl.Tok))
					continue
				}
				g.Name = ts.Name.Name
				g.Visibility = visibilityOf(g.Name, pkgPath)
				if err := parseGroup(fset, g, ts, args); err != nil {
					errs = append(errs, err)
					continue
				}
				groups = append(groups, g)
			}
		case *ast.FuncDecl:
			if _, ok := findGroupDirective(decl.Doc); ok {
				err := resgen.NewInvalidInputError(decl.Name.Name, "", GroupDirective+" must annotate a struct type, found func declaration")
				err.Pos = fset.Position(decl.Pos()).String()
				errs = append(errs, err)
			}
		}
	}
	return groups, errors.Join(errs...)
}

func parseGroup(fset *token.FileSet, g *Group, ts *ast.TypeSpec, args []string) error {
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return invalid(g, "", g.Pos, "resource groups cannot be generic")
	}
	if ts.Assign.IsValid() {
		return invalid(g, "", g.Pos, "%s must annotate a struct type, found alias declaration", GroupDirective)
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return invalid(g, "", g.Pos, "%s must annotate a struct type, found %s", GroupDirective, exprString(ts.Type))
	}
	if err := applyGroupArgs(g, args); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, af := range st.Fields.List {
		pos := fset.Position(af.Pos()).String()
		if len(af.Names) == 0 {
			return invalid(g, exprString(af.Type), pos, "embedded fields are not supported")
		}
		typ, err := typeRef(af.Type, g.Imports)
		if err != nil {
			return invalid(g, af.Names[0].Name, pos, "%v", err)
		}
		var tag string
		if af.Tag != nil {
			tag, _ = strconv.Unquote(af.Tag.Value)
		}
		// Trailing line comments follow the doc comment.
		attrs := append(commentLines(af.Doc), commentLines(af.Comment)...)
		for _, name := range af.Names {
			if !validIdent(name.Name) {
				return invalid(g, name.Name, pos, "invalid field name")
			}
			if seen[name.Name] {
				return invalid(g, name.Name, pos, "duplicate field name")
			}
			seen[name.Name] = true
			g.Fields = append(g.Fields, &Field{
				Name:       name.Name,
				Type:       typ,
				Attributes: slices.Clone(attrs),
				Tag:        tag,
				Pos:        fset.Position(name.Pos()).String(),
			})
		}
	}
	if len(g.Fields) == 0 {
		return invalid(g, "", g.Pos, "resource group has no fields")
	}
	return nil
}

// specDoc returns the doc comment of spec, falling back to the declaration
// doc for unparenthesized declarations.
func specDoc(decl *ast.GenDecl, spec ast.Spec) *ast.CommentGroup {
	var doc *ast.CommentGroup
	switch s := spec.(type) {
	case *ast.TypeSpec:
		doc = s.Doc
	case *ast.ValueSpec:
		doc = s.Doc
	}
	if doc == nil && !decl.Lparen.IsValid() {
		doc = decl.Doc
	}
	return doc
}

func findGroupDirective(doc *ast.CommentGroup) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	for _, c := range doc.List {
		if args, ok := groupArgs(c.Text); ok {
			return args, true
		}
	}
	return nil, false
}

// commentLines returns the raw comment lines of doc, markers included.
func commentLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	lines := make([]string, 0, len(doc.List))
	for _, c := range doc.List {
		lines = append(lines, c.Text)
	}
	return lines
}

// fileImports maps the names packages are referenced by in f to their paths.
func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := importName(p)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = p
	}
	return imports
}
