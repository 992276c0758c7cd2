// Package ecosystem selects, at build time, the hardware ecosystem whose
// ownership wrapper the generated code uses.
//
// Exactly one ecosystem build tag must be set when building the generator:
//
//	go build -tags stm32 ./cmd/resgen
//
// Each tag compiles one registration file into this package; Selected reports
// an error when none or several are present.
package ecosystem

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/syssam/resgen"
)

// RuntimePkg is the import path of the runtime wrapper types.
const RuntimePkg = "github.com/syssam/resgen"

// Ident is a possibly qualified Go identifier. An empty PkgPath denotes an
// identifier of the package the code is generated into.
type Ident struct {
	PkgPath string
	Name    string
}

// String returns the identifier as written in Go source, qualified by the
// last element of its import path.
func (i Ident) String() string {
	if i.PkgPath == "" {
		return i.Name
	}
	return i.PkgPath[strings.LastIndex(i.PkgPath, "/")+1:] + "." + i.Name
}

// ParseIdent parses an identifier written as "import/path.Name" or "Name".
func ParseIdent(s string) (Ident, error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndex(s, ".")
	if i < strings.LastIndex(s, "/") {
		i = -1
	}
	id := Ident{Name: s}
	if i >= 0 {
		id = Ident{PkgPath: s[:i], Name: s[i+1:]}
	}
	if !token.IsIdentifier(id.Name) || (i >= 0 && id.PkgPath == "") {
		return Ident{}, fmt.Errorf("invalid identifier %q: want Name or import/path.Name", s)
	}
	return id, nil
}

// Wrapper identifies the ownership handle type of an ecosystem.
type Wrapper struct {
	Ident
	// Scope is the default scope tag for scoped wrappers. A nil Scope means
	// the wrapper takes only the resource type parameter.
	Scope *Ident
}

// Scoped reports whether the wrapper takes a scope type parameter.
func (w Wrapper) Scoped() bool { return w.Scope != nil }

// Ecosystem describes one target hardware ecosystem.
type Ecosystem struct {
	Name      string  // ecosystem name, equal to its build tag.
	Wrapper   Wrapper // ownership handle type.
	Container Ident   // default peripherals container type.
}

// String implements the fmt.Stringer interface.
func (e *Ecosystem) String() string { return e.Name }

var (
	// STM32 targets STM32 parts with scoped handles.
	STM32 = &Ecosystem{
		Name: "stm32",
		Wrapper: Wrapper{
			Ident: Ident{PkgPath: RuntimePkg, Name: "ScopedPeri"},
			Scope: &Ident{PkgPath: RuntimePkg, Name: "Static"},
		},
		Container: Ident{Name: "Peripherals"},
	}
	// NRF targets nRF parts with scoped handles.
	NRF = &Ecosystem{
		Name: "nrf",
		Wrapper: Wrapper{
			Ident: Ident{PkgPath: RuntimePkg, Name: "ScopedPeri"},
			Scope: &Ident{PkgPath: RuntimePkg, Name: "Static"},
		},
		Container: Ident{Name: "Peripherals"},
	}
	// RP2 targets RP2040/RP2350 boards with unscoped handles.
	RP2 = &Ecosystem{
		Name:      "rp2",
		Wrapper:   Wrapper{Ident: Ident{PkgPath: RuntimePkg, Name: "Peri"}},
		Container: Ident{Name: "Peripherals"},
	}
	// Standin uses an unqualified Peri declared by the package under test.
	Standin = &Ecosystem{
		Name:      "resgen_standin",
		Wrapper:   Wrapper{Ident: Ident{Name: "Peri"}},
		Container: Ident{Name: "Peripherals"},
	}
)

// All returns the known ecosystems sorted by name.
func All() []*Ecosystem {
	all := []*Ecosystem{STM32, NRF, RP2, Standin}
	slices.SortFunc(all, func(a, b *Ecosystem) int { return strings.Compare(a.Name, b.Name) })
	return all
}

// Lookup returns the ecosystem with the given name.
func Lookup(name string) (*Ecosystem, bool) {
	for _, e := range All() {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// active holds the ecosystems registered by build-tagged files.
var active []*Ecosystem

// Active returns the names of the ecosystems compiled in, sorted.
func Active() []string {
	names := make([]string, 0, len(active))
	for _, e := range active {
		names = append(names, e.Name)
	}
	slices.Sort(names)
	return names
}

// Selected returns the single ecosystem compiled into the binary.
func Selected() (*Ecosystem, error) {
	return Resolve(active...)
}

// Resolve returns the only ecosystem in es, or an EcosystemError when es is
// empty or holds more than one ecosystem.
func Resolve(es ...*Ecosystem) (*Ecosystem, error) {
	switch len(es) {
	case 0:
		return nil, resgen.NewEcosystemError("no ecosystem specified: build with exactly one of the tags " + strings.Join(names(All()), ", "))
	case 1:
		return es[0], nil
	default:
		return nil, resgen.NewEcosystemError("ambiguous ecosystem: only one ecosystem tag may be set", names(es)...)
	}
}

func register(e *Ecosystem) {
	active = append(active, e)
}

func names(es []*Ecosystem) []string {
	s := make([]string, 0, len(es))
	for _, e := range es {
		s = append(s, e.Name)
	}
	slices.Sort(s)
	return s
}
