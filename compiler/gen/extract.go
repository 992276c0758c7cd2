package gen

import (
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/resgen/ecosystem"
)

// extractor returns the extractor function. Each field is assigned from its
// container member, preceded by the field's retained comments:
//
//	func ExtractLedResources(p *Peripherals) (r LedResources) {
//		r.R = p.PA2
//		// shared with the PWM block
//		r.Tim2 = p.TIM2
//		return r
//	}
func (g *Group) extractor() jen.Code {
	return jen.Commentf("%s moves the %s peripherals out of p.", g.Extractor, g.Name).Line().
		Func().Id(g.Extractor).
		Params(jen.Id("p").Op("*").Add(typeCode(g.Container))).
		Params(jen.Id("r").Id(g.Name)).
		BlockFunc(func(b *jen.Group) {
			for _, f := range g.Fields {
				comments(b, f.Attributes)
				b.Id("r").Dot(f.GoName).Op("=").Add(g.member(f))
			}
			b.Return(jen.Id("r"))
		})
}

// member returns the expression reading the container member of f.
func (g *Group) member(f *Field) jen.Code {
	src := jen.Id("p").Dot(f.Member)
	if g.take {
		return jen.Qual(ecosystem.RuntimePkg, "Take").Call(jen.Op("&").Add(src))
	}
	return src
}

// tagMap parses a raw struct tag into its key/value pairs. Malformed tails
// are dropped.
func tagMap(tag string) map[string]string {
	m := make(map[string]string)
	for {
		tag = strings.TrimLeft(tag, " ")
		i := strings.Index(tag, `:"`)
		if i <= 0 || strings.ContainsAny(tag[:i], " \t\"") {
			return m
		}
		q, err := strconv.QuotedPrefix(tag[i+1:])
		if err != nil {
			return m
		}
		v, err := strconv.Unquote(q)
		if err != nil {
			return m
		}
		m[tag[:i]] = v
		tag = tag[i+1+len(q):]
	}
}
