package lambda

import (
	"slices"
	"strings"
)

// Gen is a generator template: for each element drawn from a source, keep it
// when every condition holds and yield the projection. Templates are authored
// against the placeholder (For(X)) so a chain can later substitute its own
// data for the source. A Gen is immutable; Where and Select return copies.
type Gen struct {
	source any
	conds  []any
	proj   any
}

// For starts a template drawing from source.
func For(source any) *Gen { return &Gen{source: source} }

// Where returns a copy of g with an additional condition.
func (g *Gen) Where(cond any) *Gen {
	cp := *g
	cp.conds = append(slices.Clone(g.conds), cond)
	return &cp
}

// Select returns a copy of g yielding proj instead of the element itself.
func (g *Gen) Select(proj any) *Gen {
	cp := *g
	cp.proj = proj
	return &cp
}

// Source returns the captured iteration source.
func (g *Gen) Source() any { return g.source }

// Spliceable reports whether the template iterates over the placeholder.
func (g *Gen) Spliceable() bool {
	e, ok := g.source.(*Expr)
	return ok && e.IsHole()
}

// Compile resolves the conditions and projection into a single step function
// reporting (value, keep, error) for one element.
func (g *Gen) Compile() (func(any) (any, bool, error), error) {
	conds := make([]func(any) (bool, error), len(g.conds))
	for i, c := range g.conds {
		p, err := Predicate(c)
		if err != nil {
			return nil, err
		}
		conds[i] = p
	}
	var proj func(any) (any, error)
	if g.proj != nil {
		p, err := Callable(g.proj)
		if err != nil {
			return nil, err
		}
		proj = p
	}
	return func(x any) (any, bool, error) {
		for _, c := range conds {
			ok, err := c(x)
			if err != nil || !ok {
				return nil, false, err
			}
		}
		if proj == nil {
			return x, true, nil
		}
		v, err := proj(x)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}, nil
}

func (g *Gen) String() string {
	var b strings.Builder
	b.WriteString("(")
	if g.proj == nil {
		b.WriteString("X")
	} else {
		b.WriteString(formatOperand(g.proj))
	}
	b.WriteString(" for X in ")
	b.WriteString(formatOperand(g.source))
	for _, c := range g.conds {
		b.WriteString(" if ")
		b.WriteString(formatOperand(c))
	}
	b.WriteString(")")
	return b.String()
}
