package httpop

import (
	"net/url"
	"strings"
)

// Pair is a single form parameter.
type Pair struct {
	Name  string
	Value string
}

// Params is an ordered list of form parameters. Unlike url.Values, insertion
// order is preserved across names and duplicate names are kept as separate
// pairs, which is required for multi-valued protocol parameters.
type Params struct {
	pairs []Pair
}

// NewParams creates an empty parameter list.
func NewParams() *Params {
	return &Params{}
}

// Add appends a name/value pair. It returns the receiver for chaining.
func (p *Params) Add(name, value string) *Params {
	p.pairs = append(p.pairs, Pair{Name: name, Value: value})
	return p
}

// Pairs returns a copy of the pairs in insertion order.
func (p *Params) Pairs() []Pair {
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Len returns the number of pairs.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pairs)
}

// Encode percent-encodes the pairs as application/x-www-form-urlencoded
// using UTF-8, preserving order and duplicates.
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for i, pair := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}
