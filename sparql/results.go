package sparql

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Term is one RDF term in a result binding.
type Term struct {
	// Type is "uri", "literal" or "bnode".
	Type string
	// Value is the lexical form.
	Value string
	// Lang is the language tag for language-tagged literals.
	Lang string
	// Datatype is the datatype IRI for typed literals.
	Datatype string
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool { return t.Type == "uri" }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Type == "literal" || t.Type == "typed-literal" }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Type == "bnode" }

// Binding maps variable names to terms for one solution.
type Binding map[string]Term

// Results holds a decoded SELECT result set.
type Results struct {
	// Vars are the projected variable names, in projection order.
	Vars []string
	// Bindings are the solutions, in server order.
	Bindings []Binding
}

// parseResults decodes an application/sparql-results+json document.
func parseResults(data string) (*Results, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("sparql: malformed results document")
	}
	doc := gjson.Parse(data)
	if !doc.Get("head").Exists() {
		return nil, fmt.Errorf("sparql: results document has no head")
	}

	res := &Results{}
	doc.Get("head.vars").ForEach(func(_, v gjson.Result) bool {
		res.Vars = append(res.Vars, v.String())
		return true
	})
	doc.Get("results.bindings").ForEach(func(_, row gjson.Result) bool {
		binding := Binding{}
		row.ForEach(func(name, term gjson.Result) bool {
			binding[name.String()] = Term{
				Type:     term.Get("type").String(),
				Value:    term.Get("value").String(),
				Lang:     term.Get("xml:lang").String(),
				Datatype: term.Get("datatype").String(),
			}
			return true
		})
		res.Bindings = append(res.Bindings, binding)
		return true
	})
	return res, nil
}

// parseBoolean decodes the result of an ASK query.
func parseBoolean(data string) (bool, error) {
	if !gjson.Valid(data) {
		return false, fmt.Errorf("sparql: malformed results document")
	}
	b := gjson.Parse(data).Get("boolean")
	if !b.Exists() {
		return false, fmt.Errorf("sparql: results document has no boolean")
	}
	return b.Bool(), nil
}
