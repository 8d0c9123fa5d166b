// Package sparql is a thin SPARQL 1.1 Protocol client built on httpop.
//
// Queries and updates are sent as form-encoded POST operations; SELECT and
// ASK results are decoded from application/sparql-results+json, while
// CONSTRUCT and DESCRIBE hand the caller the open, typed response stream to
// parse with an RDF library of their choice.
//
//	client, err := sparql.New(sparql.Config{
//	    QueryEndpoint:  "http://localhost:3030/ds/query",
//	    UpdateEndpoint: "http://localhost:3030/ds/update",
//	})
//	res, err := client.Select(ctx, "SELECT * WHERE { ?s ?p ?o } LIMIT 10")
package sparql
