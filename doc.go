// Package evoschema provides tools for studying how document schemas evolve
// over time: generating synthetic version histories and recovering the
// change sequence that relates two schema snapshots.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - schema: Parse schema documents into path-addressed trees
//   - mutator: Evolve a schema through randomized, reproducible version steps
//   - differ: Recover the ordered operation log relating two snapshots
//
// The schema dialect is the minimal validation subset shared by JSON Schema
// and MongoDB's $jsonSchema: type/bsonType, properties, required, items,
// enum, minimum/maximum, maxLength, pattern, format, minItems/maxItems,
// uniqueItems, and if/then conditionals under allOf.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/siZaiMou/evoschema
//
// # Quick Start
//
// Diff two schema snapshots:
//
//	import "github.com/siZaiMou/evoschema/differ"
//
//	result, err := differ.DiffWithOptions(
//		differ.WithSourceBytes(v1),
//		differ.WithTargetBytes(v2),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, op := range result.Operations {
//		fmt.Println(op)
//	}
//
// Evolve a schema through six versions:
//
//	import (
//		"github.com/siZaiMou/evoschema/mutator"
//		"github.com/siZaiMou/evoschema/schema"
//	)
//
//	root, err := schema.Parse(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	eng, err := mutator.New(mutator.WithSeed(42), mutator.WithVersions(6))
//	if err != nil {
//		log.Fatal(err)
//	}
//	run, err := eng.Run(root)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(run.ChangeLog())
//
// The two directions are designed to round-trip: mutator output diffs
// cleanly, so generated histories can serve as ground truth for evaluating
// schema-matching approaches.
//
// # Error Handling
//
// Structured errors live in the evoerrors package and support errors.Is and
// errors.As:
//
//	node, err := schema.Parse(data)
//	if errors.Is(err, evoerrors.ErrMalformedInput) {
//		// skip this document, continue with the corpus
//	}
package evoschema
