// Package pkg provides the libraries behind the paraphraser CLI and HTTP API.
//
// # Overview
//
// Paraphraser generates paraphrases of an English sentence by reordering the
// constituents of its syntax tree. Given the parse of "the cat and a dog",
// coordinated noun phrases are permuted to produce "a dog and the cat". The
// pkg directory is organized into three areas:
//
//  1. Domain logic: [syntax], [perm], [paraphrase]
//  2. Orchestration: [pipeline], [api]
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of a request:
//
//	bracketed tree string
//	         ↓
//	    [syntax] package (parse into a tree)
//	         ↓
//	    [paraphrase] package (find qualifying nodes, permute, combine)
//	         ↓
//	    [cache] package (store the full expansion)
//	         ↓
//	    sampled paraphrases (CLI output or JSON response)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/paraphraser/pkg/paraphrase"
//	    "github.com/matzehuels/paraphraser/pkg/syntax"
//	)
//
//	tree, _ := syntax.Parse("(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))")
//	trees, _ := paraphrase.Transform(tree, []string{"noun phrases"}, paraphrase.Options{})
//	for _, t := range trees {
//	    fmt.Println(t)
//	}
//
// # Main Packages
//
// [syntax] - Ordered constituency trees with parent links, positions and the
// bracketed text format. Draws trees with Graphviz.
//
// [perm] - Lexicographic permutation enumeration and overflow-safe counting.
//
// [paraphrase] - Transformation methods. Finds qualifying nodes, reorders
// their children and assembles every combination into whole trees.
//
// [pipeline] - Parse, expand and sample with caching. Shared by CLI and API.
//
// [api] - chi-based HTTP server exposing the pipeline.
//
// [cache] - File, Redis, MongoDB and null backends for expansion results.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/paraphrase    # Specific package
//	go test -run Example ./...  # Examples only
//
// [syntax]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/syntax
// [perm]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/perm
// [paraphrase]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/paraphrase
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/api
// [cache]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/paraphraser/pkg/buildinfo
package pkg
