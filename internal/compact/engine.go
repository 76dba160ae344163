// Package compact rewrites a parsed API description into a token-minimal
// representation of the same surface: reference collection, schema
// compaction, endpoint normalization and final assembly.
package compact

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/minapi/minapi/internal/document"
	"github.com/minapi/minapi/internal/model"
)

// Options tune the compaction rules.
type Options struct {
	// DescriptionLimit caps endpoint descriptions, in characters, before
	// the "..." marker.
	DescriptionLimit int
	// SeedSchemas are always included when defined, referenced or not.
	SeedSchemas []string
	// RefPolicy selects direct or transitive reference collection.
	RefPolicy RefPolicy
}

func DefaultOptions() Options {
	return Options{
		DescriptionLimit: 100,
		SeedSchemas:      []string{"Error", "Granularity", "AggregationFunction", "ResponseFormat"},
		RefPolicy:        RefsDirect,
	}
}

// Engine runs the full pipeline. It holds no mutable state; concurrent Run
// calls are independent.
type Engine struct {
	opts   Options
	parser document.StructuredParser
}

func NewEngine(opts Options, parser document.StructuredParser) *Engine {
	return &Engine{opts: opts, parser: parser}
}

// Result is one invocation's output.
type Result struct {
	// Output is the minimal serialized compact document, empty for empty
	// input.
	Output string
	// InputBytes and OutputBytes feed the diagnostic reduction metric.
	InputBytes  int
	OutputBytes int
	// Reduction is the rounded size-reduction percentage, 0 for empty
	// input.
	Reduction int
}

// Run compacts raw document text. Any error aborts the invocation with no
// partial output.
func (e *Engine) Run(input string) (*Result, error) {
	doc, err := document.Parse(input, e.parser)
	if err != nil {
		return nil, err
	}
	if doc.Empty() {
		return &Result{}, nil
	}

	api := e.Compact(doc)

	out, err := json.Marshal(api)
	if err != nil {
		return nil, fmt.Errorf("serializing compact document: %w", err)
	}

	res := &Result{
		Output:      string(out),
		InputBytes:  len(input),
		OutputBytes: len(out),
	}
	res.Reduction = int(math.Round(float64(res.InputBytes-res.OutputBytes) / float64(res.InputBytes) * 100))
	return res, nil
}

// Compact assembles the compact document for a parsed, non-empty Document.
// Absent optional fields degrade to omitted output fields, never errors.
func (e *Engine) Compact(doc *document.Document) *model.API {
	api := &model.API{}

	if host, ok := doc.Host(); ok {
		api.Host = host
	}
	api.Sec = doc.SecuritySchemeNames()

	paths := doc.Paths()
	api.Endpoints = ExtractEndpoints(paths, e.opts.DescriptionLimit)

	defs := doc.SchemaDefs()
	refs := CollectRefs(paths, defs, e.opts.RefPolicy, e.opts.SeedSchemas)
	if refs.Len() > 0 && defs != nil {
		schemas := model.NewObject()
		for _, name := range refs.Names() {
			schemas.Set(name, CompactSchema(document.MapGet(defs, name)))
		}
		api.Schemas = schemas
	}

	return api
}
