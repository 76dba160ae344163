package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// StructuredParser is the capability that turns structured-document text
// (YAML, of which JSON is a subset) into an ordered node tree. It is loaded
// and owned by the caller; Ready reports whether it can be used yet.
type StructuredParser interface {
	Ready() bool
	Parse(data []byte) (*yaml.Node, error)
}

// ErrParserUnavailable signals that the structured-document parser has not
// finished loading. Callers should retry once it is available.
var ErrParserUnavailable = errors.New("structured-document parser not loaded yet, retry when available")

// FormatError reports input that neither the strict JSON parse nor the
// structured-document parse could digest. It carries the last parser's
// message verbatim.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "unrecognized document format: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

type yamlParser struct{}

// YAMLParser returns the stock structured-document parser, always ready.
func YAMLParser() StructuredParser {
	return yamlParser{}
}

func (yamlParser) Ready() bool {
	return true
}

func (yamlParser) Parse(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		// Comment-only input parses to no document at all.
		return nil, nil
	}
	return &root, nil
}

// Parse turns raw document text into a Document. Empty or whitespace-only
// input yields an empty Document, not an error. A strict JSON parse is
// attempted first; on failure the structured-document parser takes over, and
// only when both fail does Parse return a FormatError.
func Parse(text string, p StructuredParser) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return &Document{}, nil
	}
	if p == nil || !p.Ready() {
		return nil, ErrParserUnavailable
	}

	data := []byte(text)
	var probe any
	strictOK := json.Unmarshal(data, &probe) == nil

	// Valid strict JSON is also valid structured-document text, so the
	// ordered tree is built by the structured parser in both cases; the
	// strict probe fails fast and decides whose message surfaces.
	root, err := p.Parse(data)
	if err != nil {
		if strictOK {
			return nil, &FormatError{Err: fmt.Errorf("strict parse succeeded but structured parse failed: %w", err)}
		}
		return nil, &FormatError{Err: err}
	}

	return &Document{root: Resolve(root)}, nil
}
