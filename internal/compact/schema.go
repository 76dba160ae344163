package compact

import (
	"strings"

	"github.com/minapi/minapi/internal/document"
	"github.com/minapi/minapi/internal/model"
	"go.yaml.in/yaml/v4"
)

// SchemaClass names the implicit shape variants a schema node can take.
// Classification happens once; the compactor switches on the result.
type SchemaClass int

const (
	// ClassOpaque is anything that is not a mapping; it passes through
	// compaction unchanged.
	ClassOpaque SchemaClass = iota
	// ClassBareType has exactly one field, a scalar type.
	ClassBareType
	// ClassTypeFormat has exactly two fields, scalar type and format.
	ClassTypeFormat
	// ClassObject is every other mapping.
	ClassObject
)

// Classify resolves the shape variant of a schema node.
func Classify(n *yaml.Node) SchemaClass {
	if !document.IsMapping(n) {
		return ClassOpaque
	}

	fields := 0
	hasType, hasFormat := false, false
	for key, value := range document.MapPairs(n) {
		fields++
		if _, ok := document.ScalarString(value); !ok {
			continue
		}
		switch key {
		case "type":
			hasType = true
		case "format":
			hasFormat = true
		}
	}

	switch {
	case fields == 1 && hasType:
		return ClassBareType
	case fields == 2 && hasType && hasFormat:
		return ClassTypeFormat
	default:
		return ClassObject
	}
}

// CompactSchema rewrites a schema node into its minimal notation. It never
// fails: malformed or scalar input passes through as its plain value.
//
// A bare type collapses to the type string, type plus format to
// "type(format)". Everything else becomes an object keeping type, format,
// enum, required and the stripped $ref; properties whose compact form is a
// plain string are folded into the key as "<type> <name>": true.
func CompactSchema(n *yaml.Node) any {
	switch Classify(n) {
	case ClassOpaque:
		return document.DecodeValue(n)
	case ClassBareType:
		t, _ := document.ScalarString(document.MapGet(n, "type"))
		return t
	case ClassTypeFormat:
		t, _ := document.ScalarString(document.MapGet(n, "type"))
		f, _ := document.ScalarString(document.MapGet(n, "format"))
		return t + "(" + f + ")"
	}

	obj := model.NewObject()
	for _, key := range []string{"type", "format", "enum", "required"} {
		if field := document.MapGet(n, key); field != nil {
			obj.Set(key, document.DecodeValue(field))
		}
	}
	if refNode := document.MapGet(n, "$ref"); refNode != nil {
		if ref, ok := document.ScalarString(refNode); ok {
			obj.Set("$ref", strings.TrimPrefix(ref, RefPrefix))
		} else {
			obj.Set("$ref", document.DecodeValue(refNode))
		}
	}

	for name, prop := range document.MapPairs(document.MapGet(n, "properties")) {
		compacted := CompactSchema(prop)
		if s, ok := compacted.(string); ok {
			obj.Set(s+" "+name, true)
		} else {
			obj.Set(name, compacted)
		}
	}

	if items := document.MapGet(n, "items"); items != nil {
		obj.Set("items", CompactSchema(items))
	}

	return obj
}
