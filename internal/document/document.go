// Package document parses raw OpenAPI/Swagger text into an ordered value
// tree and exposes the handful of lookups the compaction engine needs.
// Legacy Swagger 2 field names (host, definitions, securityDefinitions) are
// honored as fallbacks wherever the modern equivalent is absent.
package document

import "go.yaml.in/yaml/v4"

// Document is a parsed API description. The zero value is the empty
// document produced for blank input.
type Document struct {
	root *yaml.Node
}

// Empty reports whether the document was parsed from blank input.
func (d *Document) Empty() bool {
	return d == nil || d.root == nil
}

// Root returns the underlying root node, nil for an empty document.
func (d *Document) Root() *yaml.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Value lowers the whole tree into plain Go values.
func (d *Document) Value() any {
	if d.Empty() {
		return nil
	}
	return DecodeValue(d.root)
}

// Host resolves the API host from servers[0].url, falling back to the
// legacy top-level host field.
func (d *Document) Host() (string, bool) {
	if d.Empty() {
		return "", false
	}
	if servers := Items(MapGet(d.root, "servers")); len(servers) > 0 {
		if url, ok := ScalarString(MapGet(servers[0], "url")); ok {
			return url, true
		}
	}
	return ScalarString(MapGet(d.root, "host"))
}

// Paths returns the paths mapping, nil when absent.
func (d *Document) Paths() *yaml.Node {
	if d.Empty() {
		return nil
	}
	return MapGet(d.root, "paths")
}

// SchemaDefs returns the schema definitions mapping: components.schemas,
// falling back to the legacy definitions field.
func (d *Document) SchemaDefs() *yaml.Node {
	if d.Empty() {
		return nil
	}
	if defs := MapGet(MapGet(d.root, "components"), "schemas"); IsMapping(defs) {
		return defs
	}
	if defs := MapGet(d.root, "definitions"); IsMapping(defs) {
		return defs
	}
	return nil
}

// SecuritySchemeNames returns the declared security scheme names in
// declaration order, from components.securitySchemes with a fallback to the
// legacy securityDefinitions field.
func (d *Document) SecuritySchemeNames() []string {
	if d.Empty() {
		return nil
	}
	schemes := MapGet(MapGet(d.root, "components"), "securitySchemes")
	if !IsMapping(schemes) {
		schemes = MapGet(d.root, "securityDefinitions")
	}
	var names []string
	for name := range MapPairs(schemes) {
		names = append(names, name)
	}
	return names
}
