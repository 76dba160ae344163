package compact

import (
	"strconv"
	"strings"

	"github.com/minapi/minapi/internal/document"
	"github.com/minapi/minapi/internal/model"
	"go.yaml.in/yaml/v4"
)

var httpMethods = map[string]struct{}{
	"get":     {},
	"post":    {},
	"put":     {},
	"patch":   {},
	"delete":  {},
	"head":    {},
	"options": {},
}

// ExtractEndpoints walks the paths mapping and emits one descriptor per
// (path, recognized method) pair, in document iteration order.
func ExtractEndpoints(paths *yaml.Node, descLimit int) []model.Endpoint {
	endpoints := make([]model.Endpoint, 0)
	for path, item := range document.MapPairs(paths) {
		for method, op := range document.MapPairs(item) {
			method = strings.ToLower(method)
			if _, ok := httpMethods[method]; !ok {
				continue
			}
			endpoints = append(endpoints, extractOperation(method, path, op, descLimit))
		}
	}
	return endpoints
}

func extractOperation(method, path string, op *yaml.Node, descLimit int) model.Endpoint {
	ep := model.Endpoint{
		Method: method,
		Path:   path,
		Codes:  []int{},
	}

	if desc, ok := operationDesc(op); ok {
		ep.Desc = truncate(collapseWhitespace(desc), descLimit)
	}

	for _, param := range document.Items(document.MapGet(op, "parameters")) {
		location, _ := document.ScalarString(document.MapGet(param, "in"))
		switch location {
		case "path":
			ep.PathParams = append(ep.PathParams, renderParam(param, false))
		case "query":
			ep.QueryParams = append(ep.QueryParams, renderParam(param, true))
		}
	}

	if ref, ok := jsonSchemaRef(document.MapGet(op, "requestBody")); ok {
		ep.Req = ref
	}

	responses := document.MapGet(op, "responses")
	success := document.MapGet(responses, "200")
	if success == nil {
		success = document.MapGet(responses, "201")
	}
	if ref, ok := jsonSchemaRef(success); ok {
		ep.Res = ref
	}

	for code := range document.MapPairs(responses) {
		if numeric, err := strconv.Atoi(code); err == nil {
			ep.Codes = append(ep.Codes, numeric)
		}
	}

	return ep
}

// operationDesc picks the first of summary/description that is a non-empty
// string.
func operationDesc(op *yaml.Node) (string, bool) {
	for _, key := range []string{"summary", "description"} {
		if s, ok := document.ScalarString(document.MapGet(op, key)); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// renderParam renders "<name>:<type>", suffixed "?" on an explicit
// required: false. Query parameters additionally carry "(<format>)" and
// "[v1|v2|...]" suffixes when the schema declares them.
func renderParam(param *yaml.Node, query bool) string {
	schema := document.MapGet(param, "schema")

	name, _ := document.ScalarString(document.MapGet(param, "name"))
	typ := "unknown"
	if t, ok := document.ScalarString(document.MapGet(schema, "type")); ok {
		typ = t
	} else if t, ok := document.ScalarString(document.MapGet(param, "type")); ok {
		// Swagger 2 keeps the type directly on the parameter.
		typ = t
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(":")
	b.WriteString(typ)

	if required, ok := document.ScalarBool(document.MapGet(param, "required")); ok && !required {
		b.WriteString("?")
	}

	if query {
		if format, ok := document.ScalarString(document.MapGet(schema, "format")); ok {
			b.WriteString("(")
			b.WriteString(format)
			b.WriteString(")")
		}
		if values := enumValues(document.MapGet(schema, "enum")); len(values) > 0 {
			b.WriteString("[")
			b.WriteString(strings.Join(values, "|"))
			b.WriteString("]")
		}
	}

	return b.String()
}

func enumValues(enum *yaml.Node) []string {
	var values []string
	for _, item := range document.Items(enum) {
		if item.Kind == yaml.ScalarNode {
			values = append(values, item.Value)
		}
	}
	return values
}

// jsonSchemaRef resolves holder.content["application/json"].schema.$ref to
// its stripped name. Inline schemas are not extracted.
func jsonSchemaRef(holder *yaml.Node) (string, bool) {
	content := document.MapGet(document.MapGet(holder, "content"), "application/json")
	schema := document.MapGet(content, "schema")
	ref, ok := document.ScalarString(document.MapGet(schema, "$ref"))
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(ref, RefPrefix), true
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
