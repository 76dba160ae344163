// Package validate runs an optional OpenAPI 3.x validation pass over the
// raw document. Findings are advisory: the compaction pipeline accepts any
// parseable document and never depends on this package.
package validate

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
)

// Document validates raw OpenAPI bytes and returns human-readable findings.
// A document the validator cannot handle (legacy Swagger 2, unparseable
// text) produces a single finding rather than an error, since the compactor
// may still accept it.
func Document(data []byte) ([]string, error) {
	doc, err := libopenapi.NewDocument(data)
	if err != nil {
		return []string{fmt.Sprintf("document not recognized by validator: %s", err)}, nil
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return []string{fmt.Sprintf("validation supports OpenAPI 3.x only, got %s", version)}, nil
	}

	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		return nil, fmt.Errorf("creating validator: %w", errs[0])
	}

	valid, valErrs := v.ValidateDocument()
	if valid {
		return nil, nil
	}

	findings := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		finding := ve.Message
		if ve.Reason != "" {
			finding += ": " + ve.Reason
		}
		findings = append(findings, finding)
	}
	return findings, nil
}
