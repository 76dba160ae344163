package compact

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minapi/minapi/internal/document"
)

const scenarioDoc = `{"openapi":"3.0.0","paths":{"/pets":{"get":{"summary":"List all pets","parameters":[{"name":"limit","in":"query","required":false,"schema":{"type":"integer","format":"int32"}}],"responses":{"200":{"content":{"application/json":{"schema":{"$ref":"#/components/schemas/Pets"}}}}}}}},"components":{"schemas":{"Pets":{"type":"array","items":{"$ref":"#/components/schemas/Pet"}},"Pet":{"type":"object","required":["id"],"properties":{"id":{"type":"integer"}}}}}}`

func TestEngineRunScenario(t *testing.T) {
	engine := NewEngine(DefaultOptions(), document.YAMLParser())

	result, err := engine.Run(scenarioDoc)
	require.NoError(t, err)

	// Pets is directly referenced under paths; Pet is reachable only
	// through Pets.items and stays out under the direct policy.
	want := `{"endpoints":[{"m":"get","p":"/pets","desc":"List all pets","qp":["limit:integer?(int32)"],"res":"Pets","codes":[200]}],"schemas":{"Pets":{"type":"array","items":{"$ref":"Pet"}}}}`
	require.Equal(t, want, result.Output)

	require.Equal(t, len(scenarioDoc), result.InputBytes)
	require.Equal(t, len(want), result.OutputBytes)
	require.Positive(t, result.Reduction)
}

func TestEngineRunTransitive(t *testing.T) {
	opts := DefaultOptions()
	opts.RefPolicy = RefsTransitive
	engine := NewEngine(opts, document.YAMLParser())

	result, err := engine.Run(scenarioDoc)
	require.NoError(t, err)

	want := `{"endpoints":[{"m":"get","p":"/pets","desc":"List all pets","qp":["limit:integer?(int32)"],"res":"Pets","codes":[200]}],"schemas":{"Pets":{"type":"array","items":{"$ref":"Pet"}},"Pet":{"type":"object","required":["id"],"integer id":true}}}`
	require.Equal(t, want, result.Output)
}

func TestEngineRunIdempotent(t *testing.T) {
	engine := NewEngine(DefaultOptions(), document.YAMLParser())

	first, err := engine.Run(scenarioDoc)
	require.NoError(t, err)
	second, err := engine.Run(scenarioDoc)
	require.NoError(t, err)

	require.Equal(t, first.Output, second.Output)
	require.Equal(t, first.Reduction, second.Reduction)
}

func TestEngineRunEmptyInput(t *testing.T) {
	engine := NewEngine(DefaultOptions(), document.YAMLParser())

	result, err := engine.Run("   \n ")
	require.NoError(t, err)
	require.Empty(t, result.Output)
	require.Zero(t, result.Reduction)
}

func TestEngineRunMalformed(t *testing.T) {
	engine := NewEngine(DefaultOptions(), document.YAMLParser())

	result, err := engine.Run(`{"paths": [`)
	require.Nil(t, result)

	var formatErr *document.FormatError
	require.ErrorAs(t, err, &formatErr)
	require.NotEmpty(t, formatErr.Error())
}

func TestEngineRunParserUnavailable(t *testing.T) {
	engine := NewEngine(DefaultOptions(), nil)

	_, err := engine.Run(`{"openapi":"3.0.0"}`)
	require.ErrorIs(t, err, document.ErrParserUnavailable)
}

func TestEngineHostAndSecurity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "servers and security schemes",
			input: `{"servers":[{"url":"https://api.pets.dev"}],"components":{"securitySchemes":{"bearer":{"type":"http"}}},"paths":{}}`,
			want:  `{"host":"https://api.pets.dev","sec":["bearer"],"endpoints":[]}`,
		},
		{
			name:  "legacy host and securityDefinitions",
			input: `{"swagger":"2.0","host":"pets.dev","securityDefinitions":{"basic":{"type":"basic"}},"paths":{}}`,
			want:  `{"host":"pets.dev","sec":["basic"],"endpoints":[]}`,
		},
		{
			name:  "everything absent",
			input: `{"openapi":"3.0.0"}`,
			want:  `{"endpoints":[]}`,
		},
	}

	engine := NewEngine(DefaultOptions(), document.YAMLParser())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Run(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, result.Output)
		})
	}
}

func TestEngineSeedSchemas(t *testing.T) {
	input := `{"paths":{"/health":{"get":{}}},"components":{"schemas":{"Error":{"type":"object","properties":{"message":{"type":"string"}}},"Unrelated":{"type":"string"}}}}`

	engine := NewEngine(DefaultOptions(), document.YAMLParser())
	result, err := engine.Run(input)
	require.NoError(t, err)

	// Error is a seed and rides along despite never being referenced;
	// Unrelated is neither referenced nor a seed.
	want := `{"endpoints":[{"m":"get","p":"/health","codes":[]}],"schemas":{"Error":{"type":"object","string message":true}}}`
	require.Equal(t, want, result.Output)
}
