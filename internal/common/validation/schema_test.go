package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keywordSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"keywords": {
				Type:     "array",
				Items:    &Property{Type: "string"},
				MinItems: Int(1),
			},
			"category": {
				Type: "string",
				Enum: []string{"plan", "design", "build", "integrate"},
			},
		},
		Required:             []string{"keywords"},
		AdditionalProperties: Bool(false),
	}
}

func TestCompile_ValidatesDocuments(t *testing.T) {
	v, err := Compile(keywordSchema())
	require.NoError(t, err)

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantField string
	}{
		{"valid", `{"keywords":["iot"]}`, true, ""},
		{"missing required", `{}`, false, "keywords"},
		{"wrong item type", `{"keywords":[1]}`, false, "keywords.0"},
		{"empty keywords", `{"keywords":[]}`, false, "keywords"},
		{"bad enum", `{"keywords":["x"],"category":"ship"}`, false, "category"},
		{"extra field", `{"keywords":["x"],"foo":1}`, false, "(root)"},
		{"empty document treated as object", ``, false, "keywords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateJSON([]byte(tt.doc))
			assert.Equal(t, tt.wantValid, res.Valid, res.GetErrorMessages())
			if tt.wantField != "" {
				assert.True(t, res.HasErrors(tt.wantField), res.GetErrorMessages())
			}
		})
	}
}

func TestValidateJSON_Malformed(t *testing.T) {
	v, err := Compile(keywordSchema())
	require.NoError(t, err)

	res := v.ValidateJSON([]byte(`{"keywords":`))
	assert.False(t, res.Valid)
	assert.Equal(t, "INVALID_JSON", res.Errors[0].Code)
}

func TestCompile_RejectsBrokenSchema(t *testing.T) {
	_, err := Compile(JSONSchema{
		Type:       "object",
		Properties: map[string]Property{"x": {Type: "strnig"}},
	})
	assert.Error(t, err)
}

func TestJSONSchema_MarshalEmptyObject(t *testing.T) {
	raw, err := json.Marshal(JSONSchema{Type: "object"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(raw))
}

func TestValidateInput(t *testing.T) {
	res := ValidateInput(map[string]interface{}{"keywords": []interface{}{"cloud"}}, keywordSchema())
	assert.True(t, res.Valid)
}

func TestValidateToolName(t *testing.T) {
	assert.NoError(t, ValidateToolName("get_case_studies_by_industry"))
	assert.Error(t, ValidateToolName("GetCaseStudies"))
	assert.Error(t, ValidateToolName("find-services"))
	assert.Error(t, ValidateToolName("_leading"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ana@example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
}
