package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"count": {"type": "integer", "minimum": 0}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "screening", "count": 3}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_MissingRequiredField(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"count": 3}`)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "name")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "x", "count": "three"}`)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "count", ve.Errors[0].Field)
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": nope}`, `{}`)
	require.Error(t, err)
	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "expected *SchemaLoadError, got %T", err)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name":`)
	assert.Error(t, err)
}

func TestResolveSchemaPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	assert.Equal(t, path, ResolveSchemaPath(path))
	assert.Empty(t, ResolveSchemaPath(filepath.Join(dir, "missing.schema.json")))
}
