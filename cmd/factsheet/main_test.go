package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDump(t *testing.T) {
	v := map[string]any{"id": "nominal-gdp", "data": []any{nil, 4187.4}}

	var buf bytes.Buffer
	require.NoError(t, writeDump(&buf, "json", v))
	assert.Contains(t, buf.String(), `"id": "nominal-gdp"`)
	assert.Contains(t, buf.String(), "null")

	buf.Reset()
	require.NoError(t, writeDump(&buf, "YAML", v))
	assert.Contains(t, buf.String(), "id: nominal-gdp")

	assert.Error(t, writeDump(&buf, "csv", v))
}

func TestEnvOr(t *testing.T) {
	t.Setenv("FACTSHEET_TEST_KEY", " value ")
	assert.Equal(t, "value", envOr("FACTSHEET_TEST_KEY", "def"))
	assert.Equal(t, "def", envOr("FACTSHEET_TEST_MISSING", "def"))
}
