package analyses

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlainObject(t *testing.T) {
	obj, err := ExtractJSON(`{"jd_analysis":{"company":"Acme"}}`)
	require.NoError(t, err)
	jd, ok := obj["jd_analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme", jd["company"])
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	text := "Here is the analysis you asked for:\n{\"improvements\":[\"x\"]}\nLet me know if you need anything else."
	obj, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, obj["improvements"])
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	text := "```json\n{\"improvements\":[]}\n```"
	obj, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, []any{}, obj["improvements"])
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	text := `{"summary":"uses {braces} and a quote \" inside","n":1} trailing {"other":2}`
	obj, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, `uses {braces} and a quote " inside`, obj["summary"])
	assert.Equal(t, float64(1), obj["n"])
	assert.NotContains(t, obj, "other")
}

func TestExtractJSONFirstObjectOnly(t *testing.T) {
	// A greedy first-to-last match would produce invalid JSON here.
	text := `{"a":1} and then {"b":2}`
	obj, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, float64(1), obj["a"])
}

func TestExtractJSONNested(t *testing.T) {
	text := `prose {"optimized_resume":{"header":{"name":"A"}}} prose`
	obj, err := ExtractJSON(text)
	require.NoError(t, err)
	res := obj["optimized_resume"].(map[string]any)
	header := res["header"].(map[string]any)
	assert.Equal(t, "A", header["name"])
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("I could not produce an analysis.")
	assert.True(t, errors.Is(err, ErrMalformedCompletion))
}

func TestExtractJSONUnbalanced(t *testing.T) {
	_, err := ExtractJSON(`{"a": {"b": 1}`)
	assert.True(t, errors.Is(err, ErrMalformedCompletion))
}

func TestExtractJSONEscapedBackslashBeforeQuote(t *testing.T) {
	text := `{"path":"C:\\","ok":true}`
	obj, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, true, obj["ok"])
}
