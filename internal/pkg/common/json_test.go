package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	text := "Here is your recipe:\n```json\n{\"name\": \"Pancakes\"}\n```\nEnjoy!"

	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.Equal(t, `{"name": "Pancakes"}`, raw)
}

func TestExtractJSONObjectGreedy(t *testing.T) {
	// 巢狀物件取第一個 { 到最後一個 }
	text := `prefix {"outer": {"inner": 1}} suffix`

	raw, err := ExtractJSONObject(text)
	require.NoError(t, err)
	assert.Equal(t, `{"outer": {"inner": 1}}`, raw)
}

func TestExtractJSONObjectNotFound(t *testing.T) {
	_, err := ExtractJSONObject("no json here")
	assert.ErrorIs(t, err, ErrNoJSONObject)

	_, err = ExtractJSONObject("} reversed {")
	assert.ErrorIs(t, err, ErrNoJSONObject)

	_, err = ExtractJSONObject("")
	assert.ErrorIs(t, err, ErrNoJSONObject)
}

func TestParseJSON(t *testing.T) {
	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, ParseJSON(`{"name": "Pancakes", "count": 3}`, &out))
	assert.Equal(t, "Pancakes", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var out map[string]interface{}
	err := ParseJSON(`{"a": 1} {"b": 2}`, &out)
	require.Error(t, err)
}

func TestParseJSONStrict(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}

	require.NoError(t, ParseJSONStrict(`{"name": "x"}`, &out))

	err := ParseJSONStrict(`{"name": "x", "extra": true}`, &out)
	require.Error(t, err)
}

func TestToJSON(t *testing.T) {
	s, err := ToJSON(map[string]string{"key": "value"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key": "value"}`, s)
}
