package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlainBody(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, extractJSON("  {\"a\":1}\n"))
}

func TestExtractJSONStripsMarkdownFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
}

func TestDecodeStrictRejectsUnknownFields(t *testing.T) {
	var v struct {
		Score int `json:"score"`
	}
	err := decodeStrict(`{"score": 80, "extra": true}`, &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeStrictRejectsTrailingContent(t *testing.T) {
	var v struct {
		Score int `json:"score"`
	}
	err := decodeStrict(`{"score": 80} {"score": 90}`, &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeStrictAcceptsFencedBody(t *testing.T) {
	var v struct {
		Score int `json:"score"`
	}
	err := decodeStrict("```json\n{\"score\": 80}\n```", &v)
	require.NoError(t, err)
	assert.Equal(t, 80, v.Score)
}
