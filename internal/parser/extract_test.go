package parser_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/parser"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]any
		ok   bool
	}{
		{
			name: "fenced json block",
			text: "Here is the result:\n```json\n{\"type\": \"invoice\"}\n```\nDone.",
			want: map[string]any{"type": "invoice"},
			ok:   true,
		},
		{
			name: "bare object with prose",
			text: `The document appears to be an invoice. {"type": "invoice", "data": {"invoice_number": "123"}} Let me know if you need more.`,
			want: map[string]any{"type": "invoice", "data": map[string]any{"invoice_number": "123"}},
			ok:   true,
		},
		{
			name: "whole text is the object",
			text: `{"type": "contract"}`,
			want: map[string]any{"type": "contract"},
			ok:   true,
		},
		{
			name: "nested braces",
			text: `{"a": {"b": {"c": 1}}}`,
			want: map[string]any{"a": map[string]any{"b": map[string]any{"c": float64(1)}}},
			ok:   true,
		},
		{
			name: "fenced block wins over trailing brace noise",
			text: "```json\n{\"x\": 1}\n``` and then some stray } characters",
			want: map[string]any{"x": float64(1)},
			ok:   true,
		},
		{name: "no json at all", text: "I could not read the document, sorry.", ok: false},
		{name: "malformed object", text: `{"type": "invoice"`, ok: false},
		{name: "array not object", text: `[1, 2, 3]`, ok: false},
		{name: "empty", text: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := parser.ExtractObject(tt.text)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, raw)
				return
			}
			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractEnvelope(t *testing.T) {
	t.Run("full envelope", func(t *testing.T) {
		env := parser.ExtractEnvelope("```json\n{\"type\": \"bank_statement\", \"data\": {\"transactions\": []}}\n```")
		assert.Equal(t, "bank_statement", env.Type)
		assert.JSONEq(t, `{"transactions": []}`, string(env.Data))
	})

	t.Run("missing data defaults to empty object", func(t *testing.T) {
		env := parser.ExtractEnvelope(`{"type": "other"}`)
		assert.Equal(t, "other", env.Type)
		assert.JSONEq(t, `{}`, string(env.Data))
	})

	t.Run("unparseable reply yields zero envelope", func(t *testing.T) {
		env := parser.ExtractEnvelope("no structure here")
		assert.Empty(t, env.Type)
		assert.Nil(t, env.Data)
	})

	t.Run("object without type", func(t *testing.T) {
		env := parser.ExtractEnvelope(`{"data": {"invoice_number": "1"}}`)
		assert.Empty(t, env.Type)
		assert.JSONEq(t, `{"invoice_number": "1"}`, string(env.Data))
	})
}
