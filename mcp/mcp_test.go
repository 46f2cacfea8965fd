package mcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func TestFlattenContent(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		assert.Equal(t, "", flattenContent(nil))
	})

	t.Run("text parts joined", func(t *testing.T) {
		result := mcp.NewToolResultText("first")
		result.Content = append(result.Content, mcp.NewToolResultText("second").Content...)

		assert.Equal(t, "first\nsecond", flattenContent(result))
	})

	t.Run("structured content appended", func(t *testing.T) {
		result := mcp.NewToolResultText("summary")
		result.StructuredContent = map[string]any{"count": 3}

		assert.Equal(t, "summary\n{\"count\":3}", flattenContent(result))
	})

	t.Run("error result text preserved", func(t *testing.T) {
		result := mcp.NewToolResultError("remote failed")
		assert.Equal(t, "remote failed", flattenContent(result))
	})
}

func TestWrapToolUsesRawSchema(t *testing.T) {
	s := &Source{}

	raw := []byte(`{"type": "object", "properties": {"q": {"type": "string"}}}`)
	wrapped := s.wrapTool(mcp.Tool{
		Name:           "search",
		Description:    "Search things",
		RawInputSchema: raw,
	})

	assert.Equal(t, "search", wrapped.Function.Name)
	assert.Equal(t, "Search things", wrapped.Function.Description)
	assert.JSONEq(t, string(raw), string(wrapped.Function.Parameters))
	assert.NotNil(t, wrapped.Callback)
}
