package openaianalytics

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	ctx := context.Background()

	parse := func(t *testing.T, client OpenAIClient, settings map[string]any) map[string]any {
		t.Helper()

		integration := newTestIntegration(t, client, nil)

		result, err := integration.ParseJSON(ctx, settingsInput(IntegrationActionType_ParseJSON, settings), map[string]any{})
		require.NoError(t, err)

		return result.(map[string]any)
	}

	t.Run("clean json parses with the full stage", func(t *testing.T) {
		output := parse(t, &mockClient{}, map[string]any{
			"text": `{"name": "dante", "count": 3}`,
		})

		assert.Equal(t, true, output["success"])
		assert.Equal(t, RepairMethod_Full, output["method"])

		data := output["data"].(map[string]any)
		assert.Equal(t, "dante", data["name"])
	})

	t.Run("markdown fences are stripped first", func(t *testing.T) {
		output := parse(t, &mockClient{}, map[string]any{
			"text": "```json\n{\"ok\": true}\n```",
		})

		assert.Equal(t, true, output["success"])
		assert.Equal(t, RepairMethod_Full, output["method"])
	})

	t.Run("json embedded in prose needs the balanced stage", func(t *testing.T) {
		output := parse(t, &mockClient{}, map[string]any{
			"text":           `Sure! Here is the result: {"items": [1, 2, 3], "note": "use {braces} carefully"} Hope that helps.`,
			"extract_method": RepairMethod_Balanced,
		})

		assert.Equal(t, true, output["success"])
		assert.Equal(t, RepairMethod_Balanced, output["method"])

		data := output["data"].(map[string]any)
		assert.Equal(t, "use {braces} carefully", data["note"])
	})

	t.Run("unrepairable text without llm is a failed result, not an error", func(t *testing.T) {
		chatCalls := 0
		client := &mockClient{
			createChatCompletion: func(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				chatCalls++
				return openai.ChatCompletionResponse{}, nil
			},
		}

		output := parse(t, client, map[string]any{
			"text": `{"a": 1,,,`,
		})

		assert.Equal(t, false, output["success"])
		assert.NotEmpty(t, output["error"])
		assert.Equal(t, 0, chatCalls)
	})

	t.Run("llm repair kicks in after local stages fail", func(t *testing.T) {
		client := &mockClient{
			createChatCompletion: func(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{
					Choices: []openai.ChatCompletionChoice{
						{Message: openai.ChatCompletionMessage{Content: `{"a": 1}`}},
					},
				}, nil
			},
		}

		output := parse(t, client, map[string]any{
			"text":    `{"a": 1,,,`,
			"use_llm": true,
		})

		assert.Equal(t, true, output["success"])
		assert.Equal(t, RepairMethod_OpenAI, output["method"])
	})

	t.Run("unknown extract method", func(t *testing.T) {
		integration := newTestIntegration(t, &mockClient{}, nil)

		_, err := integration.ParseJSON(ctx, settingsInput(IntegrationActionType_ParseJSON, map[string]any{
			"text":           "{}",
			"extract_method": "hopeful",
		}), map[string]any{})
		require.Error(t, err)
	})
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "json fence", input: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "plain fence", input: "```\n[1,2]\n```", expected: "[1,2]"},
		{name: "no fence", input: `  {"a":1}  `, expected: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripMarkdownFences(tt.input))
		})
	}
}

func TestParseBalancedJSON(t *testing.T) {
	t.Run("array value", func(t *testing.T) {
		value, err := parseBalancedJSON("prefix [1, 2, 3] suffix")
		require.NoError(t, err)
		assert.Equal(t, []any{1.0, 2.0, 3.0}, value)
	})

	t.Run("escaped quotes inside strings", func(t *testing.T) {
		value, err := parseBalancedJSON(`noise {"quote": "she said \"hi\" {loudly}"} trailing`)
		require.NoError(t, err)

		object := value.(map[string]any)
		assert.Equal(t, `she said "hi" {loudly}`, object["quote"])
	})

	t.Run("unbalanced input", func(t *testing.T) {
		_, err := parseBalancedJSON(`{"open": [1, 2`)
		require.Error(t, err)
	})

	t.Run("no json at all", func(t *testing.T) {
		_, err := parseBalancedJSON("just words")
		require.Error(t, err)
	})
}
