package openaianalytics

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteDispatchesPerItem(t *testing.T) {
	integration := newTestIntegration(t, &mockClient{}, nil)

	input := domain.IntegrationInput{
		ActionType: IntegrationActionType_CosineSimilarity,
		PayloadByInputID: map[string]domain.Payload{
			"input-1": domain.Payload(`[{}, {}]`),
		},
		IntegrationParams: domain.IntegrationParams{
			Settings: map[string]any{
				"input_mode": VectorInputMode_Direct,
				"vector_a":   "[1, 0]",
				"vector_b":   "[1, 0]",
			},
		},
	}

	output, err := integration.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.ResultJSONByOutputID, 1)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(output.ResultJSONByOutputID[0], &items))
	require.Len(t, items, 2)
	assert.InDelta(t, 1.0, items[0]["similarity"].(float64), 1e-9)
}

func TestExecuteUnknownAction(t *testing.T) {
	integration := newTestIntegration(t, &mockClient{}, nil)

	_, err := integration.Execute(context.Background(), domain.IntegrationInput{
		ActionType: "time_travel",
		PayloadByInputID: map[string]domain.Payload{
			"input-1": domain.Payload(`[{}]`),
		},
	})
	require.Error(t, err)
}

func TestExecuteContinueOnFail(t *testing.T) {
	integration := newTestIntegration(t, &mockClient{}, nil)

	input := domain.IntegrationInput{
		ActionType:     IntegrationActionType_CosineSimilarity,
		ContinueOnFail: true,
		PayloadByInputID: map[string]domain.Payload{
			"input-1": domain.Payload(`[{}, {}]`),
		},
		IntegrationParams: domain.IntegrationParams{
			Settings: map[string]any{
				"input_mode": VectorInputMode_Direct,
				"vector_a":   "[1, 0]",
				"vector_b":   "not a vector at all",
			},
		},
	}

	output, err := integration.Execute(context.Background(), input)
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(output.ResultJSONByOutputID[0], &items))
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0]["error"])
	assert.NotEmpty(t, items[1]["error"])
}

func TestPeek(t *testing.T) {
	ctx := context.Background()

	t.Run("models", func(t *testing.T) {
		client := &mockClient{
			listModels: func(ctx context.Context) (openai.ModelsList, error) {
				return openai.ModelsList{Models: []openai.Model{{ID: "gpt-4o"}, {ID: "gpt-4o-mini"}}}, nil
			},
		}

		integration := newTestIntegration(t, client, nil)

		result, err := integration.Peek(ctx, domain.PeekParams{PeekableType: OpenAIAnalyticsPeekable_Models})
		require.NoError(t, err)
		require.Len(t, result.Result, 2)
		assert.Equal(t, "gpt-4o", result.Result[0].Key)
	})

	t.Run("assistants fall back to the id when unnamed", func(t *testing.T) {
		name := "Analyst"
		client := &mockClient{
			listAssistants: func(ctx context.Context, limit *int, order, after, before *string) (openai.AssistantsList, error) {
				return openai.AssistantsList{Assistants: []openai.Assistant{
					{ID: "assistant-1", Name: &name},
					{ID: "assistant-2"},
				}}, nil
			},
		}

		integration := newTestIntegration(t, client, nil)

		result, err := integration.Peek(ctx, domain.PeekParams{PeekableType: OpenAIAnalyticsPeekable_Assistants})
		require.NoError(t, err)
		require.Len(t, result.Result, 2)
		assert.Equal(t, "Analyst", result.Result[0].Content)
		assert.Equal(t, "assistant-2", result.Result[1].Content)
	})

	t.Run("files respect the pagination limit", func(t *testing.T) {
		client := &mockClient{
			listFiles: func(ctx context.Context) (openai.FilesList, error) {
				return openai.FilesList{Files: []openai.File{
					{ID: "file-1", FileName: "a.json"},
					{ID: "file-2", FileName: "b.json"},
					{ID: "file-3", FileName: "c.json"},
				}}, nil
			},
		}

		integration := newTestIntegration(t, client, nil)

		result, err := integration.Peek(ctx, domain.PeekParams{
			PeekableType: OpenAIAnalyticsPeekable_Files,
			Pagination:   domain.PaginationParams{Limit: 2},
		})
		require.NoError(t, err)
		require.Len(t, result.Result, 2)
		assert.Equal(t, "file-1", result.Result[0].Key)
	})

	t.Run("unknown peekable", func(t *testing.T) {
		integration := newTestIntegration(t, &mockClient{}, nil)

		_, err := integration.Peek(ctx, domain.PeekParams{PeekableType: "vector_stores"})
		require.Error(t, err)
	})
}

func TestSchemaCoversEveryRegisteredAction(t *testing.T) {
	integration := newTestIntegration(t, &mockClient{}, nil)

	for _, action := range Schema.Actions {
		_, perItem := integration.actionManager.GetPerItem(action.ActionType)
		_, perItemWithFile := integration.actionManager.GetPerItemWithFile(action.ActionType)

		assert.True(t, perItem || perItemWithFile, "action %s has no handler", action.ActionType)
	}

	assert.Len(t, Schema.Actions, 22)
}
