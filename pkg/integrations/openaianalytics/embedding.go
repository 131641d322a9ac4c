package openaianalytics

import (
	"context"
	"fmt"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/sashabaranov/go-openai"
)

const defaultEmbeddingModel = "text-embedding-3-small"

type CreateEmbeddingParams struct {
	Model        string `json:"model"`
	Text         string `json:"text"`
	Dimensions   int    `json:"dimensions"`
	IncludeUsage bool   `json:"include_usage"`
}

func (i *OpenAIAnalyticsIntegration) CreateEmbedding(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateEmbeddingParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	if p.Model == "" {
		p.Model = defaultEmbeddingModel
	}

	response, err := i.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      p.Text,
		Model:      openai.EmbeddingModel(p.Model),
		Dimensions: p.Dimensions,
	})
	if err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}

	result := map[string]any{
		"embedding":  response.Data[0].Embedding,
		"dimensions": len(response.Data[0].Embedding),
		"model":      string(response.Model),
	}

	if p.IncludeUsage {
		result["usage"] = map[string]any{
			"prompt_tokens": response.Usage.PromptTokens,
			"total_tokens":  response.Usage.TotalTokens,
		}
	}

	return result, nil
}

type CreateEmbeddingsParams struct {
	Model      string   `json:"model"`
	Texts      []string `json:"texts"`
	Dimensions int      `json:"dimensions"`
}

func (i *OpenAIAnalyticsIntegration) CreateEmbeddings(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateEmbeddingsParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if len(p.Texts) == 0 {
		return nil, fmt.Errorf("at least one text is required")
	}

	if p.Model == "" {
		p.Model = defaultEmbeddingModel
	}

	response, err := i.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      p.Texts,
		Model:      openai.EmbeddingModel(p.Model),
		Dimensions: p.Dimensions,
	})
	if err != nil {
		return nil, err
	}

	if len(response.Data) != len(p.Texts) {
		return nil, fmt.Errorf("embedding response size mismatch: asked for %d, got %d", len(p.Texts), len(response.Data))
	}

	embeddings := make([][]float32, len(response.Data))
	for _, data := range response.Data {
		if data.Index < 0 || data.Index >= len(embeddings) {
			return nil, fmt.Errorf("embedding response index %d out of range for %d inputs", data.Index, len(p.Texts))
		}

		embeddings[data.Index] = data.Embedding
	}

	return map[string]any{
		"embeddings": embeddings,
		"count":      len(embeddings),
		"model":      string(response.Model),
		"usage": map[string]any{
			"prompt_tokens": response.Usage.PromptTokens,
			"total_tokens":  response.Usage.TotalTokens,
		},
	}, nil
}

// embedText fetches a single embedding, used by the classifiers.
func (i *OpenAIAnalyticsIntegration) embedText(ctx context.Context, model, text string) ([]float32, error) {
	response, err := i.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: text,
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}

	return response.Data[0].Embedding, nil
}
