package openaianalytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/sashabaranov/go-openai"
)

const defaultChatModel = "gpt-4o-mini"

type ChatCompletionParams struct {
	Model         string   `json:"model"`
	SystemPrompt  string   `json:"system_prompt"`
	Prompt        string   `json:"prompt"`
	Temperature   *float32 `json:"temperature"`
	MaxTokens     int      `json:"max_tokens"`
	JSONMode      bool     `json:"json_mode"`
	SimplifyReply bool     `json:"simplify_reply"`
}

func (i *OpenAIAnalyticsIntegration) ChatCompletion(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := ChatCompletionParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Model == "" {
		p.Model = defaultChatModel
	}

	if p.Prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	messages := []openai.ChatCompletionMessage{}

	if p.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.SystemPrompt,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.Prompt,
	})

	request := openai.ChatCompletionRequest{
		Model:    p.Model,
		Messages: messages,
	}

	if p.Temperature != nil {
		request.Temperature = *p.Temperature
	}

	if p.MaxTokens > 0 {
		// Reasoning model families reject max_tokens in favor of
		// max_completion_tokens.
		if usesMaxCompletionTokens(p.Model) {
			request.MaxCompletionTokens = p.MaxTokens
		} else {
			request.MaxTokens = p.MaxTokens
		}
	}

	if p.JSONMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	response, err := i.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	if p.SimplifyReply {
		return map[string]any{
			"reply": response.Choices[0].Message.Content,
			"model": response.Model,
			"usage": map[string]any{
				"prompt_tokens":     response.Usage.PromptTokens,
				"completion_tokens": response.Usage.CompletionTokens,
				"total_tokens":      response.Usage.TotalTokens,
			},
		}, nil
	}

	return toItem(response)
}

func usesMaxCompletionTokens(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}

	return false
}
