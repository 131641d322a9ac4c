package openaianalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sashabaranov/go-openai"
)

type FunctionToolInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  string `json:"parameters"`
}

type CreateAssistantParams struct {
	Model        string   `json:"model"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	Temperature  *float32 `json:"temperature"`
	TopP         *float32 `json:"top_p"`

	EnableCodeInterpreter bool                `json:"enable_code_interpreter"`
	EnableFileSearch      bool                `json:"enable_file_search"`
	Functions             []FunctionToolInput `json:"functions"`

	CodeInterpreterFileIDs []string `json:"code_interpreter_file_ids"`
	VectorStoreIDs         []string `json:"vector_store_ids"`

	ResponseFormat string `json:"response_format"`
}

func (i *OpenAIAnalyticsIntegration) CreateAssistant(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateAssistantParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	request := openai.AssistantRequest{
		Model: p.Model,
	}

	if p.Name != "" {
		request.Name = &p.Name
	}

	if p.Description != "" {
		request.Description = &p.Description
	}

	if p.Instructions != "" {
		request.Instructions = &p.Instructions
	}

	request.Temperature = p.Temperature
	request.TopP = p.TopP

	if p.EnableCodeInterpreter {
		request.Tools = append(request.Tools, openai.AssistantTool{
			Type: openai.AssistantToolTypeCodeInterpreter,
		})
	}

	if p.EnableFileSearch {
		request.Tools = append(request.Tools, openai.AssistantTool{
			Type: openai.AssistantToolTypeFileSearch,
		})
	}

	for _, function := range p.Functions {
		parameters, err := parseFunctionParameters(function.Parameters)
		if err != nil {
			return nil, fmt.Errorf("function %q has an invalid parameter schema: %w", function.Name, err)
		}

		request.Tools = append(request.Tools, openai.AssistantTool{
			Type: openai.AssistantToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        function.Name,
				Description: function.Description,
				Parameters:  parameters,
			},
		})
	}

	toolResources := buildToolResources(p)
	if toolResources != nil {
		request.ToolResources = toolResources
	}

	if p.ResponseFormat == "json_object" {
		request.ResponseFormat = map[string]any{"type": "json_object"}
	}

	assistant, err := i.client.CreateAssistant(ctx, request)
	if err != nil {
		return nil, err
	}

	return toItem(assistant)
}

// parseFunctionParameters checks that the supplied text is a valid JSON
// schema before it is sent to the provider, which would otherwise reject the
// whole assistant with an opaque error.
func parseFunctionParameters(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return map[string]any{"type": "object", "properties": map[string]any{}}, nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("parameters.json", strings.NewReader(trimmed)); err != nil {
		return nil, err
	}

	if _, err := compiler.Compile("parameters.json"); err != nil {
		return nil, err
	}

	var parameters map[string]any
	if err := json.Unmarshal([]byte(trimmed), &parameters); err != nil {
		return nil, err
	}

	return parameters, nil
}

func buildToolResources(p CreateAssistantParams) *openai.AssistantToolResource {
	resources := &openai.AssistantToolResource{}
	populated := false

	if len(p.CodeInterpreterFileIDs) > 0 {
		resources.CodeInterpreter = &openai.AssistantToolCodeInterpreter{
			FileIDs: p.CodeInterpreterFileIDs,
		}
		populated = true
	}

	if len(p.VectorStoreIDs) > 0 {
		resources.FileSearch = &openai.AssistantToolFileSearch{
			VectorStoreIDs: p.VectorStoreIDs,
		}
		populated = true
	}

	if !populated {
		return nil
	}

	return resources
}

type GetAssistantParams struct {
	AssistantID string `json:"assistant_id"`
}

func (i *OpenAIAnalyticsIntegration) GetAssistant(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := GetAssistantParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.AssistantID == "" {
		return nil, fmt.Errorf("assistant_id is required")
	}

	assistant, err := i.client.RetrieveAssistant(ctx, p.AssistantID)
	if err != nil {
		return nil, err
	}

	return toItem(assistant)
}

type ListAssistantsParams struct {
	Limit int    `json:"limit"`
	Order string `json:"order"`
}

func (i *OpenAIAnalyticsIntegration) ListAssistants(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := ListAssistantsParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Limit == 0 {
		p.Limit = 20
	}

	var order *string
	if p.Order != "" {
		order = &p.Order
	}

	assistants, err := i.client.ListAssistants(ctx, &p.Limit, order, nil, nil)
	if err != nil {
		return nil, err
	}

	return map[string]any{"assistants": assistants.Assistants}, nil
}
