package openaianalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// Repair method tags reported in the result so callers can see how far down
// the chain the parse had to go.
const (
	RepairMethod_Full        = "full"
	RepairMethod_Balanced    = "balanced"
	RepairMethod_Regex       = "regex"
	RepairMethod_OpenAI      = "openai"
	RepairMethod_OpenAIRegex = "openai+regex"
)

var (
	fencePattern  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	arrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
)

// repairStage is a pure parse attempt. Stages take the cleaned text and
// either produce a decoded value or an error; they never mutate shared state,
// so the chain can be reordered or subset freely.
type repairStage struct {
	name  string
	parse func(text string) (any, error)
}

var localRepairStages = []repairStage{
	{name: RepairMethod_Full, parse: parseFullJSON},
	{name: RepairMethod_Balanced, parse: parseBalancedJSON},
	{name: RepairMethod_Regex, parse: parseRegexJSON},
}

type ParseJSONParams struct {
	Text          string `json:"text"`
	ExtractMethod string `json:"extract_method"`
	UseLLM        bool   `json:"use_llm"`
	Model         string `json:"model"`
}

// ParseJSON runs the text through progressively more aggressive extraction
// stages and reports the outcome as data. Parse failure is a result, not an
// error: the item carries {"success": false} and the workflow keeps moving.
func (i *OpenAIAnalyticsIntegration) ParseJSON(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := ParseJSONParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	cleaned := stripMarkdownFences(p.Text)

	stages, err := selectRepairStages(p.ExtractMethod)
	if err != nil {
		return nil, err
	}

	var attempts []string

	for _, stage := range stages {
		value, err := stage.parse(cleaned)
		if err != nil {
			attempts = append(attempts, stage.name+": "+err.Error())
			continue
		}

		return repairSuccess(value, stage.name, cleaned), nil
	}

	if p.UseLLM {
		return i.repairWithLLM(ctx, cleaned, p.Model, attempts), nil
	}

	return repairFailure(cleaned, attempts), nil
}

func selectRepairStages(method string) ([]repairStage, error) {
	if method == "" || method == "auto" {
		return localRepairStages, nil
	}

	for _, stage := range localRepairStages {
		if stage.name == method {
			return []repairStage{stage}, nil
		}
	}

	return nil, fmt.Errorf("unknown extract method %q", method)
}

func repairSuccess(value any, method, original string) map[string]any {
	return map[string]any{
		"success":  true,
		"data":     value,
		"method":   method,
		"original": original,
	}
}

// repairFailure keeps every attempted stage's error so callers can see what
// was tried, with the most recent one surfaced as the error field.
func repairFailure(original string, attempts []string) map[string]any {
	result := map[string]any{
		"success":  false,
		"original": original,
	}

	if len(attempts) > 0 {
		result["error"] = attempts[len(attempts)-1]
		result["errors"] = attempts
	}

	return result
}

// stripMarkdownFences unwraps a ```json fenced block when one is present,
// which is how chat models usually wrap their JSON.
func stripMarkdownFences(text string) string {
	trimmed := strings.TrimSpace(text)

	match := fencePattern.FindStringSubmatch(trimmed)
	if len(match) == 2 {
		return strings.TrimSpace(match[1])
	}

	return trimmed
}

func parseFullJSON(text string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, err
	}

	return value, nil
}

// parseBalancedJSON extracts the first balanced object or array, tracking
// string and escape state so braces inside string values do not confuse the
// depth count.
func parseBalancedJSON(text string) (any, error) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return nil, fmt.Errorf("no JSON value found")
	}

	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for index := start; index < len(text); index++ {
		char := text[index]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case char == '\\' && inString:
			escaped = true
		case char == '"':
			inString = !inString
		case inString:
		case char == open:
			depth++
		case char == close:
			depth--
			if depth == 0 {
				return parseFullJSON(text[start : index+1])
			}
		}
	}

	return nil, fmt.Errorf("unbalanced JSON value")
}

// parseRegexJSON grabs the widest {...} or [...] span and tries to decode it.
// Crude, but it recovers JSON buried in prose that the balanced scan rejects.
func parseRegexJSON(text string) (any, error) {
	for _, pattern := range []*regexp.Regexp{objectPattern, arrayPattern} {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}

		value, err := parseFullJSON(match)
		if err == nil {
			return value, nil
		}
	}

	return nil, fmt.Errorf("no parsable JSON span found")
}

// repairWithLLM asks a chat model to rewrite the malformed text as valid
// JSON, then reruns the local stages on the reply. Like the local stages this
// never raises; any failure lands in the result record.
func (i *OpenAIAnalyticsIntegration) repairWithLLM(ctx context.Context, text, model string, attempts []string) map[string]any {
	if model == "" {
		model = defaultChatModel
	}

	response, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Fix the malformed JSON provided by the user. Respond with only the corrected JSON, no commentary.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("JSON repair completion failed")

		return repairFailure(text, append(attempts, RepairMethod_OpenAI+": "+err.Error()))
	}

	if len(response.Choices) == 0 {
		return repairFailure(text, append(attempts, RepairMethod_OpenAI+": repair completion returned no choices"))
	}

	reply := stripMarkdownFences(response.Choices[0].Message.Content)

	value, err := parseFullJSON(reply)
	if err == nil {
		return repairSuccess(value, RepairMethod_OpenAI, text)
	}

	attempts = append(attempts, RepairMethod_OpenAI+": "+err.Error())

	value, err = parseRegexJSON(reply)
	if err == nil {
		return repairSuccess(value, RepairMethod_OpenAIRegex, text)
	}

	attempts = append(attempts, RepairMethod_OpenAIRegex+": "+err.Error())

	result := repairFailure(text, attempts)
	result["attempted_fix"] = reply

	return result
}
