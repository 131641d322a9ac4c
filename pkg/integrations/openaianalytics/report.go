package openaianalytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/gosimple/slug"
	"github.com/sashabaranov/go-openai"
)

// Default stylesheet and script includes offered to the report model. Extra
// libraries are appended; turning the defaults off leaves only the extras.
var (
	defaultReportCSSLibraries = []string{
		"https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css",
		"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
	}

	defaultReportJSLibraries = []string{
		"https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/js/bootstrap.bundle.min.js",
		"https://cdn.jsdelivr.net/npm/chart.js@4.3.0/dist/chart.umd.min.js",
	}
)

const (
	defaultReportTemperature = 0.7
	defaultReportMaxTokens   = 4096
	defaultReportTopP        = 1.0
)

type GenerateHTMLReportParams struct {
	Prompt    string `json:"prompt"`
	InputText string `json:"input_text"`
	Model     string `json:"model"`
	Title     string `json:"title"`

	IncludeDefaultLibraries *bool    `json:"include_default_libraries"`
	ExtraCSSLibraries       []string `json:"extra_css_libraries"`
	ExtraJSLibraries        []string `json:"extra_js_libraries"`

	Temperature *float32 `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"`
	TopP        *float32 `json:"top_p"`
}

// GenerateHTMLReport asks a chat model to write a complete standalone HTML
// document for the given prompt and data, then stores it as a workspace file.
// The item reports size and filename; the document itself travels as the
// attached file.
func (i *OpenAIAnalyticsIntegration) GenerateHTMLReport(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.ItemWithFile, error) {
	p := GenerateHTMLReportParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return domain.ItemWithFile{}, err
	}

	if p.Prompt == "" {
		return domain.ItemWithFile{}, fmt.Errorf("prompt is required")
	}

	if p.Model == "" {
		p.Model = defaultChatModel
	}

	cssLibraries := p.ExtraCSSLibraries
	jsLibraries := p.ExtraJSLibraries

	if p.IncludeDefaultLibraries == nil || *p.IncludeDefaultLibraries {
		cssLibraries = append(append([]string{}, defaultReportCSSLibraries...), p.ExtraCSSLibraries...)
		jsLibraries = append(append([]string{}, defaultReportJSLibraries...), p.ExtraJSLibraries...)
	}

	request := openai.ChatCompletionRequest{
		Model:       p.Model,
		Temperature: defaultReportTemperature,
		MaxTokens:   defaultReportMaxTokens,
		TopP:        defaultReportTopP,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: buildReportPrompt(cssLibraries, jsLibraries),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.Prompt + "\n\nData:\n" + p.InputText,
			},
		},
	}

	if p.Temperature != nil {
		request.Temperature = *p.Temperature
	}

	if p.MaxTokens > 0 {
		request.MaxTokens = p.MaxTokens
	}

	if p.TopP != nil {
		request.TopP = *p.TopP
	}

	response, err := i.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return domain.ItemWithFile{}, err
	}

	if len(response.Choices) == 0 {
		return domain.ItemWithFile{}, fmt.Errorf("report completion returned no choices")
	}

	document := []byte(response.Choices[0].Message.Content)

	fileName := "report.html"
	if p.Title != "" {
		fileName = slug.Make(p.Title) + ".html"
	}

	fileItem, err := i.executorStorageManager.PutExecutionFile(ctx, domain.PutExecutionFileParams{
		WorkspaceID:  i.workspaceID,
		UploadedBy:   string(IntegrationActionType_GenerateHTMLReport),
		OriginalName: fileName,
		SizeInBytes:  int64(len(document)),
		ContentType:  "text/html; charset=utf-8",
		Reader:       io.NopCloser(bytes.NewReader(document)),
	})
	if err != nil {
		return domain.ItemWithFile{}, fmt.Errorf("failed to store report: %w", err)
	}

	return domain.ItemWithFile{
		Item: map[string]any{
			"success":          true,
			"report_generated": true,
			"report_size":      int64(len(document)),
			"file_name":        fileName,
		},
		File: fileItem,
	}, nil
}

func buildReportPrompt(cssLibraries, jsLibraries []string) string {
	var b strings.Builder

	b.WriteString("You are a professional data analyst and web developer. ")
	b.WriteString("Analyze the user's data and produce a visually polished HTML report.\n\n")
	b.WriteString("Report rules:\n")
	b.WriteString("1. Use a responsive layout that works on any device.\n")
	b.WriteString("2. Keep the design modern and professional.\n")
	b.WriteString("3. Visualize the data clearly and provide analytical insights.\n")
	b.WriteString("4. Use charts and graphs where they help.\n")
	b.WriteString("5. Structure information in tables when appropriate.\n")
	b.WriteString("6. Use only the data the user provided. Never invent data.\n\n")

	if len(cssLibraries) > 0 || len(jsLibraries) > 0 {
		b.WriteString("You may use these libraries:\n")
		if len(cssLibraries) > 0 {
			b.WriteString("- CSS: " + strings.Join(cssLibraries, ", ") + "\n")
		}
		if len(jsLibraries) > 0 {
			b.WriteString("- JS: " + strings.Join(jsLibraries, ", ") + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Respond with a complete HTML document including the <html>, <head> and <body> tags. ")
	b.WriteString("Embed all CSS and JavaScript in the document itself.")

	return b.String()
}
