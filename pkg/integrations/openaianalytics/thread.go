package openaianalytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultRunPollSeconds          = 60
	defaultCreateAndRunPollSeconds = 120
)

type CreateThreadParams struct {
	InitialMessage string `json:"initial_message"`
}

func (i *OpenAIAnalyticsIntegration) CreateThread(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateThreadParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	thread, err := i.client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return nil, err
	}

	if p.InitialMessage != "" {
		_, err = i.client.CreateMessage(ctx, thread.ID, openai.MessageRequest{
			Role:    string(openai.ThreadMessageRoleUser),
			Content: p.InitialMessage,
		})
		if err != nil {
			return nil, err
		}
	}

	return toItem(thread)
}

type GetThreadParams struct {
	ThreadID string `json:"thread_id"`
}

func (i *OpenAIAnalyticsIntegration) GetThread(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := GetThreadParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	thread, err := i.client.RetrieveThread(ctx, p.ThreadID)
	if err != nil {
		return nil, err
	}

	return toItem(thread)
}

type AddMessageParams struct {
	ThreadID string `json:"thread_id"`
	Role     string `json:"role"`
	Content  string `json:"content"`
	FileIDs  string `json:"file_ids"`
}

func (i *OpenAIAnalyticsIntegration) AddMessage(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := AddMessageParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Role == "" {
		p.Role = string(openai.ThreadMessageRoleUser)
	}

	request := openai.MessageRequest{
		Role:    p.Role,
		Content: p.Content,
	}

	for _, fileID := range strings.Split(p.FileIDs, ",") {
		fileID = strings.TrimSpace(fileID)
		if fileID == "" {
			continue
		}

		request.Attachments = append(request.Attachments, openai.ThreadAttachment{
			FileID: fileID,
			Tools:  []openai.ThreadAttachmentTool{{Type: "code_interpreter"}},
		})
	}

	message, err := i.client.CreateMessage(ctx, p.ThreadID, request)
	if err != nil {
		return nil, err
	}

	return toItem(message)
}

type ListMessagesParams struct {
	ThreadID string `json:"thread_id"`
	Limit    int    `json:"limit"`
	Simplify bool   `json:"simplify"`
}

func (i *OpenAIAnalyticsIntegration) ListMessages(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := ListMessagesParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Limit == 0 {
		p.Limit = 20
	}

	messages, err := i.client.ListMessage(ctx, p.ThreadID, &p.Limit, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	if p.Simplify {
		return map[string]any{"messages": flattenMessages(messages.Messages)}, nil
	}

	return map[string]any{"messages": messages.Messages}, nil
}

type RunThreadParams struct {
	ThreadID          string `json:"thread_id"`
	AssistantID       string `json:"assistant_id"`
	Instructions      string `json:"instructions"`
	WaitForCompletion bool   `json:"wait_for_completion"`
	MaxPollSeconds    int    `json:"max_poll_seconds"`
}

func (i *OpenAIAnalyticsIntegration) RunThread(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := RunThreadParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	run, err := i.client.CreateRun(ctx, p.ThreadID, openai.RunRequest{
		AssistantID:  p.AssistantID,
		Instructions: p.Instructions,
	})
	if err != nil {
		return nil, err
	}

	if !p.WaitForCompletion {
		return toItem(run)
	}

	if p.MaxPollSeconds == 0 {
		p.MaxPollSeconds = defaultRunPollSeconds
	}

	run, err = i.pollRunUntilDone(ctx, p.ThreadID, run.ID, p.MaxPollSeconds, run)
	if err != nil {
		return nil, err
	}

	result, err := toItem(run)
	if err != nil {
		return nil, err
	}

	resultMap := result.(map[string]any)

	// Messages are fetched only for completed runs. A run that timed out is
	// returned with its last observed status so callers can tell the
	// difference by inspecting it.
	if run.Status == openai.RunStatusCompleted {
		messages, err := i.client.ListMessage(ctx, p.ThreadID, nil, nil, nil, nil, nil)
		if err != nil {
			return nil, err
		}

		resultMap["messages"] = messages.Messages
	}

	return resultMap, nil
}

type CheckRunStatusParams struct {
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
}

func (i *OpenAIAnalyticsIntegration) CheckRunStatus(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CheckRunStatusParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	run, err := i.client.RetrieveRun(ctx, p.ThreadID, p.RunID)
	if err != nil {
		return nil, err
	}

	return toItem(run)
}

type ThreadMessageInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CreateAndRunThreadParams struct {
	AssistantID       string               `json:"assistant_id"`
	InitialMessage    string               `json:"initial_message"`
	Messages          []ThreadMessageInput `json:"messages"`
	Files             []domain.FileItem    `json:"files"`
	FileIDs           []string             `json:"file_ids"`
	UploadFilePurpose string               `json:"upload_file_purpose"`
	Instructions      string               `json:"instructions"`
	WaitForCompletion bool                 `json:"wait_for_completion"`
	MaxPollSeconds    int                  `json:"max_poll_seconds"`
	SimplifyOutput    bool                 `json:"simplify_output"`
}

func (i *OpenAIAnalyticsIntegration) CreateAndRunThread(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateAndRunThreadParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	// Uploads happen before thread creation, one blocking round trip per
	// file. A failure mid-sequence aborts the operation; files uploaded
	// before the failing one are left behind on the provider.
	attachments := []openai.ThreadAttachment{}

	for _, file := range p.Files {
		uploaded, err := i.uploadExecutionFile(ctx, file, p.UploadFilePurpose)
		if err != nil {
			return nil, fmt.Errorf("failed to upload file %q: %w", file.Name, err)
		}

		attachments = append(attachments, openai.ThreadAttachment{
			FileID: uploaded.ID,
			Tools:  []openai.ThreadAttachmentTool{{Type: "code_interpreter"}},
		})
	}

	for _, fileID := range p.FileIDs {
		if fileID == "" {
			continue
		}

		attachments = append(attachments, openai.ThreadAttachment{
			FileID: fileID,
			Tools:  []openai.ThreadAttachmentTool{{Type: "code_interpreter"}},
		})
	}

	threadMessages := buildThreadMessages(p, attachments)

	thread, err := i.client.CreateThread(ctx, openai.ThreadRequest{
		Messages: threadMessages,
	})
	if err != nil {
		return nil, err
	}

	run, err := i.client.CreateRun(ctx, thread.ID, openai.RunRequest{
		AssistantID:  p.AssistantID,
		Instructions: p.Instructions,
	})
	if err != nil {
		return nil, err
	}

	if !p.WaitForCompletion {
		threadItem, err := toItem(thread)
		if err != nil {
			return nil, err
		}

		runItem, err := toItem(run)
		if err != nil {
			return nil, err
		}

		return map[string]any{"thread": threadItem, "run": runItem}, nil
	}

	if p.MaxPollSeconds == 0 {
		p.MaxPollSeconds = defaultCreateAndRunPollSeconds
	}

	run, err = i.pollRunUntilDone(ctx, thread.ID, run.ID, p.MaxPollSeconds, run)
	if err != nil {
		return nil, err
	}

	var result map[string]any

	if p.SimplifyOutput {
		result = map[string]any{
			"thread_id":  thread.ID,
			"run_id":     run.ID,
			"status":     string(run.Status),
			"created_at": time.Unix(run.CreatedAt, 0).UTC().Format(time.RFC3339),
		}
	} else {
		threadItem, err := toItem(thread)
		if err != nil {
			return nil, err
		}

		runItem, err := toItem(run)
		if err != nil {
			return nil, err
		}

		result = map[string]any{"thread": threadItem, "run": runItem}
	}

	if run.Status == openai.RunStatusCompleted {
		messages, err := i.client.ListMessage(ctx, thread.ID, nil, nil, nil, nil, nil)
		if err != nil {
			return nil, err
		}

		if p.SimplifyOutput {
			result["messages"] = flattenMessages(messages.Messages)
		} else {
			result["messages"] = messages.Messages
		}
	}

	return result, nil
}

func buildThreadMessages(p CreateAndRunThreadParams, attachments []openai.ThreadAttachment) []openai.ThreadMessage {
	if len(p.Messages) > 0 {
		threadMessages := make([]openai.ThreadMessage, 0, len(p.Messages))

		for index, message := range p.Messages {
			threadMessage := openai.ThreadMessage{
				Role:    openai.ThreadMessageRole(message.Role),
				Content: message.Content,
			}

			// The provider only accepts attachments on the first message.
			if index == 0 && len(attachments) > 0 {
				threadMessage.Attachments = attachments
			}

			threadMessages = append(threadMessages, threadMessage)
		}

		return threadMessages
	}

	threadMessage := openai.ThreadMessage{
		Role:    openai.ThreadMessageRoleUser,
		Content: p.InitialMessage,
	}

	if len(attachments) > 0 {
		threadMessage.Attachments = attachments
	}

	return []openai.ThreadMessage{threadMessage}
}

// pollRunUntilDone refreshes the run at a fixed one second interval until it
// reaches a terminal status or the deadline passes. A deadline expiry is not
// an error: the last observed run is returned with its non-terminal status
// intact. Cancelling the context aborts the wait early.
func (i *OpenAIAnalyticsIntegration) pollRunUntilDone(ctx context.Context, threadID, runID string, maxPollSeconds int, initial openai.Run) (openai.Run, error) {
	run := initial
	deadline := time.Now().Add(time.Duration(maxPollSeconds) * time.Second)

	for isRunPending(run.Status) && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-time.After(i.pollInterval):
		}

		refreshed, err := i.client.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return run, err
		}

		run = refreshed
	}

	if isRunPending(run.Status) {
		log.Warn().
			Str("thread_id", threadID).
			Str("run_id", runID).
			Str("status", string(run.Status)).
			Int("max_poll_seconds", maxPollSeconds).
			Msg("Run did not reach a terminal status before the deadline")
	}

	return run, nil
}

// requires_action counts as pending: tool-call submission is not implemented,
// so such a run is polled through until it times out or the provider expires
// it.
func isRunPending(status openai.RunStatus) bool {
	switch status {
	case openai.RunStatusQueued, openai.RunStatusInProgress, openai.RunStatusRequiresAction:
		return true
	}

	return false
}

// flattenMessages reduces messages to {id, role, content, created_at} with
// text content parts collapsed to their value. Non-text parts pass through
// unchanged.
func flattenMessages(messages []openai.Message) []map[string]any {
	flattened := make([]map[string]any, 0, len(messages))

	for _, message := range messages {
		content := make([]any, 0, len(message.Content))

		for _, part := range message.Content {
			if part.Type == "text" && part.Text != nil {
				content = append(content, map[string]any{
					"type": "text",
					"text": part.Text.Value,
				})

				continue
			}

			content = append(content, part)
		}

		flattened = append(flattened, map[string]any{
			"id":         message.ID,
			"role":       message.Role,
			"content":    content,
			"created_at": message.CreatedAt,
		})
	}

	return flattened
}
