package openaianalytics

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient is the slice of the vendor client this integration calls.
// *openai.Client satisfies it; tests substitute a mock via SetClient.
type OpenAIClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)

	CreateAssistant(ctx context.Context, request openai.AssistantRequest) (openai.Assistant, error)
	RetrieveAssistant(ctx context.Context, assistantID string) (openai.Assistant, error)
	ListAssistants(ctx context.Context, limit *int, order *string, after *string, before *string) (openai.AssistantsList, error)

	CreateThread(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error)
	RetrieveThread(ctx context.Context, threadID string) (openai.Thread, error)
	CreateMessage(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error)
	ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string, runID *string) (openai.MessagesList, error)
	CreateRun(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID string, runID string) (openai.Run, error)

	CreateFile(ctx context.Context, request openai.FileRequest) (openai.File, error)
	GetFile(ctx context.Context, fileID string) (openai.File, error)
	ListFiles(ctx context.Context) (openai.FilesList, error)
	GetFileContent(ctx context.Context, fileID string) (openai.RawResponse, error)

	ListModels(ctx context.Context) (openai.ModelsList, error)
}

var _ OpenAIClient = (*openai.Client)(nil)
