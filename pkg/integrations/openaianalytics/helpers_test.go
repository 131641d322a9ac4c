package openaianalytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

type stubBinder struct{}

func (stubBinder) BindToStruct(ctx context.Context, item any, target any, expressions map[string]any) error {
	raw, err := json.Marshal(expressions)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, target)
}

type stubCredentialManager struct{}

func (stubCredentialManager) GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error) {
	credential := domain.Credential{
		ID:               credentialID,
		Type:             domain.CredentialTypeDefault,
		IntegrationType:  domain.IntegrationType_OpenAIAnalytics,
		DecryptedPayload: map[string]any{"api_key": "test-key"},
	}

	return json.Marshal(credential.DecryptedPayload)
}

type memoryStorage struct {
	files map[string][]byte
	puts  []domain.PutExecutionFileParams
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (s *memoryStorage) GetExecutionFile(ctx context.Context, params domain.GetExecutionFileParams) (domain.ExecutionWorkspaceFile, error) {
	content, ok := s.files[params.UploadID]
	if !ok {
		return domain.ExecutionWorkspaceFile{}, fmt.Errorf("file %q not found", params.UploadID)
	}

	return domain.ExecutionWorkspaceFile{
		ID:          params.UploadID,
		WorkspaceID: params.WorkspaceID,
		Name:        params.UploadID,
		SizeInBytes: int64(len(content)),
		Reader:      io.NopCloser(bytes.NewReader(content)),
	}, nil
}

func (s *memoryStorage) PutExecutionFile(ctx context.Context, params domain.PutExecutionFileParams) (domain.FileItem, error) {
	content, err := io.ReadAll(params.Reader)
	if err != nil {
		return domain.FileItem{}, err
	}

	s.files[params.OriginalName] = content
	s.puts = append(s.puts, params)

	return domain.FileItem{
		FileID:      params.OriginalName,
		WorkspaceID: params.WorkspaceID,
		Name:        params.OriginalName,
		SizeInBytes: int64(len(content)),
		ContentType: params.ContentType,
	}, nil
}

// mockClient implements OpenAIClient with pluggable call functions. Unset
// calls fail loudly so a test cannot silently hit an endpoint it did not
// expect.
type mockClient struct {
	createChatCompletion func(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	createEmbeddings     func(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
	createAssistant      func(ctx context.Context, request openai.AssistantRequest) (openai.Assistant, error)
	retrieveAssistant    func(ctx context.Context, assistantID string) (openai.Assistant, error)
	listAssistants       func(ctx context.Context, limit *int, order, after, before *string) (openai.AssistantsList, error)
	createThread         func(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error)
	retrieveThread       func(ctx context.Context, threadID string) (openai.Thread, error)
	createMessage        func(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error)
	listMessage          func(ctx context.Context, threadID string, limit *int, order, after, before, runID *string) (openai.MessagesList, error)
	createRun            func(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error)
	retrieveRun          func(ctx context.Context, threadID, runID string) (openai.Run, error)
	createFile           func(ctx context.Context, request openai.FileRequest) (openai.File, error)
	getFile              func(ctx context.Context, fileID string) (openai.File, error)
	listFiles            func(ctx context.Context) (openai.FilesList, error)
	getFileContent       func(ctx context.Context, fileID string) (openai.RawResponse, error)
	listModels           func(ctx context.Context) (openai.ModelsList, error)
}

func (m *mockClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if m.createChatCompletion == nil {
		return openai.ChatCompletionResponse{}, fmt.Errorf("unexpected CreateChatCompletion call")
	}
	return m.createChatCompletion(ctx, request)
}

func (m *mockClient) CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	if m.createEmbeddings == nil {
		return openai.EmbeddingResponse{}, fmt.Errorf("unexpected CreateEmbeddings call")
	}
	return m.createEmbeddings(ctx, conv)
}

func (m *mockClient) CreateAssistant(ctx context.Context, request openai.AssistantRequest) (openai.Assistant, error) {
	if m.createAssistant == nil {
		return openai.Assistant{}, fmt.Errorf("unexpected CreateAssistant call")
	}
	return m.createAssistant(ctx, request)
}

func (m *mockClient) RetrieveAssistant(ctx context.Context, assistantID string) (openai.Assistant, error) {
	if m.retrieveAssistant == nil {
		return openai.Assistant{}, fmt.Errorf("unexpected RetrieveAssistant call")
	}
	return m.retrieveAssistant(ctx, assistantID)
}

func (m *mockClient) ListAssistants(ctx context.Context, limit *int, order *string, after *string, before *string) (openai.AssistantsList, error) {
	if m.listAssistants == nil {
		return openai.AssistantsList{}, fmt.Errorf("unexpected ListAssistants call")
	}
	return m.listAssistants(ctx, limit, order, after, before)
}

func (m *mockClient) CreateThread(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error) {
	if m.createThread == nil {
		return openai.Thread{}, fmt.Errorf("unexpected CreateThread call")
	}
	return m.createThread(ctx, request)
}

func (m *mockClient) RetrieveThread(ctx context.Context, threadID string) (openai.Thread, error) {
	if m.retrieveThread == nil {
		return openai.Thread{}, fmt.Errorf("unexpected RetrieveThread call")
	}
	return m.retrieveThread(ctx, threadID)
}

func (m *mockClient) CreateMessage(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error) {
	if m.createMessage == nil {
		return openai.Message{}, fmt.Errorf("unexpected CreateMessage call")
	}
	return m.createMessage(ctx, threadID, request)
}

func (m *mockClient) ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string, runID *string) (openai.MessagesList, error) {
	if m.listMessage == nil {
		return openai.MessagesList{}, fmt.Errorf("unexpected ListMessage call")
	}
	return m.listMessage(ctx, threadID, limit, order, after, before, runID)
}

func (m *mockClient) CreateRun(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error) {
	if m.createRun == nil {
		return openai.Run{}, fmt.Errorf("unexpected CreateRun call")
	}
	return m.createRun(ctx, threadID, request)
}

func (m *mockClient) RetrieveRun(ctx context.Context, threadID string, runID string) (openai.Run, error) {
	if m.retrieveRun == nil {
		return openai.Run{}, fmt.Errorf("unexpected RetrieveRun call")
	}
	return m.retrieveRun(ctx, threadID, runID)
}

func (m *mockClient) CreateFile(ctx context.Context, request openai.FileRequest) (openai.File, error) {
	if m.createFile == nil {
		return openai.File{}, fmt.Errorf("unexpected CreateFile call")
	}
	return m.createFile(ctx, request)
}

func (m *mockClient) GetFile(ctx context.Context, fileID string) (openai.File, error) {
	if m.getFile == nil {
		return openai.File{}, fmt.Errorf("unexpected GetFile call")
	}
	return m.getFile(ctx, fileID)
}

func (m *mockClient) ListFiles(ctx context.Context) (openai.FilesList, error) {
	if m.listFiles == nil {
		return openai.FilesList{}, fmt.Errorf("unexpected ListFiles call")
	}
	return m.listFiles(ctx)
}

func (m *mockClient) GetFileContent(ctx context.Context, fileID string) (openai.RawResponse, error) {
	if m.getFileContent == nil {
		return openai.RawResponse{}, fmt.Errorf("unexpected GetFileContent call")
	}
	return m.getFileContent(ctx, fileID)
}

func (m *mockClient) ListModels(ctx context.Context) (openai.ModelsList, error) {
	if m.listModels == nil {
		return openai.ModelsList{}, fmt.Errorf("unexpected ListModels call")
	}
	return m.listModels(ctx)
}

func newTestIntegration(t *testing.T, client OpenAIClient, storage domain.ExecutorStorageManager) *OpenAIAnalyticsIntegration {
	t.Helper()

	if storage == nil {
		storage = newMemoryStorage()
	}

	deps := domain.IntegrationDeps{
		ParameterBinder:           stubBinder{},
		ExecutorCredentialManager: stubCredentialManager{},
		ExecutorStorageManager:    storage,
	}

	creator := NewOpenAIAnalyticsIntegrationCreator(deps)

	executor, err := creator.CreateIntegration(context.Background(), domain.CreateIntegrationParams{
		CredentialID: "credential-1",
		WorkspaceID:  "workspace-1",
	})
	require.NoError(t, err)

	integration, ok := executor.(*OpenAIAnalyticsIntegration)
	require.True(t, ok)

	integration.SetClient(client)
	integration.pollInterval = time.Millisecond

	return integration
}

func settingsInput(actionType domain.IntegrationActionType, settings map[string]any) domain.IntegrationInput {
	return domain.IntegrationInput{
		ActionType: actionType,
		PayloadByInputID: map[string]domain.Payload{
			"input-1": domain.Payload(`[{}]`),
		},
		IntegrationParams: domain.IntegrationParams{
			Settings: settings,
		},
	}
}
