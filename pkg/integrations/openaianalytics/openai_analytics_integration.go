package openaianalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dandacompany/openai-analytics/pkg/domain"
	"github.com/dandacompany/openai-analytics/pkg/managers"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	IntegrationActionType_ChatCompletion domain.IntegrationActionType = "chat_completion"

	IntegrationActionType_CreateThread       domain.IntegrationActionType = "thread_create"
	IntegrationActionType_GetThread          domain.IntegrationActionType = "thread_get"
	IntegrationActionType_AddMessage         domain.IntegrationActionType = "thread_add_message"
	IntegrationActionType_ListMessages       domain.IntegrationActionType = "thread_list_messages"
	IntegrationActionType_RunThread          domain.IntegrationActionType = "thread_run"
	IntegrationActionType_CheckRunStatus     domain.IntegrationActionType = "thread_check_run_status"
	IntegrationActionType_CreateAndRunThread domain.IntegrationActionType = "thread_create_and_run"

	IntegrationActionType_CreateAssistant domain.IntegrationActionType = "assistant_create"
	IntegrationActionType_GetAssistant    domain.IntegrationActionType = "assistant_get"
	IntegrationActionType_ListAssistants  domain.IntegrationActionType = "assistant_list"

	IntegrationActionType_UploadFile   domain.IntegrationActionType = "file_upload"
	IntegrationActionType_GetFile      domain.IntegrationActionType = "file_get"
	IntegrationActionType_ListFiles    domain.IntegrationActionType = "file_list"
	IntegrationActionType_DownloadFile domain.IntegrationActionType = "file_download"

	IntegrationActionType_CreateEmbedding  domain.IntegrationActionType = "embedding_create"
	IntegrationActionType_CreateEmbeddings domain.IntegrationActionType = "embeddings_create"

	IntegrationActionType_EmbeddingClassify domain.IntegrationActionType = "embedding_classify"
	IntegrationActionType_LLMClassify       domain.IntegrationActionType = "llm_classify"
	IntegrationActionType_CosineSimilarity  domain.IntegrationActionType = "cosine_similarity"

	IntegrationActionType_ParseJSON          domain.IntegrationActionType = "text_parse_json"
	IntegrationActionType_GenerateHTMLReport domain.IntegrationActionType = "report_generate_html"
)

const (
	OpenAIAnalyticsPeekable_Models     domain.IntegrationPeekableType = "models"
	OpenAIAnalyticsPeekable_Assistants domain.IntegrationPeekableType = "assistants"
	OpenAIAnalyticsPeekable_Files      domain.IntegrationPeekableType = "files"
)

const defaultBaseURL = "https://api.openai.com/v1"

const (
	defaultPeekLimit = 20
	maxPeekLimit     = 100
)

type OpenAICredential struct {
	APIKey         string `json:"api_key"`
	OrganizationID string `json:"organization_id"`
	BaseURL        string `json:"base_url"`
}

type OpenAIAnalyticsIntegrationCreator struct {
	credentialGetter       domain.CredentialGetter[OpenAICredential]
	binder                 domain.IntegrationParameterBinder
	executorStorageManager domain.ExecutorStorageManager

	// One cache shared by every execution this creator spawns; entries are
	// partitioned per workflow by scope id.
	embeddingCache *EmbeddingCache
}

func NewOpenAIAnalyticsIntegrationCreator(deps domain.IntegrationDeps) domain.IntegrationCreator {
	return &OpenAIAnalyticsIntegrationCreator{
		credentialGetter:       managers.NewExecutorCredentialGetter[OpenAICredential](deps.ExecutorCredentialManager),
		binder:                 deps.ParameterBinder,
		executorStorageManager: deps.ExecutorStorageManager,
		embeddingCache:         NewEmbeddingCache(),
	}
}

var (
	_ domain.IntegrationCreator = (*OpenAIAnalyticsIntegrationCreator)(nil)
	_ domain.IntegrationPeeker  = (*OpenAIAnalyticsIntegrationCreator)(nil)
)

func (c *OpenAIAnalyticsIntegrationCreator) CreateIntegration(ctx context.Context, p domain.CreateIntegrationParams) (domain.IntegrationExecutor, error) {
	return NewOpenAIAnalyticsIntegration(ctx, OpenAIAnalyticsIntegrationDependencies{
		CredentialID:           p.CredentialID,
		WorkspaceID:            p.WorkspaceID,
		CredentialGetter:       c.credentialGetter,
		ParameterBinder:        c.binder,
		ExecutorStorageManager: c.executorStorageManager,
		EmbeddingCache:         c.embeddingCache,
	})
}

type OpenAIAnalyticsIntegrationDependencies struct {
	CredentialID string
	WorkspaceID  string

	CredentialGetter       domain.CredentialGetter[OpenAICredential]
	ParameterBinder        domain.IntegrationParameterBinder
	ExecutorStorageManager domain.ExecutorStorageManager
	EmbeddingCache         *EmbeddingCache
}

type OpenAIAnalyticsIntegration struct {
	credentialGetter       domain.CredentialGetter[OpenAICredential]
	binder                 domain.IntegrationParameterBinder
	executorStorageManager domain.ExecutorStorageManager

	client         OpenAIClient
	workspaceID    string
	embeddingCache *EmbeddingCache
	pollInterval   time.Duration

	actionManager *domain.IntegrationActionManager
	peekFuncs     map[domain.IntegrationPeekableType]domain.PeekFunc
}

// peekPayload carries the credential the host wants peek results for.
type peekPayload struct {
	CredentialID string `json:"credential_id"`
}

// Peek lets the host browse models, assistants and files without running a
// workflow. The credential comes from the peek payload rather than a node.
func (c *OpenAIAnalyticsIntegrationCreator) Peek(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	payload := peekPayload{}
	if len(params.PayloadJSON) > 0 {
		if err := json.Unmarshal(params.PayloadJSON, &payload); err != nil {
			return domain.PeekResult{}, fmt.Errorf("failed to parse peek payload: %w", err)
		}
	}

	executor, err := c.CreateIntegration(ctx, domain.CreateIntegrationParams{
		CredentialID: payload.CredentialID,
		WorkspaceID:  params.WorkspaceID,
	})
	if err != nil {
		return domain.PeekResult{}, err
	}

	integration, ok := executor.(*OpenAIAnalyticsIntegration)
	if !ok {
		return domain.PeekResult{}, fmt.Errorf("unexpected executor type")
	}

	return integration.Peek(ctx, params)
}

func NewOpenAIAnalyticsIntegration(ctx context.Context, deps OpenAIAnalyticsIntegrationDependencies) (*OpenAIAnalyticsIntegration, error) {
	integration := &OpenAIAnalyticsIntegration{
		credentialGetter:       deps.CredentialGetter,
		binder:                 deps.ParameterBinder,
		executorStorageManager: deps.ExecutorStorageManager,
		workspaceID:            deps.WorkspaceID,
		embeddingCache:         deps.EmbeddingCache,
		pollInterval:           time.Second,
	}

	if integration.embeddingCache == nil {
		integration.embeddingCache = NewEmbeddingCache()
	}

	integration.actionManager = domain.NewIntegrationActionManager().
		AddPerItem(IntegrationActionType_ChatCompletion, integration.ChatCompletion).
		AddPerItem(IntegrationActionType_CreateThread, integration.CreateThread).
		AddPerItem(IntegrationActionType_GetThread, integration.GetThread).
		AddPerItem(IntegrationActionType_AddMessage, integration.AddMessage).
		AddPerItem(IntegrationActionType_ListMessages, integration.ListMessages).
		AddPerItem(IntegrationActionType_RunThread, integration.RunThread).
		AddPerItem(IntegrationActionType_CheckRunStatus, integration.CheckRunStatus).
		AddPerItem(IntegrationActionType_CreateAndRunThread, integration.CreateAndRunThread).
		AddPerItem(IntegrationActionType_CreateAssistant, integration.CreateAssistant).
		AddPerItem(IntegrationActionType_GetAssistant, integration.GetAssistant).
		AddPerItem(IntegrationActionType_ListAssistants, integration.ListAssistants).
		AddPerItem(IntegrationActionType_UploadFile, integration.UploadFile).
		AddPerItem(IntegrationActionType_GetFile, integration.GetFile).
		AddPerItem(IntegrationActionType_ListFiles, integration.ListFiles).
		AddPerItemWithFile(IntegrationActionType_DownloadFile, integration.DownloadFile).
		AddPerItem(IntegrationActionType_CreateEmbedding, integration.CreateEmbedding).
		AddPerItem(IntegrationActionType_CreateEmbeddings, integration.CreateEmbeddings).
		AddPerItem(IntegrationActionType_EmbeddingClassify, integration.EmbeddingClassify).
		AddPerItem(IntegrationActionType_LLMClassify, integration.LLMClassify).
		AddPerItem(IntegrationActionType_CosineSimilarity, integration.ComputeCosineSimilarity).
		AddPerItem(IntegrationActionType_ParseJSON, integration.ParseJSON).
		AddPerItemWithFile(IntegrationActionType_GenerateHTMLReport, integration.GenerateHTMLReport)

	integration.peekFuncs = map[domain.IntegrationPeekableType]domain.PeekFunc{
		OpenAIAnalyticsPeekable_Models:     integration.PeekModels,
		OpenAIAnalyticsPeekable_Assistants: integration.PeekAssistants,
		OpenAIAnalyticsPeekable_Files:      integration.PeekFiles,
	}

	if integration.client == nil {
		credential, err := integration.credentialGetter.GetDecryptedCredential(ctx, deps.CredentialID)
		if err != nil {
			return nil, err
		}

		integration.client = newOpenAIClient(credential)
	}

	return integration, nil
}

func newOpenAIClient(credential OpenAICredential) *openai.Client {
	config := openai.DefaultConfig(credential.APIKey)

	if credential.OrganizationID != "" {
		config.OrgID = credential.OrganizationID
	}

	if credential.BaseURL != "" {
		config.BaseURL = credential.BaseURL
	} else {
		config.BaseURL = defaultBaseURL
	}

	return openai.NewClientWithConfig(config)
}

func (i *OpenAIAnalyticsIntegration) SetClient(client OpenAIClient) {
	i.client = client
}

func (i *OpenAIAnalyticsIntegration) Execute(ctx context.Context, params domain.IntegrationInput) (domain.IntegrationOutput, error) {
	log.Info().Str("action_type", string(params.ActionType)).Msg("Executing OpenAI Analytics integration")

	return i.actionManager.Run(ctx, params.ActionType, params)
}

func (i *OpenAIAnalyticsIntegration) Peek(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	peekFunc, ok := i.peekFuncs[params.PeekableType]
	if !ok {
		return domain.PeekResult{}, fmt.Errorf("peek function not found")
	}

	return peekFunc(ctx, params)
}

func (i *OpenAIAnalyticsIntegration) PeekModels(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	models, err := i.client.ListModels(ctx)
	if err != nil {
		return domain.PeekResult{}, err
	}

	limit := params.GetLimitWithMax(defaultPeekLimit, maxPeekLimit)

	var results []domain.PeekResultItem
	for _, model := range models.Models {
		if len(results) == limit {
			break
		}

		results = append(results, domain.PeekResultItem{
			Key:     model.ID,
			Value:   model.ID,
			Content: model.ID,
		})
	}

	return domain.PeekResult{
		Result: results,
	}, nil
}

func (i *OpenAIAnalyticsIntegration) PeekAssistants(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	limit := params.GetLimitWithMax(defaultPeekLimit, maxPeekLimit)

	assistants, err := i.client.ListAssistants(ctx, &limit, nil, nil, nil)
	if err != nil {
		return domain.PeekResult{}, err
	}

	var results []domain.PeekResultItem
	for _, assistant := range assistants.Assistants {
		name := assistant.ID
		if assistant.Name != nil && *assistant.Name != "" {
			name = *assistant.Name
		}

		results = append(results, domain.PeekResultItem{
			Key:     assistant.ID,
			Value:   assistant.ID,
			Content: name,
		})
	}

	return domain.PeekResult{
		Result: results,
	}, nil
}

func (i *OpenAIAnalyticsIntegration) PeekFiles(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	files, err := i.client.ListFiles(ctx)
	if err != nil {
		return domain.PeekResult{}, err
	}

	limit := params.GetLimitWithMax(defaultPeekLimit, maxPeekLimit)

	var results []domain.PeekResultItem
	for _, file := range files.Files {
		if len(results) == limit {
			break
		}

		results = append(results, domain.PeekResultItem{
			Key:     file.ID,
			Value:   file.ID,
			Content: file.FileName,
		})
	}

	return domain.PeekResult{
		Result: results,
	}, nil
}

// toItem converts an API response struct into the generic item form returned
// to the host.
func toItem(v any) (domain.Item, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var item map[string]any
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}

	return item, nil
}
