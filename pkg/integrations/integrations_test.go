package integrations

import (
	"context"
	"fmt"
	"testing"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBinder struct{}

func (stubBinder) BindToStruct(ctx context.Context, item any, target any, expressions map[string]any) error {
	return nil
}

type stubCredentialManager struct{}

func (stubCredentialManager) GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error) {
	return []byte(`{"api_key":"test-key"}`), nil
}

type stubStorage struct{}

func (stubStorage) GetExecutionFile(ctx context.Context, params domain.GetExecutionFileParams) (domain.ExecutionWorkspaceFile, error) {
	return domain.ExecutionWorkspaceFile{}, fmt.Errorf("not implemented")
}

func (stubStorage) PutExecutionFile(ctx context.Context, params domain.PutExecutionFileParams) (domain.FileItem, error) {
	return domain.FileItem{}, fmt.Errorf("not implemented")
}

func testDeps() domain.IntegrationDeps {
	return domain.IntegrationDeps{
		ParameterBinder:           stubBinder{},
		ExecutorCredentialManager: stubCredentialManager{},
		ExecutorStorageManager:    stubStorage{},
	}
}

func TestNewSelector(t *testing.T) {
	ctx := context.Background()
	selector := NewSelector(testDeps())

	t.Run("selects the registered creator and builds an executor", func(t *testing.T) {
		creator, err := selector.SelectCreator(ctx, domain.SelectIntegrationParams{
			IntegrationType: domain.IntegrationType_OpenAIAnalytics,
		})
		require.NoError(t, err)

		executor, err := creator.CreateIntegration(ctx, domain.CreateIntegrationParams{
			CredentialID: "credential-1",
			WorkspaceID:  "workspace-1",
		})
		require.NoError(t, err)
		require.NotNil(t, executor)
	})

	t.Run("selects the creator as a peeker", func(t *testing.T) {
		peeker, err := selector.SelectPeeker(ctx, domain.SelectIntegrationParams{
			IntegrationType: domain.IntegrationType_OpenAIAnalytics,
		})
		require.NoError(t, err)

		_, err = peeker.Peek(ctx, domain.PeekParams{
			PeekableType: "vector_stores",
			PayloadJSON:  []byte(`{"credential_id":"credential-1"}`),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "peek function not found")
	})

	t.Run("unknown integration type", func(t *testing.T) {
		_, err := selector.SelectCreator(ctx, domain.SelectIntegrationParams{
			IntegrationType: "telegraph",
		})
		assert.ErrorIs(t, err, domain.ErrIntegrationNotFound)

		_, err = selector.SelectPeeker(ctx, domain.SelectIntegrationParams{
			IntegrationType: "telegraph",
		})
		assert.ErrorIs(t, err, domain.ErrIntegrationNotFound)
	})
}
