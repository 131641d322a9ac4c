package managers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dandacompany/openai-analytics/pkg/domain"
)

// ExecutorCredentialGetter decodes decrypted credential payloads from the host
// into the integration's typed credential struct.
type ExecutorCredentialGetter[T any] struct {
	manager domain.ExecutorCredentialManager
}

func NewExecutorCredentialGetter[T any](manager domain.ExecutorCredentialManager) *ExecutorCredentialGetter[T] {
	return &ExecutorCredentialGetter[T]{
		manager: manager,
	}
}

func (e *ExecutorCredentialGetter[T]) GetDecryptedCredential(ctx context.Context, credentialID string) (T, error) {
	var zero T

	decryptedBytes, err := e.manager.GetDecryptedCredential(ctx, credentialID)
	if err != nil {
		return zero, fmt.Errorf("failed to get decrypted credential: %w", err)
	}

	var result T
	if err := json.Unmarshal(decryptedBytes, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return result, nil
}
