package domain

import "context"

type CredentialType string

var (
	CredentialTypeDefault CredentialType = "default"
)

type Credential struct {
	ID              string
	Name            string
	WorkspaceID     string
	Type            CredentialType
	IntegrationType IntegrationType

	DecryptedPayload map[string]any
}

// ExecutorCredentialManager fetches and decrypts a credential payload from the
// host. The payload is the credential's property values as JSON.
type ExecutorCredentialManager interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error)
}

// CredentialGetter decodes a decrypted credential payload into a typed
// credential struct owned by the integration.
type CredentialGetter[T any] interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) (T, error)
}
