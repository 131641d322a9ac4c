package domain

import (
	"context"
	"fmt"
)

type CreateIntegrationParams struct {
	CredentialID string
	WorkspaceID  string
}

type IntegrationCreator interface {
	CreateIntegration(ctx context.Context, p CreateIntegrationParams) (IntegrationExecutor, error)
}

type IntegrationExecutor interface {
	Execute(ctx context.Context, params IntegrationInput) (IntegrationOutput, error)
}

type IntegrationPeeker interface {
	Peek(ctx context.Context, params PeekParams) (PeekResult, error)
}

type SelectIntegrationParams struct {
	IntegrationType IntegrationType
}

type IntegrationSelector interface {
	SelectCreator(ctx context.Context, params SelectIntegrationParams) (IntegrationCreator, error)
	RegisterCreator(integrationType IntegrationType, creator IntegrationCreator)
	SelectPeeker(ctx context.Context, params SelectIntegrationParams) (IntegrationPeeker, error)
}

type integrationSelector struct {
	creatorsByType map[IntegrationType]IntegrationCreator
}

func NewIntegrationSelector() IntegrationSelector {
	return &integrationSelector{
		creatorsByType: make(map[IntegrationType]IntegrationCreator),
	}
}

func (s *integrationSelector) RegisterCreator(integrationType IntegrationType, creator IntegrationCreator) {
	s.creatorsByType[integrationType] = creator
}

func (s *integrationSelector) SelectCreator(ctx context.Context, params SelectIntegrationParams) (IntegrationCreator, error) {
	creator, ok := s.creatorsByType[params.IntegrationType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotFound, params.IntegrationType)
	}

	return creator, nil
}

func (s *integrationSelector) SelectPeeker(ctx context.Context, params SelectIntegrationParams) (IntegrationPeeker, error) {
	creator, ok := s.creatorsByType[params.IntegrationType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntegrationNotFound, params.IntegrationType)
	}

	peeker, ok := creator.(IntegrationPeeker)
	if !ok {
		return nil, fmt.Errorf("integration %s is not peekable", params.IntegrationType)
	}

	return peeker, nil
}
