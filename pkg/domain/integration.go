package domain

import (
	"context"
	"errors"
)

var (
	ErrIntegrationNotFound = errors.New("integration not found")
)

type IntegrationType string
type IntegrationActionType string
type IntegrationPeekableType string

const (
	IntegrationType_OpenAIAnalytics IntegrationType = "openai_analytics"
)

type Integration struct {
	ID          IntegrationType `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`

	CredentialProperties []NodeProperty      `json:"credential_props"`
	Actions              []IntegrationAction `json:"actions"`

	CanTestConnection    bool `json:"can_test_connection"`
	IsCredentialOptional bool `json:"is_credential_optional"`
}

type IntegrationAction struct {
	ID          string                `json:"id"`
	ActionType  IntegrationActionType `json:"action_type"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Properties  []NodeProperty        `json:"properties"`
}

// Item is a single unit of work flowing through a node. The host evaluates
// expressions before handing items to the integration, so from this side an
// item is plain decoded JSON.
type Item any

type ItemWithFile struct {
	Item            Item
	File            FileItem
	UseFileFieldKey string
}

type IntegrationInput struct {
	NodeID           string
	PayloadByInputID map[string]Payload

	IntegrationParams IntegrationParams
	ActionType        IntegrationActionType

	// ContinueOnFail mirrors the host's error-continuation flag: when set,
	// per-item handler errors are captured into the item's output record
	// instead of aborting the batch.
	ContinueOnFail bool
}

func (i IntegrationInput) GetItemsByInputID() (map[string][]Item, error) {
	itemsByInputID := map[string][]Item{}

	for inputID, payload := range i.PayloadByInputID {
		items, err := payload.ToItems()
		if err != nil {
			return nil, err
		}

		itemsByInputID[inputID] = items
	}

	return itemsByInputID, nil
}

func (i IntegrationInput) GetAllItems() ([]Item, error) {
	itemsByInputID, err := i.GetItemsByInputID()
	if err != nil {
		return nil, err
	}

	items := []Item{}

	for _, inputItems := range itemsByInputID {
		items = append(items, inputItems...)
	}

	return items, nil
}

type IntegrationParams struct {
	Settings map[string]any
}

type IntegrationOutput struct {
	ResultJSONByOutputID []Payload
}

type IntegrationDeps struct {
	ParameterBinder           IntegrationParameterBinder
	ExecutorCredentialManager ExecutorCredentialManager
	ExecutorStorageManager    ExecutorStorageManager
}

type IntegrationParameterBinder interface {
	BindToStruct(ctx context.Context, item any, params any, expressions map[string]any) error
}
