package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

type ActionFunc func(ctx context.Context, params IntegrationInput) (IntegrationOutput, error)
type ActionFuncPerItem func(ctx context.Context, params IntegrationInput, item Item) (Item, error)
type ActionFuncPerItemWithFile func(ctx context.Context, params IntegrationInput, item Item) (ItemWithFile, error)
type PeekFunc func(ctx context.Context, params PeekParams) (PeekResult, error)

type IntegrationActionManager struct {
	mtx                        sync.RWMutex
	actionFuncs                map[IntegrationActionType]ActionFunc
	actionFuncsPerItem         map[IntegrationActionType]ActionFuncPerItem
	actionFuncsPerItemWithFile map[IntegrationActionType]ActionFuncPerItemWithFile
}

func NewIntegrationActionManager() *IntegrationActionManager {
	return &IntegrationActionManager{
		actionFuncs:                make(map[IntegrationActionType]ActionFunc),
		actionFuncsPerItem:         make(map[IntegrationActionType]ActionFuncPerItem),
		actionFuncsPerItemWithFile: make(map[IntegrationActionType]ActionFuncPerItemWithFile),
	}
}

func (m *IntegrationActionManager) Add(actionType IntegrationActionType, actionFunc ActionFunc) *IntegrationActionManager {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.actionFuncs[actionType] = actionFunc

	return m
}

func (m *IntegrationActionManager) AddPerItem(actionType IntegrationActionType, actionFunc ActionFuncPerItem) *IntegrationActionManager {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.actionFuncsPerItem[actionType] = actionFunc

	return m
}

func (m *IntegrationActionManager) AddPerItemWithFile(actionType IntegrationActionType, actionFunc ActionFuncPerItemWithFile) *IntegrationActionManager {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.actionFuncsPerItemWithFile[actionType] = actionFunc

	return m
}

func (m *IntegrationActionManager) Get(actionType IntegrationActionType) (ActionFunc, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	actionFunc, ok := m.actionFuncs[actionType]
	return actionFunc, ok
}

func (m *IntegrationActionManager) GetPerItem(actionType IntegrationActionType) (ActionFuncPerItem, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	actionFunc, ok := m.actionFuncsPerItem[actionType]
	return actionFunc, ok
}

func (m *IntegrationActionManager) GetPerItemWithFile(actionType IntegrationActionType) (ActionFuncPerItemWithFile, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	actionFunc, ok := m.actionFuncsPerItemWithFile[actionType]
	return actionFunc, ok
}

func (m *IntegrationActionManager) Run(ctx context.Context, actionType IntegrationActionType, params IntegrationInput) (IntegrationOutput, error) {
	if _, ok := m.GetPerItem(actionType); ok {
		return m.RunPerItem(ctx, actionType, params)
	}

	if _, ok := m.GetPerItemWithFile(actionType); ok {
		return m.RunPerItemWithFile(ctx, actionType, params)
	}

	actionFunc, ok := m.Get(actionType)
	if !ok {
		return IntegrationOutput{}, fmt.Errorf("action not found")
	}

	return actionFunc(ctx, params)
}

func (m *IntegrationActionManager) RunPerItem(ctx context.Context, actionType IntegrationActionType, params IntegrationInput) (IntegrationOutput, error) {
	actionFuncPerItem, ok := m.GetPerItem(actionType)
	if !ok {
		return IntegrationOutput{}, fmt.Errorf("action not found")
	}

	allItems, err := params.GetAllItems()
	if err != nil {
		return IntegrationOutput{}, err
	}

	outputs := make([]Item, 0)

	for _, item := range allItems {
		output, err := actionFuncPerItem(ctx, params, item)
		if err != nil {
			if params.ContinueOnFail {
				outputs = append(outputs, map[string]any{"error": err.Error()})
				continue
			}

			return IntegrationOutput{}, err
		}

		if isEmptyItem(output) {
			continue
		}

		outputs = append(outputs, output)
	}

	resultJSON, err := json.Marshal(outputs)
	if err != nil {
		return IntegrationOutput{}, err
	}

	return IntegrationOutput{
		ResultJSONByOutputID: []Payload{
			resultJSON,
		},
	}, nil
}

const (
	DefaultFileItemFieldKey = "file"
)

func (m *IntegrationActionManager) RunPerItemWithFile(ctx context.Context, actionType IntegrationActionType, params IntegrationInput) (IntegrationOutput, error) {
	actionFuncPerItemWithFile, ok := m.GetPerItemWithFile(actionType)
	if !ok {
		return IntegrationOutput{}, fmt.Errorf("action not found")
	}

	allItems, err := params.GetAllItems()
	if err != nil {
		return IntegrationOutput{}, err
	}

	outputs := make([]Item, 0)

	for _, item := range allItems {
		output, err := actionFuncPerItemWithFile(ctx, params, item)
		if err != nil {
			if params.ContinueOnFail {
				outputs = append(outputs, map[string]any{"error": err.Error()})
				continue
			}

			return IntegrationOutput{}, err
		}

		if output.Item == nil {
			continue
		}

		if object, isObject := output.Item.(map[string]any); isObject {
			if len(object) == 0 {
				continue
			}

			fileFieldKey := output.UseFileFieldKey

			if fileFieldKey == "" {
				fileFieldKey = DefaultFileItemFieldKey
			}

			if _, exists := object[fileFieldKey]; exists {
				log.Warn().Str("action_type", string(params.ActionType)).Str("file_field_key", fileFieldKey).Msg("collision detected when placing file item in field")

				continue
			}

			object[fileFieldKey] = output.File
		}

		outputs = append(outputs, output.Item)
	}

	resultJSON, err := json.Marshal(outputs)
	if err != nil {
		return IntegrationOutput{}, err
	}

	return IntegrationOutput{
		ResultJSONByOutputID: []Payload{
			resultJSON,
		},
	}, nil
}

func isEmptyItem(item Item) bool {
	if item == nil {
		return true
	}

	if array, isArray := item.([]any); isArray {
		return len(array) == 0
	}

	if object, isObject := item.(map[string]any); isObject {
		return len(object) == 0
	}

	return false
}
