package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

type FileItem struct {
	FileID      string `json:"file_id"`
	WorkspaceID string `json:"workspace_id"`
	ObjectKey   string `json:"key"`
	Name        string `json:"name"`
	SizeInBytes int64  `json:"size_in_bytes"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// UnmarshalJSON implements custom JSON unmarshaling for FileItem.
// This handles cases where the FileItem is received as a JSON string instead of
// an object, which can happen when expression evaluators stringify complex
// objects.
func (f *FileItem) UnmarshalJSON(data []byte) error {
	type fileItemAlias FileItem
	var item fileItemAlias
	if err := json.Unmarshal(data, &item); err == nil {
		*f = FileItem(item)
		return nil
	}

	var jsonString string
	if err := json.Unmarshal(data, &jsonString); err != nil {
		return fmt.Errorf("FileItem unmarshal failed: data is neither object nor string: %w", err)
	}

	var item2 fileItemAlias
	if err := json.Unmarshal([]byte(jsonString), &item2); err != nil {
		return fmt.Errorf("FileItem unmarshal failed: string is not valid JSON: %w", err)
	}

	*f = FileItem(item2)
	return nil
}

// ExecutorStorageManager moves binary payloads between the host's execution
// storage and the integration. Integrations never see raw host storage, only
// readers and FileItem handles.
type ExecutorStorageManager interface {
	GetExecutionFile(ctx context.Context, params GetExecutionFileParams) (ExecutionWorkspaceFile, error)
	PutExecutionFile(ctx context.Context, params PutExecutionFileParams) (FileItem, error)
}

type ExecutionWorkspaceFile struct {
	ID          string
	WorkspaceID string
	Name        string
	SizeInBytes int64
	ContentType string

	Reader io.ReadCloser
}

type GetExecutionFileParams struct {
	WorkspaceID string
	UploadID    string
}

type PutExecutionFileParams struct {
	WorkspaceID  string
	UploadedBy   string
	OriginalName string // Optional
	SizeInBytes  int64  // Optional
	ContentType  string // Optional
	Reader       io.ReadCloser
}
