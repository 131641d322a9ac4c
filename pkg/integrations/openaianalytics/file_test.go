package openaianalytics

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"os"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("workspace file is staged to disk and uploaded", func(t *testing.T) {
		storage := newMemoryStorage()
		storage.files["upload-1"] = []byte("col1,col2\n1,2\n")

		client := &mockClient{
			createFile: func(ctx context.Context, request openai.FileRequest) (openai.File, error) {
				assert.Equal(t, "data.csv", request.FileName)
				assert.Equal(t, defaultFilePurpose, request.Purpose)

				staged, err := os.ReadFile(request.FilePath)
				require.NoError(t, err)
				assert.Equal(t, []byte("col1,col2\n1,2\n"), staged)

				return openai.File{ID: "file-1", FileName: request.FileName}, nil
			},
		}

		integration := newTestIntegration(t, client, storage)

		result, err := integration.UploadFile(ctx, settingsInput(IntegrationActionType_UploadFile, map[string]any{
			"file": map[string]any{"file_id": "upload-1", "name": "data.csv"},
		}), map[string]any{})
		require.NoError(t, err)

		output := result.(map[string]any)
		assert.Equal(t, "file-1", output["id"])
	})

	t.Run("base64 content", func(t *testing.T) {
		client := &mockClient{
			createFile: func(ctx context.Context, request openai.FileRequest) (openai.File, error) {
				staged, err := os.ReadFile(request.FilePath)
				require.NoError(t, err)
				assert.Equal(t, []byte("hello"), staged)

				return openai.File{ID: "file-2"}, nil
			},
		}

		integration := newTestIntegration(t, client, nil)

		_, err := integration.UploadFile(ctx, settingsInput(IntegrationActionType_UploadFile, map[string]any{
			"base64_content": base64.StdEncoding.EncodeToString([]byte("hello")),
			"file_name":      "greeting.txt",
			"purpose":        "fine-tune",
		}), map[string]any{})
		require.NoError(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		integration := newTestIntegration(t, &mockClient{}, nil)

		_, err := integration.UploadFile(ctx, settingsInput(IntegrationActionType_UploadFile, map[string]any{
			"base64_content": "not base64!!!",
		}), map[string]any{})
		require.Error(t, err)
	})

	t.Run("no source at all", func(t *testing.T) {
		integration := newTestIntegration(t, &mockClient{}, nil)

		_, err := integration.UploadFile(ctx, settingsInput(IntegrationActionType_UploadFile, map[string]any{}), map[string]any{})
		require.Error(t, err)
	})
}

func TestListFiles(t *testing.T) {
	ctx := context.Background()

	files := []openai.File{
		{ID: "file-1", FileName: "a.csv", Purpose: "assistants", CreatedAt: 100},
		{ID: "file-2", FileName: "b.jsonl", Purpose: "fine-tune", CreatedAt: 300},
		{ID: "file-3", FileName: "c.csv", Purpose: "assistants", CreatedAt: 200},
	}

	client := &mockClient{
		listFiles: func(ctx context.Context) (openai.FilesList, error) {
			return openai.FilesList{Files: files}, nil
		},
	}

	t.Run("filters by purpose and sorts newest first by default", func(t *testing.T) {
		integration := newTestIntegration(t, client, nil)

		result, err := integration.ListFiles(ctx, settingsInput(IntegrationActionType_ListFiles, map[string]any{
			"purpose": "assistants",
		}), map[string]any{})
		require.NoError(t, err)

		listed := result.(map[string]any)["files"].([]openai.File)
		require.Len(t, listed, 2)
		assert.Equal(t, "file-3", listed[0].ID)
		assert.Equal(t, "file-1", listed[1].ID)
	})

	t.Run("ascending order with limit", func(t *testing.T) {
		integration := newTestIntegration(t, client, nil)

		result, err := integration.ListFiles(ctx, settingsInput(IntegrationActionType_ListFiles, map[string]any{
			"order": "asc",
			"limit": 2,
		}), map[string]any{})
		require.NoError(t, err)

		listed := result.(map[string]any)["files"].([]openai.File)
		require.Len(t, listed, 2)
		assert.Equal(t, "file-1", listed[0].ID)
		assert.Equal(t, "file-3", listed[1].ID)
	})
}

func TestDownloadFile(t *testing.T) {
	ctx := context.Background()

	storage := newMemoryStorage()

	client := &mockClient{
		getFile: func(ctx context.Context, fileID string) (openai.File, error) {
			return openai.File{ID: fileID, FileName: "result.json", Purpose: "assistants", Bytes: 10}, nil
		},
		getFileContent: func(ctx context.Context, fileID string) (openai.RawResponse, error) {
			return openai.RawResponse{ReadCloser: io.NopCloser(bytes.NewReader([]byte("1,2,3\n4,5,6")))}, nil
		},
	}

	integration := newTestIntegration(t, client, storage)

	result, err := integration.DownloadFile(ctx, settingsInput(IntegrationActionType_DownloadFile, map[string]any{
		"file_id": "file-1",
	}), map[string]any{})
	require.NoError(t, err)

	item := result.Item.(map[string]any)
	assert.Equal(t, "file-1", item["file_id"])
	assert.Equal(t, "result.json", item["file_name"])

	assert.Equal(t, "result.json", result.File.Name)
	assert.Equal(t, []byte("1,2,3\n4,5,6"), storage.files["result.json"])

	require.Len(t, storage.puts, 1)
	assert.Contains(t, storage.puts[0].ContentType, "application/json")
}

func TestContentTypeForFileName(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", contentTypeForFileName("report.HTML"))
	assert.Equal(t, "application/octet-stream", contentTypeForFileName("mystery.bin2"))
	assert.Equal(t, "application/octet-stream", contentTypeForFileName("noextension"))
}
