package openaianalytics

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

const defaultFilePurpose = "assistants"

type UploadFileParams struct {
	File          domain.FileItem `json:"file"`
	Base64Content string          `json:"base64_content"`
	FileName      string          `json:"file_name"`
	Purpose       string          `json:"purpose"`
}

func (i *OpenAIAnalyticsIntegration) UploadFile(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := UploadFileParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.Purpose == "" {
		p.Purpose = defaultFilePurpose
	}

	var uploaded openai.File

	switch {
	case p.File.FileID != "":
		uploaded, err = i.uploadExecutionFile(ctx, p.File, p.Purpose)
	case p.Base64Content != "":
		uploaded, err = i.uploadBase64Content(ctx, p.Base64Content, p.FileName, p.Purpose)
	default:
		return nil, fmt.Errorf("either a file or base64 content must be provided")
	}

	if err != nil {
		return nil, err
	}

	return toItem(uploaded)
}

// uploadExecutionFile streams a workspace file from execution storage into a
// temporary file and hands its path to the vendor client, which requires an
// on-disk file for multipart uploads. The temporary file is removed once the
// upload returns.
func (i *OpenAIAnalyticsIntegration) uploadExecutionFile(ctx context.Context, file domain.FileItem, purpose string) (openai.File, error) {
	if purpose == "" {
		purpose = defaultFilePurpose
	}

	workspaceFile, err := i.executorStorageManager.GetExecutionFile(ctx, domain.GetExecutionFileParams{
		WorkspaceID: i.workspaceID,
		UploadID:    file.FileID,
	})
	if err != nil {
		return openai.File{}, fmt.Errorf("failed to get execution file: %w", err)
	}

	defer workspaceFile.Reader.Close()

	fileName := file.Name
	if fileName == "" {
		fileName = workspaceFile.Name
	}

	return i.uploadReader(ctx, workspaceFile.Reader, fileName, purpose)
}

func (i *OpenAIAnalyticsIntegration) uploadBase64Content(ctx context.Context, content, fileName, purpose string) (openai.File, error) {
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return openai.File{}, fmt.Errorf("failed to decode base64 content: %w", err)
	}

	if fileName == "" {
		fileName = "upload.dat"
	}

	return i.uploadReader(ctx, bytes.NewReader(decoded), fileName, purpose)
}

func (i *OpenAIAnalyticsIntegration) uploadReader(ctx context.Context, reader io.Reader, fileName, purpose string) (openai.File, error) {
	tempPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fileName))

	tempFile, err := os.Create(tempPath)
	if err != nil {
		return openai.File{}, fmt.Errorf("failed to stage file: %w", err)
	}

	defer os.Remove(tempPath)

	_, err = io.Copy(tempFile, reader)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return openai.File{}, fmt.Errorf("failed to stage file: %w", err)
	}

	return i.client.CreateFile(ctx, openai.FileRequest{
		FileName: fileName,
		FilePath: tempPath,
		Purpose:  purpose,
	})
}

type GetFileParams struct {
	FileID string `json:"file_id"`
}

func (i *OpenAIAnalyticsIntegration) GetFile(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := GetFileParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	if p.FileID == "" {
		return nil, fmt.Errorf("file_id is required")
	}

	file, err := i.client.GetFile(ctx, p.FileID)
	if err != nil {
		return nil, err
	}

	return toItem(file)
}

type ListFilesParams struct {
	Purpose string `json:"purpose"`
	Order   string `json:"order"`
	Limit   int    `json:"limit"`
}

// ListFiles filters, sorts and limits on the client side. The provider's list
// endpoint takes no parameters.
func (i *OpenAIAnalyticsIntegration) ListFiles(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := ListFilesParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	list, err := i.client.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	files := list.Files

	if p.Purpose != "" {
		filtered := make([]openai.File, 0, len(files))
		for _, file := range files {
			if file.Purpose == p.Purpose {
				filtered = append(filtered, file)
			}
		}
		files = filtered
	}

	sort.SliceStable(files, func(a, b int) bool {
		if p.Order == "asc" {
			return files[a].CreatedAt < files[b].CreatedAt
		}
		return files[a].CreatedAt > files[b].CreatedAt
	})

	if p.Limit > 0 && len(files) > p.Limit {
		files = files[:p.Limit]
	}

	return map[string]any{"files": files}, nil
}

type DownloadFileParams struct {
	FileID string `json:"file_id"`
}

func (i *OpenAIAnalyticsIntegration) DownloadFile(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.ItemWithFile, error) {
	p := DownloadFileParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return domain.ItemWithFile{}, err
	}

	if p.FileID == "" {
		return domain.ItemWithFile{}, fmt.Errorf("file_id is required")
	}

	file, err := i.client.GetFile(ctx, p.FileID)
	if err != nil {
		return domain.ItemWithFile{}, err
	}

	content, err := i.client.GetFileContent(ctx, p.FileID)
	if err != nil {
		return domain.ItemWithFile{}, err
	}

	defer content.Close()

	fileItem, err := i.executorStorageManager.PutExecutionFile(ctx, domain.PutExecutionFileParams{
		WorkspaceID:  i.workspaceID,
		UploadedBy:   string(IntegrationActionType_DownloadFile),
		OriginalName: file.FileName,
		SizeInBytes:  int64(file.Bytes),
		ContentType:  contentTypeForFileName(file.FileName),
		Reader:       content,
	})
	if err != nil {
		return domain.ItemWithFile{}, fmt.Errorf("failed to store downloaded file: %w", err)
	}

	return domain.ItemWithFile{
		Item: map[string]any{
			"file_id":   file.ID,
			"file_name": file.FileName,
			"purpose":   file.Purpose,
			"bytes":     file.Bytes,
		},
		File: fileItem,
	}, nil
}

func contentTypeForFileName(fileName string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
