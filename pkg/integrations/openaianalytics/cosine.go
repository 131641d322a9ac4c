package openaianalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/tidwall/gjson"
)

const (
	VectorInputMode_Direct   = "direct"
	VectorInputMode_JSONPath = "json_path"
	VectorInputMode_File     = "file"
	VectorInputMode_Embed    = "embed"
)

type CosineSimilarityParams struct {
	InputMode string `json:"input_mode"`

	VectorA string `json:"vector_a"`
	VectorB string `json:"vector_b"`

	PathA string `json:"path_a"`
	PathB string `json:"path_b"`

	FileA domain.FileItem `json:"file_a"`
	FileB domain.FileItem `json:"file_b"`

	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
	Model string `json:"model"`
}

// ComputeCosineSimilarity compares two vectors taken from typed-in text, from
// paths into the current item, from workspace files, or from embedding two
// texts on the fly.
func (i *OpenAIAnalyticsIntegration) ComputeCosineSimilarity(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CosineSimilarityParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	var vectorA, vectorB []float32

	switch p.InputMode {
	case VectorInputMode_JSONPath:
		vectorA, vectorB, err = i.vectorsFromItemPaths(item, p.PathA, p.PathB)
	case VectorInputMode_File:
		vectorA, vectorB, err = i.vectorsFromFiles(ctx, p.FileA, p.FileB)
	case VectorInputMode_Embed:
		vectorA, vectorB, err = i.vectorsFromTexts(ctx, p)
	case VectorInputMode_Direct, "":
		vectorA, vectorB, err = vectorsFromText(p.VectorA, p.VectorB)
	default:
		return nil, fmt.Errorf("unknown input mode %q", p.InputMode)
	}

	if err != nil {
		return nil, err
	}

	similarity, err := CosineSimilarity(vectorA, vectorB)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"similarity":            similarity,
		"normalized_similarity": (similarity + 1) / 2,
		"dimensions":            len(vectorA),
	}, nil
}

func vectorsFromText(rawA, rawB string) ([]float32, []float32, error) {
	vectorA, err := parseVectorInput(rawA)
	if err != nil {
		return nil, nil, fmt.Errorf("vector a: %w", err)
	}

	vectorB, err := parseVectorInput(rawB)
	if err != nil {
		return nil, nil, fmt.Errorf("vector b: %w", err)
	}

	return vectorA, vectorB, nil
}

func (i *OpenAIAnalyticsIntegration) vectorsFromItemPaths(item domain.Item, pathA, pathB string) ([]float32, []float32, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, nil, err
	}

	vectorA, err := vectorAtPath(raw, pathA)
	if err != nil {
		return nil, nil, err
	}

	vectorB, err := vectorAtPath(raw, pathB)
	if err != nil {
		return nil, nil, err
	}

	return vectorA, vectorB, nil
}

func vectorAtPath(raw []byte, path string) ([]float32, error) {
	if path == "" {
		return nil, fmt.Errorf("vector path is required")
	}

	result := gjson.GetBytes(raw, path)
	if !result.Exists() {
		return nil, fmt.Errorf("no value at path %q", path)
	}

	if result.IsArray() {
		values := result.Array()
		vector := make([]float32, 0, len(values))

		for _, value := range values {
			vector = append(vector, float32(value.Float()))
		}

		return vector, nil
	}

	// A string value at the path goes through the lenient text parser.
	if result.Type == gjson.String {
		return parseVectorInput(result.String())
	}

	return nil, fmt.Errorf("value at path %q is not a vector", path)
}

func (i *OpenAIAnalyticsIntegration) vectorsFromFiles(ctx context.Context, fileA, fileB domain.FileItem) ([]float32, []float32, error) {
	vectorA, err := i.readVectorFile(ctx, fileA)
	if err != nil {
		return nil, nil, fmt.Errorf("vector a: %w", err)
	}

	vectorB, err := i.readVectorFile(ctx, fileB)
	if err != nil {
		return nil, nil, fmt.Errorf("vector b: %w", err)
	}

	return vectorA, vectorB, nil
}

// readVectorFile loads a workspace file and decodes its content through the
// lenient vector parser, so both JSON arrays and delimited number lists work.
func (i *OpenAIAnalyticsIntegration) readVectorFile(ctx context.Context, file domain.FileItem) ([]float32, error) {
	if file.FileID == "" {
		return nil, fmt.Errorf("vector file is required")
	}

	workspaceFile, err := i.executorStorageManager.GetExecutionFile(ctx, domain.GetExecutionFileParams{
		WorkspaceID: i.workspaceID,
		UploadID:    file.FileID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get execution file: %w", err)
	}

	defer workspaceFile.Reader.Close()

	content, err := io.ReadAll(workspaceFile.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read execution file: %w", err)
	}

	return parseVectorInput(string(content))
}

func (i *OpenAIAnalyticsIntegration) vectorsFromTexts(ctx context.Context, p CosineSimilarityParams) ([]float32, []float32, error) {
	if p.TextA == "" || p.TextB == "" {
		return nil, nil, fmt.Errorf("both texts are required")
	}

	model := p.Model
	if model == "" {
		model = defaultEmbeddingModel
	}

	vectorA, err := i.embedText(ctx, model, p.TextA)
	if err != nil {
		return nil, nil, err
	}

	vectorB, err := i.embedText(ctx, model, p.TextB)
	if err != nil {
		return nil, nil, err
	}

	return vectorA, vectorB, nil
}
