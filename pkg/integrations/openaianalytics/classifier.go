package openaianalytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dandacompany/openai-analytics/pkg/domain"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	// UnclassifiedCategory is returned when no category clears the threshold.
	UnclassifiedCategory = "unclassified"

	defaultClassifyThreshold = 0.7
	llmClassifyTemperature   = 0.3
)

var ErrEmptyCategorySet = errors.New("category set is empty")

type EmbeddingClassifyParams struct {
	Text       string   `json:"text"`
	Categories []string `json:"categories"`
	Model      string   `json:"model"`
	Threshold  *float64 `json:"threshold"`
	Multiple   bool     `json:"multiple"`
	CacheScope string   `json:"cache_scope"`
	ClearCache bool     `json:"clear_cache"`

	// Precomputed category embeddings keyed by label. A supplied embedding
	// always overwrites whatever the cache holds for that label.
	CategoryEmbeddings map[string][]float32 `json:"category_embeddings"`
}

type categoryScore struct {
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}

// EmbeddingClassify embeds the text and each category label, then assigns the
// text to the closest category by cosine similarity. Category embeddings are
// cached per (scope, model) so a steady category set costs one embedding call
// per item after warm-up.
func (i *OpenAIAnalyticsIntegration) EmbeddingClassify(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := EmbeddingClassifyParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	categories := normalizeCategories(p.Categories)
	if len(categories) == 0 {
		return nil, ErrEmptyCategorySet
	}

	if p.Model == "" {
		p.Model = defaultEmbeddingModel
	}

	if p.CacheScope == "" {
		p.CacheScope = DefaultCacheScope
	}

	threshold := defaultClassifyThreshold
	if p.Threshold != nil {
		threshold = *p.Threshold
	}

	if p.ClearCache {
		i.embeddingCache.Clear(p.CacheScope, p.Model)
	}

	textEmbedding, err := i.embedText(ctx, p.Model, p.Text)
	if err != nil {
		return nil, err
	}

	scores := make([]categoryScore, 0, len(categories))

	for _, category := range categories {
		embedding := p.CategoryEmbeddings[category]
		if len(embedding) > 0 {
			i.embeddingCache.Put(p.CacheScope, p.Model, category, embedding)
		} else {
			cached, ok := i.embeddingCache.Get(p.CacheScope, p.Model, category)
			if ok {
				embedding = cached
			} else {
				embedding, err = i.embedText(ctx, p.Model, category)
				if err != nil {
					return nil, err
				}

				i.embeddingCache.Put(p.CacheScope, p.Model, category, embedding)
			}
		}

		similarity, err := CosineSimilarity(textEmbedding, embedding)
		if err != nil {
			return nil, err
		}

		scores = append(scores, categoryScore{Category: category, Similarity: similarity})
	}

	// Ranked best-first; the stable sort keeps input order among ties.
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Similarity > scores[b].Similarity
	})

	var result map[string]any
	if p.Multiple {
		result = classifyMultiple(categories, scores, threshold)
	} else {
		result = classifySingle(categories, scores, threshold)
	}

	result["text"] = p.Text
	result["model"] = p.Model

	return result, nil
}

// classifySingle expects scores sorted best-first.
func classifySingle(categories []string, scores []categoryScore, threshold float64) map[string]any {
	best := scores[0]

	category := best.Category
	if best.Similarity < threshold {
		// The best similarity is kept in the output even below the
		// threshold so callers can tune the threshold from real data.
		category = UnclassifiedCategory
	}

	return map[string]any{
		"category":          category,
		"similarity":        best.Similarity,
		"scores":            scores,
		"_categoryBranches": categoryBranches(categories, []string{category}),
	}
}

// classifyMultiple expects scores sorted best-first. The top match doubles as
// the single-valued category and similarity fields so downstream nodes can
// treat both modes alike.
func classifyMultiple(categories []string, scores []categoryScore, threshold float64) map[string]any {
	matched := make([]categoryScore, 0, len(scores))
	for _, score := range scores {
		if score.Similarity >= threshold {
			matched = append(matched, score)
		}
	}

	if len(matched) == 0 {
		matched = []categoryScore{{Category: UnclassifiedCategory, Similarity: 0}}
	}

	matchedNames := make([]string, 0, len(matched))
	for _, score := range matched {
		matchedNames = append(matchedNames, score.Category)
	}

	return map[string]any{
		"category":          matched[0].Category,
		"similarity":        matched[0].Similarity,
		"categories":        matched,
		"scores":            scores,
		"_categoryBranches": categoryBranches(categories, matchedNames),
	}
}

// categoryBranches maps every known category plus the unclassified sentinel
// to whether it matched, giving downstream branch nodes a stable shape to
// route on.
func categoryBranches(categories, matched []string) map[string]bool {
	branches := make(map[string]bool, len(categories)+1)

	for _, category := range categories {
		branches[category] = false
	}
	branches[UnclassifiedCategory] = false

	for _, category := range matched {
		branches[category] = true
	}

	return branches
}

func normalizeCategories(categories []string) []string {
	normalized := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))

	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}

		if _, duplicate := seen[category]; duplicate {
			continue
		}

		seen[category] = struct{}{}
		normalized = append(normalized, category)
	}

	return normalized
}

type LLMClassifyParams struct {
	Text         string   `json:"text"`
	Categories   []string `json:"categories"`
	Model        string   `json:"model"`
	OutputFormat string   `json:"output_format"`
	Instructions string   `json:"instructions"`
}

type llmClassification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// LLMClassify asks a chat model to pick a category. JSON output mode requests
// a structured verdict; text mode takes the raw reply as the category with
// full confidence, snapped to the closest known category when it is not an
// exact match.
func (i *OpenAIAnalyticsIntegration) LLMClassify(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := LLMClassifyParams{}
	err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings)
	if err != nil {
		return nil, err
	}

	categories := normalizeCategories(p.Categories)
	if len(categories) == 0 {
		return nil, ErrEmptyCategorySet
	}

	if p.Model == "" {
		p.Model = defaultChatModel
	}

	jsonMode := p.OutputFormat != "text"

	request := openai.ChatCompletionRequest{
		Model:       p.Model,
		Temperature: llmClassifyTemperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: buildClassifyPrompt(categories, p.Instructions, jsonMode),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.Text,
			},
		},
	}

	if jsonMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	response, err := i.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("classification returned no choices")
	}

	reply := strings.TrimSpace(response.Choices[0].Message.Content)

	if !jsonMode {
		category := reply
		if matched, ok := findBestCategory(reply, categories); ok {
			category = matched
		}

		return map[string]any{
			"category":          category,
			"confidence":        1.0,
			"_categoryBranches": categoryBranches(categories, []string{category}),
		}, nil
	}

	verdict := llmClassification{}
	if err := json.Unmarshal([]byte(reply), &verdict); err != nil {
		// A malformed verdict is reported as a classification error rather
		// than failing the item, matching the lenient contract of the
		// embedding classifier.
		log.Warn().Err(err).Str("reply", reply).Msg("Failed to parse classification verdict")

		return map[string]any{
			"category":          "error",
			"confidence":        0.0,
			"error":             err.Error(),
			"_categoryBranches": categoryBranches(categories, nil),
		}, nil
	}

	return map[string]any{
		"category":          verdict.Category,
		"confidence":        verdict.Confidence,
		"reasoning":         verdict.Reasoning,
		"_categoryBranches": categoryBranches(categories, []string{verdict.Category}),
	}, nil
}

func buildClassifyPrompt(categories []string, instructions string, jsonMode bool) string {
	var b strings.Builder

	b.WriteString("You are a text classifier. Classify the user's text into exactly one of these categories: ")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString(".")

	if instructions != "" {
		b.WriteString(" ")
		b.WriteString(instructions)
	}

	if jsonMode {
		b.WriteString(` Respond with a JSON object: {"category": "<category>", "confidence": <0..1>, "reasoning": "<short reason>"}.`)
	} else {
		b.WriteString(" Respond with the category name only.")
	}

	return b.String()
}

// findBestCategory matches a free-form model reply against the known
// categories: exact match first ignoring case, then containment either way.
func findBestCategory(reply string, categories []string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(reply))
	if normalized == "" {
		return "", false
	}

	for _, category := range categories {
		if strings.EqualFold(category, normalized) {
			return category, true
		}
	}

	for _, category := range categories {
		lowered := strings.ToLower(category)
		if strings.Contains(normalized, lowered) || strings.Contains(lowered, normalized) {
			return category, true
		}
	}

	return "", false
}
