package openaianalytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrDimensionMismatch = errors.New("vectors have mismatched dimensions")
)

// CosineSimilarity returns the cosine of the angle between a and b in [-1, 1].
// A zero-magnitude vector has no direction, so its similarity to anything is 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64

	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// parseVectorInput decodes a user-typed vector. Accepts a JSON array, a bare
// comma-separated list, bracketed lists with trailing or doubled commas, and
// values separated by whitespace, pipes or semicolons.
func parseVectorInput(input string) ([]float32, error) {
	trimmed := strings.TrimSpace(input)

	var vector []float32
	if err := json.Unmarshal([]byte(trimmed), &vector); err == nil {
		return vector, nil
	}

	if !strings.HasPrefix(trimmed, "[") && !strings.HasSuffix(trimmed, "]") {
		if err := json.Unmarshal([]byte("["+trimmed+"]"), &vector); err == nil {
			return vector, nil
		}
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		cleaned := trimmed
		for strings.Contains(cleaned, ",,") {
			cleaned = strings.ReplaceAll(cleaned, ",,", ",")
		}
		cleaned = strings.ReplaceAll(cleaned, ", ]", "]")
		cleaned = strings.ReplaceAll(cleaned, ",]", "]")
		cleaned = strings.ReplaceAll(cleaned, "[,", "[")

		if err := json.Unmarshal([]byte(cleaned), &vector); err == nil {
			return vector, nil
		}
	}

	stripped := strings.NewReplacer("[", "", "]", "").Replace(trimmed)
	fields := strings.FieldsFunc(stripped, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', '|', ';':
			return true
		}
		return false
	})

	vector = make([]float32, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("cannot parse input as a vector: %q", trimmed)
		}
		vector = append(vector, float32(value))
	}

	if len(vector) == 0 {
		return nil, fmt.Errorf("cannot parse input as a vector: %q", trimmed)
	}

	return vector, nil
}
