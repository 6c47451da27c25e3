package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sareefinder/backend/internal/domain"
)

const defaultMaxQueryLength = 500

// QueryPreprocessor validates raw queries and derives stable cache keys from them.
// Only surrounding whitespace is removed; the matcher sees the text as typed.
type QueryPreprocessor struct {
	maxLength int
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(maxLength int) *QueryPreprocessor {
	if maxLength <= 0 {
		maxLength = defaultMaxQueryLength
	}
	return &QueryPreprocessor{maxLength: maxLength}
}

// PreprocessQuery trims surrounding whitespace and enforces the length limit.
// An empty query is valid and selects the popular recommendations.
func (p *QueryPreprocessor) PreprocessQuery(query string) (string, error) {
	if !utf8.ValidString(query) {
		return "", fmt.Errorf("%w: query is not valid UTF-8", domain.ErrInvalidRequest)
	}

	cleaned := strings.TrimSpace(query)
	if n := utf8.RuneCountInString(cleaned); n > p.maxLength {
		return "", fmt.Errorf("%w: query has %d characters, limit is %d", domain.ErrInvalidRequest, n, p.maxLength)
	}

	return cleaned, nil
}

// CacheKey returns the cache key for a preprocessed query.
// Format: "recommend:{sha256 of lower-cased query}"
func (p *QueryPreprocessor) CacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(query)))
	return "recommend:" + hex.EncodeToString(sum[:])
}
