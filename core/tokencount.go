package core

import (
	"strings"
	"sync"
	"time"
)

const tokenCacheTTL = 5 * time.Minute

// TokenCounter estimates prompt sizes for the assistant
type TokenCounter struct {
	cache sync.Map
	now   func() time.Time
}

type tokenCountCache struct {
	Tokens    int
	Timestamp time.Time
}

func NewTokenCounter() *TokenCounter {
	return &TokenCounter{now: time.Now}
}

// CountTokens returns the estimated token count for content, caching results for a few minutes
func (tc *TokenCounter) CountTokens(content string) int {
	if content == "" {
		return 0
	}

	if cached, ok := tc.cache.Load(content); ok {
		if item, ok := cached.(tokenCountCache); ok {
			if tc.now().Sub(item.Timestamp) < tokenCacheTTL {
				return item.Tokens
			}
			tc.cache.Delete(content)
		}
	}

	tokens := EstimateTokens(content)
	tc.cache.Store(content, tokenCountCache{
		Tokens:    tokens,
		Timestamp: tc.now(),
	})
	return tokens
}

// PruneExpired drops cached counts older than the cache TTL and returns how many were dropped
func (tc *TokenCounter) PruneExpired() int {
	cutoff := tc.now().Add(-tokenCacheTTL)
	pruned := 0
	tc.cache.Range(func(key, value any) bool {
		if item, ok := value.(tokenCountCache); !ok || !item.Timestamp.After(cutoff) {
			tc.cache.Delete(key)
			pruned++
		}
		return true
	})
	return pruned
}

// ClearCache clears all cached token counts
func (tc *TokenCounter) ClearCache() {
	tc.cache.Range(func(key, _ any) bool {
		tc.cache.Delete(key)
		return true
	})
}

// EstimateTokens provides a rough token count estimation.
// ~1.3 tokens per word, character based for very short texts, plus 10% for punctuation.
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}

	wordCount := len(strings.Fields(content))
	charCount := len(strings.ReplaceAll(content, " ", ""))

	tokenEstimate := float64(wordCount) * 1.3
	if wordCount < 10 {
		tokenEstimate = float64(charCount) / 3.5
	}
	tokenEstimate *= 1.1

	return int(tokenEstimate)
}
