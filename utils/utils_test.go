package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() { AssertInvariant(true, "ok") })
	assert.PanicsWithValue(t, "invariant violated - broken", func() { AssertInvariant(false, "broken") })
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		substr   string
		expected bool
	}{
		{"exact match", "research", "research", true},
		{"case insensitive", "Research Quest", "research", true},
		{"uppercase query", "research quest", "QUEST", true},
		{"no match", "Gaming Hub", "research", false},
		{"empty query matches", "Gaming Hub", "", true},
		{"empty value", "", "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsFold(tt.s, tt.substr))
		})
	}
}

func TestContainsAnyFold(t *testing.T) {
	assert.True(t, ContainsAnyFold("bio", "general", "Biology lab notes", ""))
	assert.True(t, ContainsAnyFold("", "general"))
	assert.False(t, ContainsAnyFold("bio", "general", "random"))
	assert.False(t, ContainsAnyFold("bio"))
}
