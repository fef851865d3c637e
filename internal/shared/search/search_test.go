package search_test

import (
	"testing"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/search"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%john%", search.ContainsPattern("john"))
	assert.Equal(t, `%50\%%`, search.ContainsPattern("50%"))
	assert.Equal(t, `%a\_b%`, search.ContainsPattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, search.ContainsPattern(`c:\tmp`))
}

func TestMatches(t *testing.T) {
	fields := []string{"John Smith", "john@acme.io", "Engineering", "Developer"}

	assert.True(t, search.Matches("", fields...))
	assert.True(t, search.Matches("JOHN", fields...))
	assert.True(t, search.Matches("engineer", fields...))
	assert.True(t, search.Matches("acme", fields...))
	assert.False(t, search.Matches("finance", fields...))
}
