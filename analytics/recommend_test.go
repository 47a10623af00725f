package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quotepulse/api/models"
)

func TestSuggestFromUnionInFirstSeenOrder(t *testing.T) {
	table := map[string][]string{
		"a": {"x", "y"},
		"b": {"y", "z"},
		"c": {"w"},
	}

	got := suggestFrom(table, []string{"a", "b", "c"}, 5)
	assert.Equal(t, []string{"x", "y", "z", "w"}, got)
}

func TestSuggestFromCapsResults(t *testing.T) {
	table := map[string][]string{
		"a": {"1", "2", "3"},
		"b": {"4", "5", "6"},
	}
	assert.Len(t, suggestFrom(table, []string{"a", "b"}, 5), 5)
}

func TestSuggestFromUnknownKeysContributeNothing(t *testing.T) {
	assert.Empty(t, suggestFrom(relatedCategories, []string{"nonexistent"}, 5))
	assert.Empty(t, suggestFrom(relatedCategories, nil, 5))
}

func TestRecommendationsUseTopThreePreferences(t *testing.T) {
	prefs := models.UserPreferences{
		FavoriteCategories: []models.CategoryRank{
			{Category: "motivation", Count: 5},
			{Category: "love", Count: 4},
			{Category: "wisdom", Count: 3},
			{Category: "humor", Count: 2}, // beyond top 3, must not contribute
		},
	}

	recs := buildUserRecommendations(prefs)
	assert.Equal(t, []string{"success", "perseverance", "inspiration", "friendship", "happiness"}, recs.SuggestedCategories)
	assert.Empty(t, recs.SuggestedAuthors)
}
