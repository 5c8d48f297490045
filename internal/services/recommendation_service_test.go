// internal/services/recommendation_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mykpoptrade/backend/internal/config"
	"github.com/mykpoptrade/backend/internal/models"
)

func testRecommendConfig() config.RecommendConfig {
	return config.RecommendConfig{
		GroupWeight:       3,
		TypeWeight:        2,
		MemberWeight:      2,
		PopularityDivisor: 100,
		DefaultLimit:      10,
	}
}

func testSignal(groups, types, members []string) preferenceSignal {
	signal := newPreferenceSignal()
	for _, g := range groups {
		addSignal(signal.groups, g)
	}
	for _, t := range types {
		addSignal(signal.types, t)
	}
	for _, m := range members {
		addSignal(signal.members, m)
	}
	return signal
}

func TestScoreSumsMatchWeightsAndPopularity(t *testing.T) {
	svc := &RecommendationService{cfg: testRecommendConfig()}
	signal := testSignal([]string{"NewJeans"}, []string{"photocard"}, []string{"Hanni"})

	product := models.Product{
		GroupName:     "NewJeans",
		ProductType:   models.ProductTypePhotocard,
		MemberName:    "Hanni",
		ViewCount:     100,
		FavoriteCount: 50,
	}

	// 3 + 2 + 2 matches plus (100 + 2*50)/100 popularity.
	assert.InDelta(t, 9.0, svc.score(&product, signal), 1e-9)
}

func TestScorePartialMatches(t *testing.T) {
	svc := &RecommendationService{cfg: testRecommendConfig()}
	signal := testSignal([]string{"aespa"}, nil, nil)

	groupOnly := models.Product{GroupName: "aespa", ProductType: models.ProductTypeAlbum}
	assert.InDelta(t, 3.0, svc.score(&groupOnly, signal), 1e-9)

	noMatch := models.Product{GroupName: "BTS", ProductType: models.ProductTypeAlbum}
	assert.InDelta(t, 0.0, svc.score(&noMatch, signal), 1e-9)

	popularOnly := models.Product{GroupName: "BTS", ViewCount: 40, FavoriteCount: 5}
	assert.InDelta(t, 0.5, svc.score(&popularOnly, signal), 1e-9)
}

func TestScoreMatchesAreCaseInsensitive(t *testing.T) {
	svc := &RecommendationService{cfg: testRecommendConfig()}
	signal := testSignal([]string{"newjeans"}, nil, []string{"HANNI"})

	product := models.Product{GroupName: "NewJeans", MemberName: "hanni"}
	assert.InDelta(t, 5.0, svc.score(&product, signal), 1e-9)
}

func TestRankOrdersByScoreThenRecency(t *testing.T) {
	svc := &RecommendationService{cfg: testRecommendConfig()}
	signal := testSignal([]string{"aespa"}, nil, nil)

	now := time.Now()
	older := models.Product{GroupName: "BTS"}
	older.CreatedAt = now.Add(-2 * time.Hour)
	newer := models.Product{GroupName: "BTS"}
	newer.CreatedAt = now.Add(-1 * time.Hour)
	matched := models.Product{GroupName: "aespa"}
	matched.CreatedAt = now.Add(-24 * time.Hour)

	ranked := svc.rank([]models.Product{older, newer, matched}, signal)

	assert.Equal(t, "aespa", ranked[0].GroupName)
	// Equal scores break by recency, newest first.
	assert.Equal(t, newer.CreatedAt, ranked[1].CreatedAt)
	assert.Equal(t, older.CreatedAt, ranked[2].CreatedAt)
}

func TestPreferenceSignalEmpty(t *testing.T) {
	assert.True(t, newPreferenceSignal().empty())
	assert.False(t, testSignal([]string{"TWICE"}, nil, nil).empty())
}

func TestAddSignalSkipsBlankValues(t *testing.T) {
	set := make(map[string]struct{})
	addSignal(set, "  ")
	addSignal(set, "")
	assert.Empty(t, set)

	addSignal(set, " Stray Kids ")
	assert.True(t, contains(set, "stray kids"))
	assert.True(t, contains(set, "STRAY KIDS"))
}

func TestSetValuesSorted(t *testing.T) {
	set := map[string]struct{}{"twice": {}, "aespa": {}, "newjeans": {}}
	assert.Equal(t, []string{"aespa", "newjeans", "twice"}, setValues(set))
}
