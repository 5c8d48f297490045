// internal/services/search_service_test.go
package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mykpoptrade/backend/internal/models"
)

func TestOptionalFloatUnmarshalPermissive(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{"valid number", `12.5`, floatPtr(12.5)},
		{"integer", `40`, floatPtr(40)},
		{"null", `null`, nil},
		{"string garbage", `"cheap"`, nil},
		{"object garbage", `{"oops":true}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f OptionalFloat
			err := json.Unmarshal([]byte(tt.input), &f)
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, f.Value)
			} else {
				require.NotNil(t, f.Value)
				assert.Equal(t, *tt.expected, *f.Value)
			}
		})
	}
}

func TestOptionalIntUnmarshalPermissive(t *testing.T) {
	var i OptionalInt
	require.NoError(t, json.Unmarshal([]byte(`3`), &i))
	require.NotNil(t, i.Value)
	assert.Equal(t, 3, *i.Value)

	var bad OptionalInt
	require.NoError(t, json.Unmarshal([]byte(`"three"`), &bad))
	assert.Nil(t, bad.Value)

	var null OptionalInt
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.Nil(t, null.Value)
}

func TestAdvancedSearchRequestMalformedBodyDegrades(t *testing.T) {
	// A filter payload full of wrong types must still parse, dropping the
	// broken facets instead of failing the search.
	body := `{
		"query": "  NewJeans Photocard ",
		"priceRange": {"min": "cheap", "max": 50},
		"page": "first",
		"limit": 25
	}`

	var req AdvancedSearchRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Nil(t, req.PriceRange.Min.Value)
	require.NotNil(t, req.PriceRange.Max.Value)
	assert.Equal(t, 50.0, *req.PriceRange.Max.Value)
	assert.Equal(t, 1, req.EffectivePage())
	assert.Equal(t, 25, req.EffectiveLimit())
}

func TestAdvancedSearchRequestNullPriceBoundIsAbsent(t *testing.T) {
	// An explicit null bound must impose no price restriction; capturing a
	// zero here would silently empty the result set.
	body := `{"query": "aespa", "priceRange": {"min": null, "max": null}}`

	var req AdvancedSearchRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NotNil(t, req.PriceRange)
	assert.Nil(t, req.PriceRange.Min.Value)
	assert.Nil(t, req.PriceRange.Max.Value)
}

func TestEffectivePageAndLimitCoercion(t *testing.T) {
	var req AdvancedSearchRequest
	assert.Equal(t, 1, req.EffectivePage())
	assert.Equal(t, defaultSearchLimit, req.EffectiveLimit())

	req.Page.Value = intPtr(-5)
	req.Limit.Value = intPtr(0)
	assert.Equal(t, 1, req.EffectivePage())
	assert.Equal(t, defaultSearchLimit, req.EffectiveLimit())

	req.Page.Value = intPtr(3)
	req.Limit.Value = intPtr(maxSearchLimit + 1)
	assert.Equal(t, 3, req.EffectivePage())
	assert.Equal(t, defaultSearchLimit, req.EffectiveLimit())

	req.Limit.Value = intPtr(maxSearchLimit)
	assert.Equal(t, maxSearchLimit, req.EffectiveLimit())
}

func TestValidConditionsDropsUnknownValues(t *testing.T) {
	req := AdvancedSearchRequest{
		Conditions: []string{"new", "mint", "good", ""},
	}
	assert.Equal(t, []string{"new", "good"}, req.validConditions())

	empty := AdvancedSearchRequest{Conditions: []string{"mint"}}
	assert.Empty(t, empty.validConditions())
}

func TestFilterSnapshotOmitsAbsentFacets(t *testing.T) {
	req := AdvancedSearchRequest{
		Query:  "photocard",
		Groups: []string{"aespa"},
		PriceRange: &PriceRange{
			Max: OptionalFloat{Value: floatPtr(30)},
		},
	}

	snapshot := req.FilterSnapshot()
	assert.Equal(t, []string{"aespa"}, snapshot["groups"])
	assert.NotContains(t, snapshot, "members")
	assert.NotContains(t, snapshot, "condition")
	assert.NotContains(t, snapshot, "type")

	priceRange, ok := snapshot["priceRange"].(models.JSONB)
	require.True(t, ok)
	assert.NotContains(t, priceRange, "min")
	assert.Equal(t, 30.0, priceRange["max"])
}

func TestResolveSortClause(t *testing.T) {
	tests := []struct {
		sortBy   models.SortKey
		expected string
	}{
		{models.SortPriceAsc, "price ASC"},
		{models.SortPriceDesc, "price DESC"},
		{models.SortOldest, "created_at ASC"},
		{models.SortPopular, "view_count DESC, favorite_count DESC"},
		{models.SortNewest, "created_at DESC"},
		{models.SortRelevance, "created_at DESC"},
		{models.SortKey("bogus"), "created_at DESC"},
		{models.SortKey(""), "created_at DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveSortClause(tt.sortBy), "sortBy=%q", tt.sortBy)
	}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
