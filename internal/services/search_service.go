// internal/services/search_service.go
package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/cache"
	"github.com/mykpoptrade/backend/internal/models"
)

const (
	suggestionMinLength = 2
	suggestionLimit     = 5
	suggestionCacheTTL  = 5 * time.Minute

	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// The free-text query matches any of these listing fields, case-insensitively.
const productSearchVector = "to_tsvector('simple', title || ' ' || description || ' ' || coalesce(group_name, '') || ' ' || coalesce(member_name, '') || ' ' || coalesce(album_name, ''))"

// OptionalFloat treats malformed numeric input as absent rather than failing
// the request: search stays permissive regardless of what clients send.
type OptionalFloat struct {
	Value *float64
}

func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	// JSON null leaves the target untouched, so catch it before unmarshalling.
	if string(data) == "null" {
		f.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		f.Value = &v
	}
	return nil
}

func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

type OptionalInt struct {
	Value *int
}

func (i *OptionalInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		i.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err == nil {
		i.Value = &v
	}
	return nil
}

func (i OptionalInt) MarshalJSON() ([]byte, error) {
	if i.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*i.Value)
}

type PriceRange struct {
	Min OptionalFloat `json:"min"`
	Max OptionalFloat `json:"max"`
}

// AdvancedSearchRequest carries every optional facet of a search. Absent
// fields impose no restriction; the filter is built by folding present fields
// into a conjunction.
type AdvancedSearchRequest struct {
	Query       string      `json:"query"`
	Groups      []string    `json:"groups"`
	Members     []string    `json:"members"`
	Albums      []string    `json:"albums"`
	PriceRange  *PriceRange `json:"priceRange"`
	Conditions  []string    `json:"condition"`
	ProductType string      `json:"type"`
	Currency    string      `json:"currency"`
	Page        OptionalInt `json:"page"`
	Limit       OptionalInt `json:"limit"`
	SortBy      string      `json:"sortBy"`
}

// EffectivePage coerces an absent or out-of-range page to the first page.
func (r *AdvancedSearchRequest) EffectivePage() int {
	if r.Page.Value == nil || *r.Page.Value < 1 {
		return 1
	}
	return *r.Page.Value
}

func (r *AdvancedSearchRequest) EffectiveLimit() int {
	if r.Limit.Value == nil || *r.Limit.Value < 1 || *r.Limit.Value > maxSearchLimit {
		return defaultSearchLimit
	}
	return *r.Limit.Value
}

// validConditions drops values outside the condition enum instead of
// rejecting the request.
func (r *AdvancedSearchRequest) validConditions() []string {
	var conditions []string
	for _, c := range r.Conditions {
		if models.ProductCondition(c).Valid() {
			conditions = append(conditions, c)
		}
	}
	return conditions
}

// FilterSnapshot is what the history recorder persists alongside the query.
func (r *AdvancedSearchRequest) FilterSnapshot() models.JSONB {
	snapshot := models.JSONB{}
	if len(r.Groups) > 0 {
		snapshot["groups"] = r.Groups
	}
	if len(r.Members) > 0 {
		snapshot["members"] = r.Members
	}
	if len(r.Albums) > 0 {
		snapshot["albums"] = r.Albums
	}
	if conditions := r.validConditions(); len(conditions) > 0 {
		snapshot["condition"] = conditions
	}
	if r.ProductType != "" {
		snapshot["type"] = r.ProductType
	}
	if r.Currency != "" {
		snapshot["currency"] = r.Currency
	}
	if r.PriceRange != nil {
		priceRange := models.JSONB{}
		if r.PriceRange.Min.Value != nil {
			priceRange["min"] = *r.PriceRange.Min.Value
		}
		if r.PriceRange.Max.Value != nil {
			priceRange["max"] = *r.PriceRange.Max.Value
		}
		if len(priceRange) > 0 {
			snapshot["priceRange"] = priceRange
		}
	}
	if r.SortBy != "" {
		snapshot["sortBy"] = r.SortBy
	}
	return snapshot
}

type SearchSuggestions struct {
	Groups  []string `json:"groups"`
	Albums  []string `json:"albums"`
	Members []string `json:"members"`
}

type SearchService struct {
	db      *gorm.DB
	history *SearchHistoryService
}

func NewSearchService(db *gorm.DB, history *SearchHistoryService) *SearchService {
	return &SearchService{
		db:      db,
		history: history,
	}
}

// AdvancedSearch executes the filtered product query and, for authenticated
// free-text searches, records the query in the caller's history without
// blocking or failing the response.
func (s *SearchService) AdvancedSearch(req *AdvancedSearchRequest, userID *uuid.UUID) ([]models.Product, int64, error) {
	normalizedQuery := NormalizeQuery(req.Query)

	query := s.applyFilters(s.db.Model(&models.Product{}).Preload("Seller"), req, normalizedQuery)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = s.applySort(query, models.SortKey(req.SortBy), normalizedQuery)

	offset := (req.EffectivePage() - 1) * req.EffectiveLimit()
	query = query.Offset(offset).Limit(req.EffectiveLimit())

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	if userID != nil && normalizedQuery != "" {
		go s.history.Record(*userID, normalizedQuery, req.FilterSnapshot(), total)
	}

	return products, total, nil
}

func (s *SearchService) applyFilters(query *gorm.DB, req *AdvancedSearchRequest, normalizedQuery string) *gorm.DB {
	// Sold and suspended listings are never searchable
	query = query.Where("is_available = ?", true)

	if normalizedQuery != "" {
		pattern := "%" + normalizedQuery + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR group_name ILIKE ? OR member_name ILIKE ? OR album_name ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	if len(req.Groups) > 0 {
		query = query.Where("group_name IN ?", req.Groups)
	}

	if len(req.Members) > 0 {
		query = query.Where("member_name IN ?", req.Members)
	}

	if len(req.Albums) > 0 {
		query = query.Where("album_name IN ?", req.Albums)
	}

	if conditions := req.validConditions(); len(conditions) > 0 {
		query = query.Where("condition IN ?", conditions)
	}

	if req.ProductType != "" && models.ProductType(req.ProductType).Valid() {
		query = query.Where("product_type = ?", req.ProductType)
	}

	if req.Currency != "" {
		query = query.Where("currency = ?", strings.ToUpper(req.Currency))
	}

	if req.PriceRange != nil {
		if req.PriceRange.Min.Value != nil {
			query = query.Where("price >= ?", *req.PriceRange.Min.Value)
		}
		if req.PriceRange.Max.Value != nil {
			query = query.Where("price <= ?", *req.PriceRange.Max.Value)
		}
	}

	return query
}

func (s *SearchService) applySort(query *gorm.DB, sortBy models.SortKey, normalizedQuery string) *gorm.DB {
	if sortBy == models.SortRelevance && normalizedQuery != "" {
		return query.
			Select(fmt.Sprintf("*, ts_rank(%s, plainto_tsquery('simple', ?)) AS text_rank", productSearchVector), normalizedQuery).
			Order("text_rank DESC, created_at DESC")
	}

	return query.Order(resolveSortClause(sortBy))
}

// resolveSortClause maps a sort key to its ORDER BY clause. Relevance without
// a query, along with unknown keys, falls back to newest-first.
func resolveSortClause(sortBy models.SortKey) string {
	switch sortBy {
	case models.SortPriceAsc:
		return "price ASC"
	case models.SortPriceDesc:
		return "price DESC"
	case models.SortOldest:
		return "created_at ASC"
	case models.SortPopular:
		return "view_count DESC, favorite_count DESC"
	case models.SortNewest, models.SortRelevance:
		return "created_at DESC"
	default:
		return "created_at DESC"
	}
}

// Suggestions returns matching group names, album titles and member names for
// a typeahead prefix. Results are cached; the directory changes rarely.
func (s *SearchService) Suggestions(rawQuery string) (*SearchSuggestions, error) {
	query := NormalizeQuery(rawQuery)
	if len(query) < suggestionMinLength {
		return nil, fmt.Errorf("query must be at least %d characters", suggestionMinLength)
	}

	cacheKey := "suggestions:" + query
	if cached, found := cache.Get(cacheKey); found {
		if suggestions, ok := cached.(*SearchSuggestions); ok {
			return suggestions, nil
		}
	}

	pattern := "%" + query + "%"
	suggestions := &SearchSuggestions{
		Groups:  []string{},
		Albums:  []string{},
		Members: []string{},
	}

	if err := s.db.Model(&models.KpopGroup{}).
		Where("name ILIKE ? AND is_active = ?", pattern, true).
		Order("follower_count DESC").
		Limit(suggestionLimit).
		Pluck("name", &suggestions.Groups).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch group suggestions: %w", err)
	}

	if err := s.db.Model(&models.Album{}).
		Where("title ILIKE ?", pattern).
		Order("release_date DESC NULLS LAST").
		Limit(suggestionLimit).
		Pluck("title", &suggestions.Albums).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch album suggestions: %w", err)
	}

	if err := s.db.Raw(`
		SELECT DISTINCT member FROM (
			SELECT unnest(members) AS member FROM kpop_groups WHERE is_active = true
		) m
		WHERE member ILIKE ?
		ORDER BY member
		LIMIT ?
	`, pattern, suggestionLimit).Scan(&suggestions.Members).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch member suggestions: %w", err)
	}

	cache.Set(cacheKey, suggestions, suggestionCacheTTL)

	return suggestions, nil
}
