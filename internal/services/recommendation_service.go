// internal/services/recommendation_service.go
package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/cache"
	"github.com/mykpoptrade/backend/internal/config"
	"github.com/mykpoptrade/backend/internal/models"
)

// RecommendationService ranks available listings against the preference
// signal derived from a user's favorites and stated preferred groups, and
// falls back to popularity ranking when no signal exists.
type RecommendationService struct {
	db       *gorm.DB
	cfg      config.RecommendConfig
	trending *cache.ResultCache[[]models.Product]
}

type RecommendationResult struct {
	Products       []models.Product `json:"products"`
	IsPersonalized bool             `json:"isPersonalized"`
}

// preferenceSignal holds the sets a candidate is scored against. Keys are
// lowercased so matching is case-insensitive.
type preferenceSignal struct {
	groups  map[string]struct{}
	types   map[string]struct{}
	members map[string]struct{}
}

func (p preferenceSignal) empty() bool {
	return len(p.groups) == 0 && len(p.types) == 0 && len(p.members) == 0
}

func newPreferenceSignal() preferenceSignal {
	return preferenceSignal{
		groups:  make(map[string]struct{}),
		types:   make(map[string]struct{}),
		members: make(map[string]struct{}),
	}
}

func addSignal(set map[string]struct{}, value string) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value != "" {
		set[value] = struct{}{}
	}
}

func contains(set map[string]struct{}, value string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

func NewRecommendationService(db *gorm.DB, cfg config.RecommendConfig) *RecommendationService {
	return &RecommendationService{
		db:       db,
		cfg:      cfg,
		trending: cache.NewResultCache[[]models.Product](32, 2*time.Minute),
	}
}

// GetRecommendations produces up to limit products. IsPersonalized is true
// only when at least one scored candidate was produced for an identified user.
func (s *RecommendationService) GetRecommendations(userID *uuid.UUID, limit int) (*RecommendationResult, error) {
	if limit < 1 || limit > 50 {
		limit = s.cfg.DefaultLimit
	}

	if userID == nil {
		products, err := s.popularProducts(limit, nil, nil)
		if err != nil {
			return nil, err
		}
		return &RecommendationResult{Products: products, IsPersonalized: false}, nil
	}

	signal, favoriteIDs, err := s.buildPreferenceSignal(*userID)
	if err != nil {
		return nil, err
	}

	// No favorites and no stated preferences means there is nothing to score
	// against; the user gets the plain popularity ranking, not personalized.
	if signal.empty() {
		products, err := s.popularProducts(limit, userID, favoriteIDs)
		if err != nil {
			return nil, err
		}
		return &RecommendationResult{Products: products, IsPersonalized: false}, nil
	}

	candidates, err := s.findCandidates(*userID, signal, favoriteIDs)
	if err != nil {
		return nil, err
	}

	scored := s.rank(candidates, signal)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	personalized := len(scored) > 0

	// Backfill any shortfall with popularity-ranked products, keeping the
	// requested total and never re-suggesting what was already picked.
	if len(scored) < limit {
		exclude := make([]uuid.UUID, 0, len(scored)+len(favoriteIDs))
		for _, p := range scored {
			exclude = append(exclude, p.ID)
		}
		exclude = append(exclude, favoriteIDs...)

		fill, err := s.popularProducts(limit-len(scored), userID, exclude)
		if err != nil {
			return nil, err
		}
		scored = append(scored, fill...)
	}

	return &RecommendationResult{Products: scored, IsPersonalized: personalized}, nil
}

// QuickRecommendations is the popularity-only variant with no personalization.
// The result is shared across users, so it is served from a short-lived cache.
func (s *RecommendationService) QuickRecommendations(limit int) ([]models.Product, error) {
	if limit < 1 || limit > 50 {
		limit = s.cfg.DefaultLimit
	}

	key := fmt.Sprintf("quick:%d", limit)
	if products, ok := s.trending.Get(key); ok {
		return products, nil
	}

	products, err := s.popularProducts(limit, nil, nil)
	if err != nil {
		return nil, err
	}
	s.trending.Set(key, products)
	return products, nil
}

// buildPreferenceSignal unions the groups, types and members of the user's
// favorited products with the user's stated preferred groups. Favorites whose
// product has since been deleted contribute nothing.
func (s *RecommendationService) buildPreferenceSignal(userID uuid.UUID) (preferenceSignal, []uuid.UUID, error) {
	signal := newPreferenceSignal()

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return signal, nil, fmt.Errorf("failed to load user: %w", err)
	}

	for _, group := range user.PreferredGroups {
		addSignal(signal.groups, group)
	}

	var favorites []models.Favorite
	if err := s.db.Preload("Product").Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return signal, nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	favoriteIDs := make([]uuid.UUID, 0, len(favorites))
	for _, favorite := range favorites {
		favoriteIDs = append(favoriteIDs, favorite.ProductID)
		if favorite.Product.ID == uuid.Nil {
			// product deleted since it was favorited
			continue
		}
		addSignal(signal.groups, favorite.Product.GroupName)
		addSignal(signal.types, string(favorite.Product.ProductType))
		addSignal(signal.members, favorite.Product.MemberName)
	}

	return signal, favoriteIDs, nil
}

func (s *RecommendationService) findCandidates(userID uuid.UUID, signal preferenceSignal, favoriteIDs []uuid.UUID) ([]models.Product, error) {
	query := s.db.Preload("Seller").
		Where("is_available = ?", true).
		Where("seller_id <> ?", userID)

	if len(favoriteIDs) > 0 {
		query = query.Where("id NOT IN ?", favoriteIDs)
	}

	// Any preference match qualifies a candidate; with no signal at all,
	// every available listing stays in the pool.
	var conditions []string
	var args []interface{}
	if len(signal.groups) > 0 {
		conditions = append(conditions, "LOWER(group_name) IN ?")
		args = append(args, setValues(signal.groups))
	}
	if len(signal.types) > 0 {
		conditions = append(conditions, "LOWER(product_type) IN ?")
		args = append(args, setValues(signal.types))
	}
	if len(signal.members) > 0 {
		conditions = append(conditions, "LOWER(member_name) IN ?")
		args = append(args, setValues(signal.members))
	}
	if len(conditions) > 0 {
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	var candidates []models.Product
	if err := query.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to load recommendation candidates: %w", err)
	}

	return candidates, nil
}

// rank orders candidates by preference score descending, newest first on
// ties.
func (s *RecommendationService) rank(candidates []models.Product, signal preferenceSignal) []models.Product {
	type scoredProduct struct {
		product models.Product
		score   float64
	}

	scored := make([]scoredProduct, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, scoredProduct{
			product: candidate,
			score:   s.score(&candidate, signal),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].product.CreatedAt.After(scored[j].product.CreatedAt)
	})

	products := make([]models.Product, 0, len(scored))
	for _, entry := range scored {
		products = append(products, entry.product)
	}

	return products
}

// score sums the preference-match weights with a popularity term. Weights are
// tuning constants from config; favorites count double in popularity.
func (s *RecommendationService) score(product *models.Product, signal preferenceSignal) float64 {
	var score float64

	if contains(signal.groups, product.GroupName) {
		score += s.cfg.GroupWeight
	}
	if contains(signal.types, string(product.ProductType)) {
		score += s.cfg.TypeWeight
	}
	if contains(signal.members, product.MemberName) {
		score += s.cfg.MemberWeight
	}

	score += float64(product.ViewCount+2*product.FavoriteCount) / s.cfg.PopularityDivisor

	return score
}

func (s *RecommendationService) popularProducts(limit int, excludeSeller *uuid.UUID, excludeIDs []uuid.UUID) ([]models.Product, error) {
	if limit < 1 {
		return []models.Product{}, nil
	}

	query := s.db.Preload("Seller").
		Where("is_available = ?", true).
		Order("view_count DESC, favorite_count DESC, created_at DESC").
		Limit(limit)

	if excludeSeller != nil {
		query = query.Where("seller_id <> ?", *excludeSeller)
	}

	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popular products: %w", err)
	}

	return products, nil
}

func setValues(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
