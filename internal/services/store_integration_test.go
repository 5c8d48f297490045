// internal/services/store_integration_test.go
package services

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mykpoptrade/backend/internal/models"
)

// StoreSuite runs the store-backed invariants against a real Postgres.
// It is skipped unless TEST_DATABASE_URL points at a disposable database.
type StoreSuite struct {
	suite.Suite
	db     *gorm.DB
	seller models.User
	buyer  models.User
}

func TestStoreSuite(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	suite.Run(t, &StoreSuite{db: db})
}

func (s *StoreSuite) SetupSuite() {
	s.Require().NoError(s.db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error)
	s.Require().NoError(s.db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Favorite{},
		&models.SearchHistory{},
	))
}

func (s *StoreSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(
		"TRUNCATE search_histories, product_favorites, products, users CASCADE",
	).Error)

	s.seller = s.createUser("seller", "seller@test.local")
	s.buyer = s.createUser("buyer", "buyer@test.local")
}

func (s *StoreSuite) createUser(username, email string) models.User {
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
	}
	s.Require().NoError(s.db.Create(&user).Error)
	return user
}

func (s *StoreSuite) createProduct(title string, price float64, mutate func(*models.Product)) models.Product {
	product := models.Product{
		SellerID:    s.seller.ID,
		Title:       title,
		Description: "test listing",
		Price:       price,
		Currency:    models.CurrencyEUR,
		Condition:   models.ConditionGood,
		ProductType: models.ProductTypeAlbum,
		IsAvailable: true,
	}
	if mutate != nil {
		mutate(&product)
	}
	s.Require().NoError(s.db.Create(&product).Error)
	return product
}

func (s *StoreSuite) TestSearchHistoryUpsertIdempotent() {
	svc := NewSearchHistoryService(s.db)

	svc.Record(s.buyer.ID, "  Aespa  ", models.JSONB{"sortBy": "newest"}, 3)
	svc.Record(s.buyer.ID, "aespa", models.JSONB{"sortBy": "price_asc"}, 5)

	entries, err := svc.List(s.buyer.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("aespa", entries[0].Query)
	s.Equal(int64(2), entries[0].SearchCount)
	s.Equal(int64(5), entries[0].ResultCount)
}

func (s *StoreSuite) TestSearchHistoryDeleteScopedToOwner() {
	svc := NewSearchHistoryService(s.db)
	svc.Record(s.buyer.ID, "newjeans", nil, 2)

	entries, err := svc.List(s.buyer.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	entryID := entries[0].ID

	err = svc.Delete(s.seller.ID, entryID)
	s.Require().EqualError(err, "search history entry not found")

	entries, err = svc.List(s.buyer.ID, 10)
	s.Require().NoError(err)
	s.Len(entries, 1, "foreign delete must leave the entry intact")

	s.Require().NoError(svc.Delete(s.buyer.ID, entryID))
	entries, err = svc.List(s.buyer.ID, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreSuite) favoriteCount(productID uuid.UUID) int64 {
	var product models.Product
	s.Require().NoError(s.db.First(&product, productID).Error)
	return product.FavoriteCount
}

func (s *StoreSuite) TestFavoriteCounterNeverNegative() {
	svc := NewFavoriteService(s.db)
	product := s.createProduct("ditto album", 20, nil)

	err := svc.RemoveFavorite(s.buyer.ID, product.ID)
	s.Require().EqualError(err, "favorite not found")
	s.Equal(int64(0), s.favoriteCount(product.ID))

	s.Require().NoError(svc.AddFavorite(s.buyer.ID, product.ID))
	s.Equal(int64(1), s.favoriteCount(product.ID))

	favorited, err := svc.IsFavorited(s.buyer.ID, product.ID)
	s.Require().NoError(err)
	s.True(favorited)

	// Re-adding is a no-op and must not double count.
	s.Require().NoError(svc.AddFavorite(s.buyer.ID, product.ID))
	s.Equal(int64(1), s.favoriteCount(product.ID))

	s.Require().NoError(svc.RemoveFavorite(s.buyer.ID, product.ID))
	s.Equal(int64(0), s.favoriteCount(product.ID))

	favorited, err = svc.IsFavorited(s.buyer.ID, product.ID)
	s.Require().NoError(err)
	s.False(favorited)
}

func (s *StoreSuite) TestAdvancedSearchFilterAndPriceOrdering() {
	s.createProduct("aespa Savage album", 30, nil)
	s.createProduct("aespa Armageddon album", 15, nil)
	s.createProduct("aespa Drama album", 45, nil)
	s.createProduct("IVE photocard", 25, func(p *models.Product) {
		p.ProductType = models.ProductTypePhotocard
	})
	s.createProduct("unrelated poster", 12, func(p *models.Product) {
		p.ProductType = models.ProductTypePoster
	})

	svc := NewSearchService(s.db, NewSearchHistoryService(s.db))
	req := &AdvancedSearchRequest{
		Query:      "aespa",
		PriceRange: &PriceRange{Min: OptionalFloat{Value: floatPtr(10)}, Max: OptionalFloat{Value: floatPtr(50)}},
		SortBy:     string(models.SortPriceAsc),
	}

	products, total, err := svc.AdvancedSearch(req, nil)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(products, 3)
	s.Equal([]float64{15, 30, 45}, []float64{products[0].Price, products[1].Price, products[2].Price})
	for _, p := range products {
		s.True(p.IsAvailable)
		s.Contains(p.Title, "aespa")
	}
}

func (s *StoreSuite) TestRecommendationsWithoutSignalFallBackToPopularity() {
	mostViewed := s.createProduct("popular by views", 20, func(p *models.Product) {
		p.ViewCount = 10
	})
	mostFavorited := s.createProduct("popular by favorites", 20, func(p *models.Product) {
		p.FavoriteCount = 6
	})

	svc := NewRecommendationService(s.db, testRecommendConfig())

	result, err := svc.GetRecommendations(&s.buyer.ID, 10)
	s.Require().NoError(err)
	s.False(result.IsPersonalized, "no favorites and no preferences must not read as personalized")
	s.Require().Len(result.Products, 2)
	s.Equal(mostViewed.ID, result.Products[0].ID, "views rank ahead of the favorite-weighted score")
	s.Equal(mostFavorited.ID, result.Products[1].ID)
}
