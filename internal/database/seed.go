// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mykpoptrade/backend/internal/models"
)

// SeedInitialData creates the default admin account and a starter set of
// group directory entries. The full directory is maintained by the external
// Spotify collector; this seed only keeps a fresh install usable.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@mykpoptrade.com",
			Role:     models.UserRoleAdmin,
			Status:   models.UserStatusActive,
			ProfileData: models.JSONB{
				"display_name": "MyKpopTrade Team",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	seedGroups := []models.KpopGroup{
		{Name: "aespa", Agency: "SM Entertainment", DebutYear: 2020, Members: pq.StringArray{"Karina", "Giselle", "Winter", "Ningning"}},
		{Name: "NewJeans", Agency: "ADOR", DebutYear: 2022, Members: pq.StringArray{"Minji", "Hanni", "Danielle", "Haerin", "Hyein"}},
		{Name: "BTS", Agency: "HYBE", DebutYear: 2013, Members: pq.StringArray{"RM", "Jin", "Suga", "J-Hope", "Jimin", "V", "Jungkook"}},
		{Name: "BLACKPINK", Agency: "YG Entertainment", DebutYear: 2016, Members: pq.StringArray{"Jisoo", "Jennie", "Rosé", "Lisa"}},
		{Name: "TWICE", Agency: "JYP Entertainment", DebutYear: 2015, Members: pq.StringArray{"Nayeon", "Jeongyeon", "Momo", "Sana", "Jihyo", "Mina", "Dahyun", "Chaeyoung", "Tzuyu"}},
		{Name: "Stray Kids", Agency: "JYP Entertainment", DebutYear: 2018, Members: pq.StringArray{"Bang Chan", "Lee Know", "Changbin", "Hyunjin", "Han", "Felix", "Seungmin", "I.N"}},
	}

	for _, group := range seedGroups {
		var count int64
		db.Model(&models.KpopGroup{}).Where("name = ?", group.Name).Count(&count)
		if count == 0 {
			group.IsActive = true
			if err := db.Create(&group).Error; err != nil {
				log.Printf("Warning: Failed to seed group %s: %v", group.Name, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
