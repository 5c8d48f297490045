// internal/models/user.go
package models

import (
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username        string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email           string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string         `json:"-" gorm:"size:255;not null"`
	Role            UserRole       `json:"role" gorm:"type:varchar(20);default:'member'"`
	Status          UserStatus     `json:"status" gorm:"type:varchar(20);default:'active'"`
	AvatarURL       string         `json:"avatar_url" gorm:"size:512"`
	Bio             string         `json:"bio" gorm:"type:text"`
	ProfileData     JSONB          `json:"profile_data" gorm:"type:jsonb"`
	PreferredGroups pq.StringArray `json:"preferred_groups" gorm:"type:text[]"`
	Language        string         `json:"language" gorm:"size:10;default:'en'"`
	Rating          float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReviewCount     int64          `json:"review_count" gorm:"default:0"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	LastLoginAt     *time.Time     `json:"last_login_at"`

	// Relationships
	Products  []Product     `json:"products,omitempty" gorm:"foreignKey:SellerID"`
	Favorites []Favorite    `json:"favorites,omitempty" gorm:"foreignKey:UserID"`
	Follows   []GroupFollow `json:"follows,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
