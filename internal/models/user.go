package models

// User represents a registered account holder.
type User struct {
	Base
	Username      string          `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email         string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password      string          `gorm:"not null" json:"-"`
	Role          string          `gorm:"size:32;default:user" json:"role"`
	Comments      []Comment       `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	Portfolio     []PortfolioItem `gorm:"foreignKey:UserID" json:"portfolio,omitempty"`
	RefreshTokens []RefreshToken  `gorm:"foreignKey:UserID" json:"-"`
}
