package models

import "time"

// PortfolioItem is a single holding: one user holds one stock. The composite
// primary key doubles as the uniqueness constraint on (user, stock).
type PortfolioItem struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	StockID   uint      `gorm:"primaryKey" json:"stock_id"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Stock     *Stock    `gorm:"foreignKey:StockID" json:"-"`
}
