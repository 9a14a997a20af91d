package models

// Stock represents a listed company that users can browse, comment on,
// and add to their portfolios.
type Stock struct {
	Base
	Symbol      string    `gorm:"uniqueIndex;size:10;not null" json:"symbol"`
	CompanyName string    `gorm:"size:100;not null" json:"company_name"`
	Purchase    float64   `gorm:"not null" json:"purchase"`
	LastDiv     float64   `json:"last_div"`
	Industry    string    `gorm:"size:64" json:"industry"`
	MarketCap   int64     `json:"market_cap"`
	Comments    []Comment `gorm:"foreignKey:StockID" json:"comments,omitempty"`
}
