package models

// Comment is a user-authored note attached to a stock. The author is fixed
// at creation; only the author may edit or delete it.
type Comment struct {
	Base
	Title   string `gorm:"size:256;not null" json:"title"`
	Body    string `gorm:"size:256;not null" json:"body"`
	StockID *uint  `gorm:"index" json:"stock_id"`
	Stock   *Stock `gorm:"foreignKey:StockID" json:"-"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	User    *User  `gorm:"foreignKey:UserID" json:"-"`
}
