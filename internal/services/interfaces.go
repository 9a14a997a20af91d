package services

import (
	"finwatch/internal/models"
	"finwatch/internal/pagination"
)

// StockQuery holds the filter, sort, and pagination parameters for listing
// stocks. Filters are optional case-insensitive substring matches; SortBy is
// matched against a whitelist and anything else falls back to id ordering.
type StockQuery struct {
	Symbol       string `form:"symbol"`
	CompanyName  string `form:"companyName"`
	Industry     string `form:"industry"`
	SortBy       string `form:"sortBy"`
	IsDescending bool   `form:"isDescending"`
	pagination.PageRequest
}

// StockServicer defines the contract for stock-related business logic.
type StockServicer interface {
	Query(q StockQuery) (*pagination.PageResponse[models.Stock], error)
	GetByID(id uint) (*models.Stock, error)
	GetBySymbol(symbol string) (*models.Stock, error)
	Create(symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error)
	Update(id uint, symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error)
	Delete(id uint) error
}

// CommentServicer defines the contract for comment-related business logic.
// Update and Delete are restricted to the comment's author.
type CommentServicer interface {
	GetAll() ([]models.Comment, error)
	GetByID(id uint) (*models.Comment, error)
	Create(userID, stockID uint, title, body string) (*models.Comment, error)
	Update(userID, commentID uint, title, body string) (*models.Comment, error)
	Delete(userID, commentID uint) error
}

// PortfolioServicer defines the contract for portfolio-related business logic.
type PortfolioServicer interface {
	List(userID uint) ([]models.Stock, error)
	Add(userID uint, symbol string) error
	Remove(userID uint, symbol string) error
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// TokenGenerator mints a signed access token for a user.
type TokenGenerator func(user *models.User) (string, error)

// RefreshTokenServicer defines the contract for refresh-token lifecycle
// management: issuance, rotation, and revocation.
type RefreshTokenServicer interface {
	Issue(user *models.User, ip string) (accessToken string, refresh *models.RefreshToken, err error)
	Rotate(token, ip string) (accessToken string, refresh *models.RefreshToken, err error)
	Revoke(token, ip string) error
}
