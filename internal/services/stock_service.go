package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
	"finwatch/internal/pagination"
)

// stockService handles stock-related business logic.
type stockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db}
}

// Query returns a paginated, filtered, and sorted page of stocks.
func (s *stockService) Query(q StockQuery) (*pagination.PageResponse[models.Stock], error) {
	q.Normalize()

	base := s.db.Model(&models.Stock{})
	if v := strings.TrimSpace(q.Symbol); v != "" {
		base = base.Where("LOWER(symbol) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(q.CompanyName); v != "" {
		base = base.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(q.Industry); v != "" {
		base = base.Where("LOWER(industry) LIKE ?", "%"+strings.ToLower(v)+"%")
	}

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var stocks []models.Stock
	if err := base.Order(stockOrder(q.SortBy, q.IsDescending)).
		Scopes(pagination.Paginate(q.PageRequest)).
		Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(stocks, q.PageNumber, q.PageSize, totalCount)
	return &result, nil
}

// stockOrder maps a requested sort column to an ORDER BY clause. Ties are
// broken by ascending id so pages are stable; unknown columns fall back to id.
func stockOrder(sortBy string, descending bool) string {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "symbol":
		return "symbol " + direction + ", id ASC"
	case "purchase":
		return "purchase " + direction + ", id ASC"
	default:
		return "id ASC"
	}
}

// GetByID returns a stock by its ID.
func (s *stockService) GetByID(id uint) (*models.Stock, error) {
	var stock models.Stock
	if err := s.db.First(&stock, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// GetBySymbol returns a stock by its ticker symbol.
func (s *stockService) GetBySymbol(symbol string) (*models.Stock, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, apperrors.ErrSymbolRequired
	}

	var stock models.Stock
	if err := s.db.Where("LOWER(symbol) = ?", strings.ToLower(symbol)).First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// Create inserts a new stock. Symbol uniqueness is enforced by the database
// constraint; a violation surfaces as DUPLICATE_SYMBOL.
func (s *stockService) Create(symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.ErrSymbolRequired
	}
	if strings.TrimSpace(companyName) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Company name is required")
	}

	stock := &models.Stock{
		Symbol:      symbol,
		CompanyName: strings.TrimSpace(companyName),
		Purchase:    purchase,
		LastDiv:     lastDiv,
		Industry:    strings.TrimSpace(industry),
		MarketCap:   marketCap,
	}

	if err := s.db.Create(stock).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateSymbol
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return stock, nil
}

// Update overwrites all mutable fields of an existing stock.
func (s *stockService) Update(id uint, symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error) {
	stock, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	stock.Symbol = strings.ToUpper(strings.TrimSpace(symbol))
	stock.CompanyName = strings.TrimSpace(companyName)
	stock.Purchase = purchase
	stock.LastDiv = lastDiv
	stock.Industry = strings.TrimSpace(industry)
	stock.MarketCap = marketCap

	if err := s.db.Save(stock).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateSymbol
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return stock, nil
}

// Delete removes a stock by ID.
func (s *stockService) Delete(id uint) error {
	stock, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(stock).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
