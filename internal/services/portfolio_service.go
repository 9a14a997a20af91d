package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
)

// portfolioService handles portfolio-related business logic.
type portfolioService struct {
	db     *gorm.DB
	stocks StockServicer
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, stocks StockServicer) PortfolioServicer {
	return &portfolioService{db: db, stocks: stocks}
}

// List returns all stocks held by the user.
func (s *portfolioService) List(userID uint) ([]models.Stock, error) {
	var stocks []models.Stock
	err := s.db.Model(&models.Stock{}).
		Joins("JOIN portfolio_items ON portfolio_items.stock_id = stocks.id").
		Where("portfolio_items.user_id = ?", userID).
		Order("stocks.symbol ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return stocks, nil
}

// Add puts the stock with the given symbol into the user's portfolio.
// Adding a stock that is already held fails with ALREADY_HELD. The pre-check
// races with concurrent adds, so the composite-key constraint violation is
// remapped to the same error.
func (s *portfolioService) Add(userID uint, symbol string) error {
	stock, err := s.stocks.GetBySymbol(symbol)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.PortfolioItem{}).
		Where("user_id = ? AND stock_id = ?", userID, stock.ID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrAlreadyHeld
	}

	item := &models.PortfolioItem{UserID: userID, StockID: stock.ID}
	if err := s.db.Create(item).Error; err != nil {
		if isUniqueConstraintError(err) {
			return apperrors.ErrAlreadyHeld
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Remove takes the stock with the given symbol out of the user's portfolio.
func (s *portfolioService) Remove(userID uint, symbol string) error {
	stock, err := s.stocks.GetBySymbol(symbol)
	if err != nil {
		return err
	}

	var item models.PortfolioItem
	err = s.db.Where("user_id = ? AND stock_id = ?", userID, stock.ID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPortfolioNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Where("user_id = ? AND stock_id = ?", userID, stock.ID).
		Delete(&models.PortfolioItem{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
