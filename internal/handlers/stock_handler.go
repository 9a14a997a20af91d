package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
	"finwatch/internal/pagination"
	"finwatch/internal/services"
)

// StockHandler handles stock CRUD and query requests.
type StockHandler struct {
	stocks services.StockServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stocks services.StockServicer) *StockHandler {
	return &StockHandler{stocks: stocks}
}

// StockRequest represents the create/update stock payload.
type StockRequest struct {
	Symbol      string  `json:"symbol" binding:"required,ticker"`
	CompanyName string  `json:"company_name" binding:"required,max=100"`
	Purchase    float64 `json:"purchase" binding:"required,gt=0"`
	LastDiv     float64 `json:"last_div" binding:"gte=0"`
	Industry    string  `json:"industry" binding:"required,max=64"`
	MarketCap   int64   `json:"market_cap" binding:"gte=0"`
}

// StockResponse represents a stock in API responses.
type StockResponse struct {
	ID          uint    `json:"id"`
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	Purchase    float64 `json:"purchase"`
	LastDiv     float64 `json:"last_div"`
	Industry    string  `json:"industry"`
	MarketCap   int64   `json:"market_cap"`
}

func newStockResponse(stock *models.Stock) StockResponse {
	return StockResponse{
		ID:          stock.ID,
		Symbol:      stock.Symbol,
		CompanyName: stock.CompanyName,
		Purchase:    stock.Purchase,
		LastDiv:     stock.LastDiv,
		Industry:    stock.Industry,
		MarketCap:   stock.MarketCap,
	}
}

func newStockResponses(stocks []models.Stock) []StockResponse {
	out := make([]StockResponse, 0, len(stocks))
	for i := range stocks {
		out = append(out, newStockResponse(&stocks[i]))
	}
	return out
}

// Query lists stocks
// @Summary     List stocks
// @Description Paginated stock list with optional filters and sorting
// @Tags        stock
// @Produce     json
// @Param       symbol       query string false "Substring filter on symbol"
// @Param       companyName  query string false "Substring filter on company name"
// @Param       industry     query string false "Substring filter on industry"
// @Param       sortBy       query string false "Sort column (symbol or purchase)"
// @Param       isDescending query bool   false "Sort direction"
// @Param       pageNumber   query int    false "Page number (default 1)"
// @Param       pageSize     query int    false "Page size (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[StockResponse]
// @Failure     400 {object} ProblemResponse "Invalid input"
// @Router      /stock [get]
func (h *StockHandler) Query(c *gin.Context) {
	var q services.StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	page, err := h.stocks.Query(q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.PageResponse[StockResponse]{
		Items:      newStockResponses(page.Items),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	})
}

// GetByID returns a single stock
// @Summary     Get stock by ID
// @Tags        stock
// @Produce     json
// @Param       id path int true "Stock ID"
// @Success     200 {object} StockResponse
// @Failure     404 {object} ProblemResponse "Stock not found"
// @Router      /stock/{id} [get]
func (h *StockHandler) GetByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	stock, err := h.stocks.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStockResponse(stock))
}

// GetBySymbol returns a single stock by ticker symbol
// @Summary     Get stock by symbol
// @Tags        stock
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} StockResponse
// @Failure     404 {object} ProblemResponse "Stock not found"
// @Router      /stock/symbol/{symbol} [get]
func (h *StockHandler) GetBySymbol(c *gin.Context) {
	stock, err := h.stocks.GetBySymbol(c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStockResponse(stock))
}

// Create inserts a new stock
// @Summary     Create stock
// @Tags        stock
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body StockRequest true "Stock data"
// @Success     200 {object} StockResponse
// @Failure     400 {object} ProblemResponse "Invalid input"
// @Failure     409 {object} ProblemResponse "Duplicate symbol"
// @Router      /stock [post]
func (h *StockHandler) Create(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.stocks.Create(req.Symbol, req.CompanyName, req.Purchase, req.LastDiv, req.Industry, req.MarketCap)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStockResponse(stock))
}

// Update overwrites a stock
// @Summary     Update stock
// @Tags        stock
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int          true "Stock ID"
// @Param       request body StockRequest true "Stock data"
// @Success     200 {object} StockResponse
// @Failure     404 {object} ProblemResponse "Stock not found"
// @Failure     409 {object} ProblemResponse "Duplicate symbol"
// @Router      /stock/{id} [put]
func (h *StockHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.stocks.Update(id, req.Symbol, req.CompanyName, req.Purchase, req.LastDiv, req.Industry, req.MarketCap)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStockResponse(stock))
}

// Delete removes a stock
// @Summary     Delete stock
// @Tags        stock
// @Security    BearerAuth
// @Param       id path int true "Stock ID"
// @Success     204 "Stock deleted"
// @Failure     404 {object} ProblemResponse "Stock not found"
// @Router      /stock/{id} [delete]
func (h *StockHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.stocks.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
