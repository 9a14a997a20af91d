package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/services"
)

// PortfolioHandler handles portfolio requests.
type PortfolioHandler struct {
	portfolio services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolio services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// List returns the user's holdings
// @Summary     List portfolio
// @Description All stocks held by the authenticated user
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} StockResponse
// @Failure     401 {object} ProblemResponse "Unauthorized"
// @Router      /portfolio [get]
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stocks, err := h.portfolio.List(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newStockResponses(stocks))
}

// Add puts a stock into the portfolio
// @Summary     Add holding
// @Tags        portfolio
// @Security    BearerAuth
// @Param       symbol query string true "Ticker symbol"
// @Success     200 "Holding added"
// @Failure     404 {object} ProblemResponse "Stock not found"
// @Failure     409 {object} ProblemResponse "Already held"
// @Router      /portfolio [post]
func (h *PortfolioHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.ErrSymbolRequired)
		return
	}

	if err := h.portfolio.Add(userID, symbol); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Remove takes a stock out of the portfolio
// @Summary     Remove holding
// @Tags        portfolio
// @Security    BearerAuth
// @Param       symbol query string true "Ticker symbol"
// @Success     204 "Holding removed"
// @Failure     404 {object} ProblemResponse "Stock or holding not found"
// @Router      /portfolio [delete]
func (h *PortfolioHandler) Remove(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.ErrSymbolRequired)
		return
	}

	if err := h.portfolio.Remove(userID, symbol); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
