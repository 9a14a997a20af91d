package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
	"finwatch/internal/services"
)

// CommentHandler handles comment CRUD requests.
type CommentHandler struct {
	comments services.CommentServicer
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments services.CommentServicer) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CommentRequest represents the create/update comment payload.
type CommentRequest struct {
	Title string `json:"title" binding:"required,max=256"`
	Body  string `json:"body" binding:"required,max=256"`
}

// CommentResponse represents a comment in API responses, including the
// author's display name.
type CommentResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	StockID   *uint     `json:"stock_id"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

func newCommentResponse(comment *models.Comment) CommentResponse {
	createdBy := ""
	if comment.User != nil {
		createdBy = comment.User.Username
	}
	return CommentResponse{
		ID:        comment.ID,
		Title:     comment.Title,
		Body:      comment.Body,
		StockID:   comment.StockID,
		CreatedAt: comment.CreatedAt,
		CreatedBy: createdBy,
	}
}

// GetAll lists all comments
// @Summary     List comments
// @Description All comments, newest first, with author display names
// @Tags        comment
// @Produce     json
// @Success     200 {array} CommentResponse
// @Router      /comment [get]
func (h *CommentHandler) GetAll(c *gin.Context) {
	comments, err := h.comments.GetAll()
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetByID returns a single comment
// @Summary     Get comment by ID
// @Tags        comment
// @Produce     json
// @Param       id path int true "Comment ID"
// @Success     200 {object} CommentResponse
// @Failure     404 {object} ProblemResponse "Comment not found"
// @Router      /comment/{id} [get]
func (h *CommentHandler) GetByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	comment, err := h.comments.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCommentResponse(comment))
}

// Create posts a comment on a stock
// @Summary     Create comment
// @Tags        comment
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       stockId path int            true "Stock ID"
// @Param       request body CommentRequest true "Comment data"
// @Success     200 {object} CommentResponse
// @Failure     404 {object} ProblemResponse "Stock not found"
// @Router      /comment/{stockId} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stockID, err := parsePathID(c, "stockId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	comment, err := h.comments.Create(userID, stockID, req.Title, req.Body)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCommentResponse(comment))
}

// Update rewrites a comment
// @Summary     Update comment
// @Description Only the comment's author may update it
// @Tags        comment
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Comment ID"
// @Param       request body CommentRequest true "Comment data"
// @Success     200 {object} CommentResponse
// @Failure     403 {object} ProblemResponse "Not the author"
// @Failure     404 {object} ProblemResponse "Comment not found"
// @Router      /comment/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	comment, err := h.comments.Update(userID, id, req.Title, req.Body)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCommentResponse(comment))
}

// Delete removes a comment
// @Summary     Delete comment
// @Description Only the comment's author may delete it
// @Tags        comment
// @Security    BearerAuth
// @Param       id path int true "Comment ID"
// @Success     204 "Comment deleted"
// @Failure     403 {object} ProblemResponse "Not the author"
// @Failure     404 {object} ProblemResponse "Comment not found"
// @Router      /comment/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.comments.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
