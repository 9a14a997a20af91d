package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
)

const (
	commentMinLen = 8
	commentMaxLen = 256
)

// commentService handles comment-related business logic.
type commentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentServicer.
func NewCommentService(db *gorm.DB) CommentServicer {
	return &commentService{db: db}
}

// GetAll returns all comments, newest first, with the author preloaded.
func (s *commentService) GetAll() ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Preload("User").Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return comments, nil
}

// GetByID returns a comment by ID with the author preloaded.
func (s *commentService) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &comment, nil
}

// Create adds a comment by the given user on an existing stock.
func (s *commentService) Create(userID, stockID uint, title, body string) (*models.Comment, error) {
	title, body, err := normalizeCommentInput(title, body)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Stock{}).Where("id = ?", stockID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrStockNotFound
	}

	comment := &models.Comment{
		Title:   title,
		Body:    body,
		StockID: &stockID,
		UserID:  userID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetByID(comment.ID)
}

// Update rewrites the title and body of a comment. Only the author may update;
// a non-author gets FORBIDDEN, which is distinct from COMMENT_NOT_FOUND.
func (s *commentService) Update(userID, commentID uint, title, body string) (*models.Comment, error) {
	title, body, err := normalizeCommentInput(title, body)
	if err != nil {
		return nil, err
	}

	comment, err := s.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	comment.Title = title
	comment.Body = body
	if err := s.db.Save(comment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return comment, nil
}

// Delete removes a comment. Only the author may delete.
func (s *commentService) Delete(userID, commentID uint) error {
	comment, err := s.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(comment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizeCommentInput trims the title and body and enforces length bounds.
func normalizeCommentInput(title, body string) (string, string, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if len(title) < commentMinLen || len(title) > commentMaxLen {
		return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Title must be between 8 and 256 characters")
	}
	if len(body) < commentMinLen || len(body) > commentMaxLen {
		return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Body must be between 8 and 256 characters")
	}
	return title, body, nil
}
