package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
	"github.com/lshepard/theaiwhotaughtme/internal/models"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

type storyRepository interface {
	Insert(ctx context.Context, story *models.Story) (int64, error)
	ListAll(ctx context.Context) ([]models.Story, error)
	GetByID(ctx context.Context, id int64) (*models.Story, error)
}

// StoryService handles story submissions and reads.
//
// One canonical required-field policy applies to both submission variants:
// name and story text are required, and at least one of email or phone must
// be present, with format checks on whichever is given.
type StoryService struct {
	repo      storyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStoryService constructs the service.
func NewStoryService(repo storyRepository, validate *validator.Validate, logger *zap.Logger) *StoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoryService{repo: repo, validator: validate, logger: logger}
}

// Submit stores a multi-step-form submission. The aiUsage answer is the
// story text.
func (s *StoryService) Submit(ctx context.Context, req dto.SubmitStoryRequest) (*models.Story, error) {
	// Trim before checking required fields so whitespace-only values fail.
	req.Name = strings.TrimSpace(req.Name)
	req.AIUsage = strings.TrimSpace(req.AIUsage)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing required fields: name and AI usage are required")
	}
	if err := validateContact(req.Email, req.Phone); err != nil {
		return nil, err
	}

	story := &models.Story{
		Story:  req.AIUsage,
		Name:   req.Name,
		Email:  optional(req.Email),
		Phone:  optional(req.Phone),
		School: optional(req.School),
		Grades: optional(req.Grades),
		Role:   optional(req.Role),
	}
	return s.insert(ctx, story)
}

// SubmitLegacy stores a single-page-form submission.
func (s *StoryService) SubmitLegacy(ctx context.Context, req dto.LegacySubmitStoryRequest) (*models.Story, error) {
	req.Story = strings.TrimSpace(req.Story)
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "story and name are required")
	}
	if err := validateContact(req.Email, req.Phone); err != nil {
		return nil, err
	}

	story := &models.Story{
		Story:  req.Story,
		Name:   req.Name,
		Email:  optional(req.Email),
		Phone:  optional(req.Phone),
		School: optional(req.School),
	}
	return s.insert(ctx, story)
}

func (s *StoryService) insert(ctx context.Context, story *models.Story) (*models.Story, error) {
	if _, err := s.repo.Insert(ctx, story); err != nil {
		s.logger.Error("story insert failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save your submission, please try again")
	}
	return story, nil
}

// List returns every story, newest first.
func (s *StoryService) List(ctx context.Context) ([]models.Story, error) {
	stories, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("story list failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch stories")
	}
	return stories, nil
}

// GetByID fetches one story.
func (s *StoryService) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "story not found")
		}
		s.logger.Error("story fetch failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return story, nil
}
