package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
	"github.com/lshepard/theaiwhotaughtme/internal/models"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

type storyRepoStub struct {
	stories []models.Story
	err     error
}

func (s *storyRepoStub) Insert(ctx context.Context, story *models.Story) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	story.ID = int64(len(s.stories) + 1)
	story.CreatedAt = time.Now()
	s.stories = append(s.stories, *story)
	return story.ID, nil
}

func (s *storyRepoStub) ListAll(ctx context.Context) ([]models.Story, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Newest-first, matching the repository's ORDER BY.
	reversed := make([]models.Story, 0, len(s.stories))
	for i := len(s.stories) - 1; i >= 0; i-- {
		reversed = append(reversed, s.stories[i])
	}
	return reversed, nil
}

func (s *storyRepoStub) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.stories {
		if s.stories[i].ID == id {
			return &s.stories[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestStorySubmit(t *testing.T) {
	repo := &storyRepoStub{}
	svc := NewStoryService(repo, nil, nil)

	story, err := svc.Submit(context.Background(), dto.SubmitStoryRequest{
		Name:    "Jane Doe",
		Email:   "jane@school.edu",
		School:  "Lincoln HS",
		AIUsage: "Uses AI for lesson planning",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), story.ID)
	assert.Equal(t, "Uses AI for lesson planning", story.Story)

	got, err := svc.GetByID(context.Background(), story.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	require.NotNil(t, got.School)
	assert.Equal(t, "Lincoln HS", *got.School)
}

func TestStorySubmitMissingNameNoWrite(t *testing.T) {
	repo := &storyRepoStub{}
	svc := NewStoryService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), dto.SubmitStoryRequest{
		Email:   "jane@school.edu",
		AIUsage: "something",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.stories)
}

func TestStorySubmitWhitespaceOnlyFieldsNoWrite(t *testing.T) {
	repo := &storyRepoStub{}
	svc := NewStoryService(repo, nil, nil)

	cases := []dto.SubmitStoryRequest{
		{Name: "   ", Email: "jane@school.edu", AIUsage: "   "},
		{Name: "\t\n", Email: "jane@school.edu", AIUsage: "something"},
		{Name: "Jane Doe", Email: "jane@school.edu", AIUsage: "  \n "},
	}
	for _, req := range cases {
		_, err := svc.Submit(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.Empty(t, repo.stories)
}

func TestStorySubmitNoContactNoWrite(t *testing.T) {
	repo := &storyRepoStub{}
	svc := NewStoryService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), dto.SubmitStoryRequest{
		Name:    "Jane Doe",
		AIUsage: "something",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.stories)
}

func TestStorySubmitInvalidEmail(t *testing.T) {
	svc := NewStoryService(&storyRepoStub{}, nil, nil)
	_, err := svc.Submit(context.Background(), dto.SubmitStoryRequest{
		Name:    "Jane Doe",
		Email:   "not-an-email",
		AIUsage: "something",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStorySubmitLegacyPhoneOnly(t *testing.T) {
	repo := &storyRepoStub{}
	svc := NewStoryService(repo, nil, nil)

	story, err := svc.SubmitLegacy(context.Background(), dto.LegacySubmitStoryRequest{
		Story: "My students use AI to revise essays",
		Name:  "Sam Lee",
		Phone: "555-010-2345",
	})
	require.NoError(t, err)
	assert.Nil(t, story.Email)
	require.NotNil(t, story.Phone)
	assert.Equal(t, "555-010-2345", *story.Phone)
}

func TestStorySubmitLegacyMissingStory(t *testing.T) {
	svc := NewStoryService(&storyRepoStub{}, nil, nil)
	_, err := svc.SubmitLegacy(context.Background(), dto.LegacySubmitStoryRequest{
		Name:  "Sam Lee",
		Email: "sam@school.edu",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStorySubmitLegacyWhitespaceStoryNoWrite(t *testing.T) {
	repo := &storyRepoStub{}
	svc := NewStoryService(repo, nil, nil)

	_, err := svc.SubmitLegacy(context.Background(), dto.LegacySubmitStoryRequest{
		Story: "   ",
		Name:  "Sam Lee",
		Email: "sam@school.edu",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.stories)
}

func TestStoryListNewestFirst(t *testing.T) {
	repo := &storyRepoStub{}
	svc := NewStoryService(repo, nil, nil)

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Submit(context.Background(), dto.SubmitStoryRequest{
			Name:    name,
			Email:   "x@example.com",
			AIUsage: "story",
		})
		require.NoError(t, err)
	}

	stories, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 3)
	assert.Equal(t, "C", stories[0].Name)
	assert.Equal(t, "A", stories[2].Name)
}

func TestStoryGetByIDNotFound(t *testing.T) {
	svc := NewStoryService(&storyRepoStub{}, nil, nil)
	_, err := svc.GetByID(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
