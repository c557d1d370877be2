package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"prompt-catalog/internal/domains/prompt/model"
	"prompt-catalog/internal/domains/prompt/repository"
	"prompt-catalog/internal/domains/prompt/selector"
	"prompt-catalog/pkg/metrics"
)

// Operation labels
const (
	opCreatePrompt  = "create_prompt"
	opUpdateDetails = "update_details"
	opAddVersion    = "add_version"
	opAddComment    = "add_comment"
	opAddRating     = "add_rating"
	opSeed          = "seed"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type promptService struct {
	repo  repository.Repository
	now   func() time.Time
	newID func() string
}

func NewPromptService(repo repository.Repository) ServiceInterface {
	return newPromptService(repo, time.Now, uuid.NewString)
}

func newPromptService(repo repository.Repository, now func() time.Time, newID func() string) *promptService {
	return &promptService{
		repo:  repo,
		now:   now,
		newID: newID,
	}
}

// =====================================================
// CREATE PROMPT
// =====================================================

func (s *promptService) CreatePrompt(
	ctx context.Context,
	req model.CreatePromptRequest,
) (*model.Prompt, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		metrics.RecordMutation(opCreatePrompt, metrics.StatusInvalidInput)
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Build the first version
	description := req.VersionDescription
	if description == "" {
		description = model.DefaultVersionDescription
	}

	now := s.now()
	prompt := model.Prompt{
		ID:            s.newID(),
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Tags:          model.NormalizeTags(req.Tags),
		AverageRating: 0,
		Ratings:       []model.Rating{},
		Comments:      []model.Comment{},
		Versions: []model.Version{{
			ID:            s.newID(),
			Content:       req.Content,
			Description:   description,
			VersionNumber: model.FirstVersionNumber,
			Timestamp:     now,
		}},
		CurrentVersion: model.FirstVersionNumber,
	}

	// Step 3: Prepend to the catalog
	catalog, err := s.repo.Insert(ctx, prompt)
	if err != nil {
		metrics.RecordMutation(opCreatePrompt, statusOf(err))
		if errors.Is(err, model.ErrDuplicatePrompt) {
			return nil, model.NewDuplicatePromptError(prompt.ID)
		}
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	metrics.RecordMutation(opCreatePrompt, metrics.StatusSuccess)
	log.Debug().
		Str("prompt_id", prompt.ID).
		Uint64("revision", catalog.Revision).
		Msg("Prompt created")

	created := prompt.Clone()
	return &created, nil
}

// =====================================================
// UPDATE DETAILS
// =====================================================

func (s *promptService) UpdatePromptDetails(
	ctx context.Context,
	id string,
	req model.UpdatePromptDetailsRequest,
) (*model.Prompt, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordMutation(opUpdateDetails, metrics.StatusInvalidInput)
		return nil, model.NewInvalidInputError(err)
	}

	tags := model.NormalizeTags(req.Tags)
	return s.mutate(ctx, opUpdateDetails, id, func(p model.Prompt) (model.Prompt, error) {
		p.Title = req.Title
		p.Author = req.Author
		p.Description = req.Description
		p.Tags = tags
		return p, nil
	})
}

// =====================================================
// ADD VERSION
// =====================================================

func (s *promptService) AddVersion(
	ctx context.Context,
	id string,
	req model.AddVersionRequest,
) (*model.Prompt, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordMutation(opAddVersion, metrics.StatusInvalidInput)
		return nil, model.NewInvalidInputError(err)
	}

	versionID := s.newID()
	now := s.now()
	return s.mutate(ctx, opAddVersion, id, func(p model.Prompt) (model.Prompt, error) {
		next := p.CurrentVersion + 1
		p.Versions = append(p.Versions, model.Version{
			ID:            versionID,
			Content:       req.Content,
			Description:   req.VersionDescription,
			VersionNumber: next,
			Timestamp:     now,
		})
		p.CurrentVersion = next
		return p, nil
	})
}

// =====================================================
// ADD COMMENT
// =====================================================

func (s *promptService) AddComment(
	ctx context.Context,
	id string,
	req model.AddCommentRequest,
) (*model.Prompt, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordMutation(opAddComment, metrics.StatusInvalidInput)
		return nil, model.NewInvalidInputError(err)
	}

	comment := model.Comment{
		ID:        s.newID(),
		Author:    req.Author,
		Content:   req.Content,
		Timestamp: s.now(),
	}
	return s.mutate(ctx, opAddComment, id, func(p model.Prompt) (model.Prompt, error) {
		p.Comments = append(p.Comments, comment)
		return p, nil
	})
}

// =====================================================
// ADD RATING
// =====================================================

func (s *promptService) AddRating(
	ctx context.Context,
	id string,
	req model.AddRatingRequest,
) (*model.Prompt, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordMutation(opAddRating, metrics.StatusInvalidInput)
		return nil, model.NewInvalidInputError(err)
	}

	// No user identity yet: every rating gets a synthetic rater id
	rating := model.Rating{
		UserID: model.RatingUserPrefix + s.newID(),
		Score:  req.Score,
	}
	prompt, err := s.mutate(ctx, opAddRating, id, func(p model.Prompt) (model.Prompt, error) {
		p.Ratings = append(p.Ratings, rating)
		p.AverageRating = model.AverageRating(p.Ratings)
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordRatingScore(rating.Score)
	return prompt, nil
}

// =====================================================
// SEED
// =====================================================

func (s *promptService) Seed(ctx context.Context, prompts []model.Prompt) (model.Catalog, error) {
	for i, p := range prompts {
		if err := p.CheckInvariants(); err != nil {
			metrics.RecordMutation(opSeed, metrics.StatusInvalidInput)
			return model.Catalog{}, model.NewInvalidInputError(fmt.Errorf("prompt %d (%s): %w", i, p.ID, err))
		}
	}

	catalog, err := s.repo.Replace(ctx, prompts)
	if err != nil {
		metrics.RecordMutation(opSeed, statusOf(err))
		if errors.Is(err, model.ErrDuplicatePrompt) {
			return model.Catalog{}, model.NewInvalidInputError(err)
		}
		return model.Catalog{}, fmt.Errorf("failed to seed catalog: %w", err)
	}

	metrics.RecordMutation(opSeed, metrics.StatusSuccess)
	log.Info().
		Int("prompts", len(catalog.Prompts)).
		Uint64("revision", catalog.Revision).
		Msg("Catalog seeded")

	return catalog, nil
}

// =====================================================
// QUERIES
// =====================================================

func (s *promptService) GetPrompt(ctx context.Context, id string) (*model.Prompt, error) {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(id, err)
	}
	return prompt, nil
}

func (s *promptService) ListPrompts(ctx context.Context) model.Catalog {
	return s.repo.Snapshot(ctx)
}

func (s *promptService) ListVersions(ctx context.Context, id string) ([]model.Version, error) {
	prompt, err := s.GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}
	return selector.History(*prompt), nil
}

func (s *promptService) GetVersion(ctx context.Context, id string, number int) (*model.Version, error) {
	prompt, err := s.GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}

	version, ok := prompt.FindVersion(number)
	if !ok {
		return nil, model.NewVersionNotFoundError(id, number)
	}
	return &version, nil
}

func (s *promptService) GetEditDefaults(
	ctx context.Context,
	id string,
	mode model.EditMode,
) (*model.EditForm, error) {
	if !mode.Valid() {
		return nil, model.NewInvalidInputError(fmt.Errorf("unknown edit mode %q", mode))
	}

	if mode == model.EditModeCreate {
		form := model.EditDefaults(nil, mode)
		return &form, nil
	}
	if id == "" {
		return nil, model.NewInvalidInputError(errors.New("prompt id is required for this mode"))
	}

	prompt, err := s.GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}

	form := model.EditDefaults(prompt, mode)
	return &form, nil
}

func (s *promptService) GetStatistics(ctx context.Context) *model.CatalogStatistics {
	catalog := s.repo.Snapshot(ctx)

	stats := &model.CatalogStatistics{
		Revision:     catalog.Revision,
		TotalPrompts: len(catalog.Prompts),
	}
	for _, p := range catalog.Prompts {
		stats.TotalVersions += len(p.Versions)
		stats.TotalRatings += len(p.Ratings)
		stats.TotalComments += len(p.Comments)
	}
	return stats
}

// =====================================================
// HELPERS
// =====================================================

// mutate applies fn to one prompt atomically and records the outcome.
func (s *promptService) mutate(
	ctx context.Context,
	operation string,
	id string,
	fn repository.UpdateFunc,
) (*model.Prompt, error) {
	prompt, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		metrics.RecordMutation(operation, statusOf(err))
		return nil, s.mapRepoError(id, err)
	}

	metrics.RecordMutation(operation, metrics.StatusSuccess)
	log.Debug().
		Str("prompt_id", id).
		Str("operation", operation).
		Int("current_version", prompt.CurrentVersion).
		Msg("Prompt updated")

	return prompt, nil
}

func (s *promptService) mapRepoError(id string, err error) error {
	if errors.Is(err, model.ErrPromptNotFound) {
		return model.NewPromptNotFoundError(id)
	}
	return fmt.Errorf("failed to access prompt %s: %w", id, err)
}

func statusOf(err error) string {
	switch {
	case errors.Is(err, model.ErrPromptNotFound):
		return metrics.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrDuplicatePrompt):
		return metrics.StatusInvalidInput
	default:
		return metrics.StatusError
	}
}
