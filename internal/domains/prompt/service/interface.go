package service

import (
	"context"

	"prompt-catalog/internal/domains/prompt/model"
)

// =====================================================
// PROMPT SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// MUTATIONS
	// ========================================

	// CreatePrompt creates a prompt with its first version and prepends it to the catalog
	CreatePrompt(ctx context.Context, req model.CreatePromptRequest) (*model.Prompt, error)

	// UpdatePromptDetails replaces title, author, description and tags
	UpdatePromptDetails(ctx context.Context, id string, req model.UpdatePromptDetailsRequest) (*model.Prompt, error)

	// AddVersion appends a version and advances the current version
	AddVersion(ctx context.Context, id string, req model.AddVersionRequest) (*model.Prompt, error)

	// AddComment appends a comment
	AddComment(ctx context.Context, id string, req model.AddCommentRequest) (*model.Prompt, error)

	// AddRating appends a rating and recomputes the average
	AddRating(ctx context.Context, id string, req model.AddRatingRequest) (*model.Prompt, error)

	// Seed replaces the whole catalog with the given prompts
	Seed(ctx context.Context, prompts []model.Prompt) (model.Catalog, error)

	// ========================================
	// QUERIES
	// ========================================

	// GetPrompt gets a prompt by ID
	GetPrompt(ctx context.Context, id string) (*model.Prompt, error)

	// ListPrompts returns the current catalog snapshot
	ListPrompts(ctx context.Context) model.Catalog

	// ListVersions returns a prompt's versions, newest first
	ListVersions(ctx context.Context, id string) ([]model.Version, error)

	// GetVersion gets one version by number
	GetVersion(ctx context.Context, id string, number int) (*model.Version, error)

	// GetEditDefaults returns the pre-filled edit form; an empty id means a new prompt
	GetEditDefaults(ctx context.Context, id string, mode model.EditMode) (*model.EditForm, error)

	// GetStatistics returns catalog-wide counters
	GetStatistics(ctx context.Context) *model.CatalogStatistics
}
