package repository

import (
	"context"

	"prompt-catalog/internal/domains/prompt/model"
)

// =====================================================
// PROMPT REPOSITORY INTERFACE
// =====================================================

// UpdateFunc receives a private copy of the stored prompt and returns its replacement.
// Returning an error discards the change; the stored prompt is left untouched.
type UpdateFunc func(current model.Prompt) (model.Prompt, error)

// Listener is called with the new catalog after every committed write.
type Listener func(catalog model.Catalog)

type Repository interface {
	// Snapshot returns the whole collection, newest prompt first
	Snapshot(ctx context.Context) model.Catalog

	// GetByID gets a prompt by ID
	GetByID(ctx context.Context, id string) (*model.Prompt, error)

	// Insert prepends a new prompt
	Insert(ctx context.Context, prompt model.Prompt) (model.Catalog, error)

	// Update replaces one prompt atomically
	Update(ctx context.Context, id string, fn UpdateFunc) (*model.Prompt, error)

	// Replace swaps the whole collection, used for seeding
	Replace(ctx context.Context, prompts []model.Prompt) (model.Catalog, error)

	// Subscribe registers a listener; the returned func removes it
	Subscribe(listener Listener) func()
}
