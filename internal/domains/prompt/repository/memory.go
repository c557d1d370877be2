package repository

import (
	"context"
	"sync"

	"prompt-catalog/internal/domains/prompt/model"
)

// memoryRepository keeps the catalog as an immutable slice that is swapped on
// every write. Readers holding an older catalog never observe later changes.
type memoryRepository struct {
	mu       sync.RWMutex
	prompts  []model.Prompt
	revision uint64

	listenersMu  sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		prompts:   []model.Prompt{},
		listeners: make(map[int]Listener),
	}
}

func (r *memoryRepository) Snapshot(ctx context.Context) model.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.catalogLocked()
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*model.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, model.ErrPromptNotFound
	}

	prompt := r.prompts[idx].Clone()
	return &prompt, nil
}

func (r *memoryRepository) Insert(ctx context.Context, prompt model.Prompt) (model.Catalog, error) {
	r.mu.Lock()

	if r.indexLocked(prompt.ID) >= 0 {
		r.mu.Unlock()
		return model.Catalog{}, model.ErrDuplicatePrompt
	}

	next := make([]model.Prompt, 0, len(r.prompts)+1)
	next = append(next, prompt.Clone())
	next = append(next, r.prompts...)

	catalog := r.commitLocked(next)
	r.mu.Unlock()

	r.notify(catalog)
	return catalog, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, fn UpdateFunc) (*model.Prompt, error) {
	catalog, updated, err := r.apply(id, fn)
	if err != nil {
		return nil, err
	}

	r.notify(catalog)
	return &updated, nil
}

// apply runs fn under the write lock. A panic inside fn releases the lock
// and leaves the collection as it was.
func (r *memoryRepository) apply(id string, fn UpdateFunc) (model.Catalog, model.Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return model.Catalog{}, model.Prompt{}, model.ErrPromptNotFound
	}

	updated, err := fn(r.prompts[idx].Clone())
	if err != nil {
		return model.Catalog{}, model.Prompt{}, err
	}
	// The identity of a prompt never changes
	updated.ID = id

	next := make([]model.Prompt, len(r.prompts))
	copy(next, r.prompts)
	next[idx] = updated.Clone()

	return r.commitLocked(next), updated.Clone(), nil
}

func (r *memoryRepository) Replace(ctx context.Context, prompts []model.Prompt) (model.Catalog, error) {
	seen := make(map[string]struct{}, len(prompts))
	next := make([]model.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if _, ok := seen[p.ID]; ok {
			return model.Catalog{}, model.ErrDuplicatePrompt
		}
		seen[p.ID] = struct{}{}
		next = append(next, p.Clone())
	}

	r.mu.Lock()
	catalog := r.commitLocked(next)
	r.mu.Unlock()

	r.notify(catalog)
	return catalog, nil
}

func (r *memoryRepository) Subscribe(listener Listener) func() {
	r.listenersMu.Lock()
	defer r.listenersMu.Unlock()

	id := r.nextListener
	r.nextListener++
	r.listeners[id] = listener

	return func() {
		r.listenersMu.Lock()
		defer r.listenersMu.Unlock()
		delete(r.listeners, id)
	}
}

// =====================================================
// HELPERS
// =====================================================

func (r *memoryRepository) indexLocked(id string) int {
	for i := range r.prompts {
		if r.prompts[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryRepository) commitLocked(next []model.Prompt) model.Catalog {
	r.prompts = next
	r.revision++
	return r.catalogLocked()
}

func (r *memoryRepository) catalogLocked() model.Catalog {
	return model.Catalog{Revision: r.revision, Prompts: r.prompts}.Clone()
}

// notify runs outside the write lock so listeners may read the repository.
// Each listener gets its own copy; catalogs can arrive out of revision order
// under concurrent writers, so listeners should compare Revision.
func (r *memoryRepository) notify(catalog model.Catalog) {
	r.listenersMu.Lock()
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.listenersMu.Unlock()

	for _, l := range listeners {
		l(catalog.Clone())
	}
}
