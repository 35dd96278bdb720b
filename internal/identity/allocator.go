// Package identity assigns stable pseudonyms to student emails.
//
// The first time an email is seen it consumes the next value of a shared
// persisted counter and is mapped to "Anonymous<n>" forever after. Mappings
// are never deleted or rewritten, so a student keeps the same display name
// across sessions without the system ever storing who they are beyond the
// email key itself.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/devyanshh69/feedback-box-backend/internal/storage"
)

const (
	// counterKey holds the shared monotonic counter.
	counterKey = "anonCounter"
	// mappingKeyPrefix prefixes one key per seen email.
	mappingKeyPrefix = "studentNameByEmail:"

	// counterSeed is the counter value before any pseudonym has been
	// issued; the first student becomes Anonymous123.
	counterSeed = 122
)

// Allocator issues pseudonyms backed by a storage.Store.
type Allocator struct {
	mu    sync.Mutex
	store storage.Store
}

func NewAllocator(store storage.Store) *Allocator {
	return &Allocator{store: store}
}

// Assign returns the pseudonym for email, allocating one on first sight.
// The raw email is the mapping key; callers that need a normalized form
// (the derived user ID) lowercase separately.
func (a *Allocator) Assign(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New("email is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	mappingKey := mappingKeyPrefix + email
	if raw, err := a.store.Get(ctx, mappingKey); err == nil {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil && name != "" {
			return name, nil
		}
		// Corrupt mapping value; fall through and reallocate.
	}

	counter, err := a.counter(ctx)
	if err != nil {
		return "", err
	}

	next := counter + 1
	rawNext, _ := json.Marshal(next)
	if err := a.store.Set(ctx, counterKey, rawNext); err != nil {
		return "", err
	}

	name := fmt.Sprintf("Anonymous%d", next)
	rawName, _ := json.Marshal(name)
	if err := a.store.Set(ctx, mappingKey, rawName); err != nil {
		return "", err
	}

	return name, nil
}

// counter reads the persisted counter, seeding it on first use. A corrupt
// stored value also falls back to the seed.
func (a *Allocator) counter(ctx context.Context) (int, error) {
	raw, err := a.store.Get(ctx, counterKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return counterSeed, nil
		}
		return 0, err
	}

	var counter int
	if err := json.Unmarshal(raw, &counter); err != nil || counter < counterSeed {
		return counterSeed, nil
	}
	return counter, nil
}
