package identity

import (
	"context"
	"encoding/json"
	"testing"

	isLib "github.com/matryer/is"

	"github.com/devyanshh69/feedback-box-backend/internal/storage"
)

func TestAssignSequence(t *testing.T) {
	is := isLib.New(t)
	ctx := context.Background()
	store := storage.NewMemoryStore()
	allocator := NewAllocator(store)

	// Fresh counter: first email gets Anonymous123.
	name, err := allocator.Assign(ctx, "a@x.com")
	is.NoErr(err)
	is.Equal(name, "Anonymous123")

	// Same email again: same pseudonym, counter untouched.
	again, err := allocator.Assign(ctx, "a@x.com")
	is.NoErr(err)
	is.Equal(again, "Anonymous123")

	// New email advances the counter by exactly one.
	name2, err := allocator.Assign(ctx, "b@x.com")
	is.NoErr(err)
	is.Equal(name2, "Anonymous124")

	raw, err := store.Get(ctx, "anonCounter")
	is.NoErr(err)
	var counter int
	is.NoErr(json.Unmarshal(raw, &counter))
	is.Equal(counter, 124)
}

func TestAssignIsCaseSensitive(t *testing.T) {
	is := isLib.New(t)
	ctx := context.Background()
	allocator := NewAllocator(storage.NewMemoryStore())

	lower, err := allocator.Assign(ctx, "student@x.com")
	is.NoErr(err)
	upper, err := allocator.Assign(ctx, "Student@x.com")
	is.NoErr(err)

	// The raw email is the mapping key; differently-cased emails are
	// distinct students.
	is.True(lower != upper)
}

func TestAssignSurvivesRestart(t *testing.T) {
	is := isLib.New(t)
	ctx := context.Background()
	store := storage.NewMemoryStore()

	first := NewAllocator(store)
	name, err := first.Assign(ctx, "a@x.com")
	is.NoErr(err)

	// A new allocator over the same backend reuses the mapping and
	// continues the counter where it left off.
	second := NewAllocator(store)
	same, err := second.Assign(ctx, "a@x.com")
	is.NoErr(err)
	is.Equal(same, name)

	next, err := second.Assign(ctx, "c@x.com")
	is.NoErr(err)
	is.Equal(next, "Anonymous124")
}

func TestAssignRequiresEmail(t *testing.T) {
	is := isLib.New(t)
	allocator := NewAllocator(storage.NewMemoryStore())

	_, err := allocator.Assign(context.Background(), "")
	is.True(err != nil)
}
