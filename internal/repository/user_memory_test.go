package repository

import (
	"context"
	"errors"
	"testing"
)

func TestUserMemory_CreateAndGet(t *testing.T) {
	repo := NewUserMemory()
	ctx := context.Background()

	u, err := repo.Create(ctx, "alice", "hash1", "reporter")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected first id 1, got %d", u.ID)
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if got == nil || got.ID != 1 || got.PasswordHash != "hash1" {
		t.Fatalf("unexpected user: %+v", got)
	}

	// exact, case-sensitive match only
	if got, _ := repo.GetByUsername(ctx, "Alice"); got != nil {
		t.Fatalf("expected case-sensitive miss, got %+v", got)
	}
	if got, _ := repo.GetByID(ctx, 2); got != nil {
		t.Fatalf("expected miss for unknown id, got %+v", got)
	}
}

func TestUserMemory_DuplicateUsername(t *testing.T) {
	repo := NewUserMemory()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", "h1", "reporter"); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, "alice", "h2", "admin"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// state after the failed insert holds exactly one such user
	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 1 || all[0].Username != "alice" || all[0].PasswordHash != "h1" {
		t.Fatalf("unexpected state after duplicate: %+v", all)
	}
}

func TestUserMemory_ListAllAscendingIDs(t *testing.T) {
	repo := NewUserMemory()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := repo.Create(ctx, name, "h", "reporter"); err != nil {
			t.Fatalf("Create(%q) returned error: %v", name, err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
	for i, u := range all {
		if u.ID != i+1 {
			t.Fatalf("expected ascending ids, got %+v", all)
		}
	}
}

func TestUserMemory_UpdatePassword(t *testing.T) {
	repo := NewUserMemory()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "old", "reporter")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	u, err := repo.UpdatePassword(ctx, created.ID, "new")
	if err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
	if u == nil || u.PasswordHash != "new" {
		t.Fatalf("unexpected user after update: %+v", u)
	}

	got, _ := repo.GetByID(ctx, created.ID)
	if got.PasswordHash != "new" {
		t.Fatalf("update not persisted, hash=%q", got.PasswordHash)
	}

	// unknown id is an absent result, not an error
	u, err = repo.UpdatePassword(ctx, 404, "x")
	if err != nil || u != nil {
		t.Fatalf("expected (nil, nil) for unknown id, got (%+v, %v)", u, err)
	}
}
