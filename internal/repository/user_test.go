package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/taskdesk/taskdesk-go/internal/model"
)

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound == nil {
		t.Fatal("ErrUserNotFound should not be nil")
	}
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	repo := NewUserRepository(NewMemoryStore())

	_, err := repo.Get(context.Background())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore())

	want := &model.User{Name: "Alex", Email: "alex@x.com", Password: "password1", SignupDate: "19/10/2026"}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if *got != *want {
		t.Errorf("Get() = %+v, want %+v", *got, *want)
	}
}

func TestUserRepository_CorruptRecordIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Set(ctx, KeyUser, "{not json")

	_, err := NewUserRepository(store).Get(ctx)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for corrupt record, got %v", err)
	}
}

func TestUserRepository_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk gone")
	repo := NewUserRepository(failingStore{err: boom})

	_, err := repo.Get(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestSessionRepository_BeginEnd(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewSessionRepository(store)

	if ok, _ := repo.IsAuthenticated(ctx); ok {
		t.Fatal("expected unauthenticated on empty store")
	}

	if err := repo.Begin(ctx, "19/10/2026, 09:30 am"); err != nil {
		t.Fatalf("Begin() unexpected error: %v", err)
	}
	if ok, _ := repo.IsAuthenticated(ctx); !ok {
		t.Error("expected authenticated after Begin")
	}
	if v, _, _ := store.Get(ctx, KeyAuth); v != "true" {
		t.Errorf("auth key = %q, want %q", v, "true")
	}
	if last, _ := repo.LastLogin(ctx); last != "19/10/2026, 09:30 am" {
		t.Errorf("LastLogin() = %q", last)
	}

	if err := repo.End(ctx); err != nil {
		t.Fatalf("End() unexpected error: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyAuth); ok {
		t.Error("auth key should be removed after End")
	}
	if _, ok, _ := store.Get(ctx, KeyLastLogin); ok {
		t.Error("lastLogin key should be removed after End")
	}
}

func TestSessionRepository_OnlyTrueCounts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Set(ctx, KeyAuth, "yes")

	if ok, _ := NewSessionRepository(store).IsAuthenticated(ctx); ok {
		t.Error("expected only the literal \"true\" to count as authenticated")
	}
}

type failingStore struct {
	err error
}

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error         { return f.err }
func (f failingStore) Remove(context.Context, string) error              { return f.err }
