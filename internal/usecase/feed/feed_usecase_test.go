package feed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository/jsonfile"
)

func TestListCandidates(t *testing.T) {
	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "database.json"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	users := jsonfile.NewUserRepository(store)
	swipes := jsonfile.NewSwipeRepository(store)
	uc := NewFeedUseCase(users, swipes)
	ctx := context.Background()

	var ids []int64
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"} {
		u := &domain.User{Email: email, Name: email, Age: 20, Interests: []string{"x"}}
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		ids = append(ids, u.ID)
	}
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	got, err := uc.ListCandidates(ctx, a)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	assertIDs(t, got, b, c, d)

	// Any swipe type excludes the target; swipes by others do not matter.
	for _, s := range []*domain.Swipe{
		{From: a, To: b, Type: "dislike"},
		{From: a, To: d, Type: domain.SwipeLike},
		{From: c, To: a, Type: domain.SwipeLike},
	} {
		if err := swipes.Create(ctx, s); err != nil {
			t.Fatalf("Failed to create swipe: %v", err)
		}
	}

	got, err = uc.ListCandidates(ctx, a)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	assertIDs(t, got, c)
	if got[0].Email != "c@x.com" || got[0].Age != 20 {
		t.Errorf("Unexpected summary: %+v", got[0])
	}

	got, err = uc.ListCandidates(ctx, c)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	assertIDs(t, got, b, d)
}

func TestListCandidatesEmpty(t *testing.T) {
	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "database.json"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	uc := NewFeedUseCase(jsonfile.NewUserRepository(store), jsonfile.NewSwipeRepository(store))

	got, err := uc.ListCandidates(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", got)
	}
}

func assertIDs(t *testing.T, got []domain.UserSummary, want ...int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Got %d candidates, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("Candidate %d: got id %d, want %d", i, got[i].ID, want[i])
		}
	}
}
