package swipe

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/gdugdh24/campus-match/internal/repository/jsonfile"
	"github.com/sirupsen/logrus"
)

type fixture struct {
	uc      *SwipeUseCase
	users   repository.UserRepository
	swipes  repository.SwipeRepository
	matches repository.MatchRepository
	store   *jsonfile.Store
}

type stubIcebreakers struct {
	lines []string
	err   error

	mu    sync.Mutex
	calls int
}

func (s *stubIcebreakers) GenerateIcebreakers(ctx context.Context, user1Interests, user2Interests []string) ([]string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.lines, s.err
}

func newFixture(t *testing.T, icebreakers IcebreakerGenerator) *fixture {
	t.Helper()

	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "database.json"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		users:   jsonfile.NewUserRepository(store),
		swipes:  jsonfile.NewSwipeRepository(store),
		matches: jsonfile.NewMatchRepository(store),
		store:   store,
	}
	f.uc = NewSwipeUseCase(f.swipes, f.matches, f.users, icebreakers, logger)
	t.Cleanup(f.uc.Close)
	return f
}

func (f *fixture) createUser(t *testing.T, email string) int64 {
	t.Helper()
	u := &domain.User{Email: email, Name: email, Interests: []string{"music"}}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u.ID
}

func (f *fixture) swipe(t *testing.T, from, to int64, swipeType string) *SwipeResult {
	t.Helper()
	res, err := f.uc.RecordSwipe(context.Background(), from, &SwipeRequest{ToUserID: to, SwipeType: swipeType})
	if err != nil {
		t.Fatalf("RecordSwipe(%d -> %d, %s) error = %v", from, to, swipeType, err)
	}
	return res
}

func (f *fixture) documentCounts(t *testing.T) (swipes, matches int) {
	t.Helper()
	err := f.store.View(func(doc *jsonfile.Document) error {
		swipes, matches = len(doc.Swipes), len(doc.Matches)
		return nil
	})
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	return swipes, matches
}

func TestMutualLikeCreatesMatch(t *testing.T) {
	f := newFixture(t, nil)
	a := f.createUser(t, "a@x.com")
	b := f.createUser(t, "b@x.com")

	if res := f.swipe(t, a, b, "like"); res.Status != StatusOK || res.MatchID != 0 {
		t.Errorf("First like: got %+v", res)
	}

	res := f.swipe(t, b, a, "like")
	if res.Status != StatusMatch || res.MatchID == 0 {
		t.Fatalf("Reciprocal like: got %+v", res)
	}

	match, err := f.matches.GetByID(context.Background(), res.MatchID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if match.User1ID != b || match.User2ID != a {
		t.Errorf("Expected user1=%d user2=%d, got %+v", b, a, match)
	}

	// Matched is terminal: further likes in either direction are idempotent.
	for _, pair := range [][2]int64{{a, b}, {b, a}} {
		again := f.swipe(t, pair[0], pair[1], "like")
		if again.Status != StatusAlreadyMatched || again.MatchID != res.MatchID {
			t.Errorf("Repeat like %v: got %+v", pair, again)
		}
	}

	swipes, matches := f.documentCounts(t)
	if swipes != 4 || matches != 1 {
		t.Errorf("Expected 4 swipes and 1 match, got %d and %d", swipes, matches)
	}
}

func TestNonLikeNeverMatches(t *testing.T) {
	f := newFixture(t, nil)
	a := f.createUser(t, "a@x.com")
	b := f.createUser(t, "b@x.com")

	if res := f.swipe(t, a, b, "dislike"); res.Status != StatusOK {
		t.Errorf("Dislike: got %+v", res)
	}
	if res := f.swipe(t, b, a, "like"); res.Status != StatusOK {
		t.Errorf("Like answering a dislike: got %+v", res)
	}
	if res := f.swipe(t, a, b, "superlike"); res.Status != StatusOK {
		t.Errorf("Unknown type: got %+v", res)
	}

	swipes, matches := f.documentCounts(t)
	if swipes != 3 || matches != 0 {
		t.Errorf("Expected 3 swipes and no match, got %d and %d", swipes, matches)
	}
}

func TestDuplicateLikesAreRecorded(t *testing.T) {
	f := newFixture(t, nil)
	a := f.createUser(t, "a@x.com")
	b := f.createUser(t, "b@x.com")

	for i := 0; i < 3; i++ {
		if res := f.swipe(t, a, b, "like"); res.Status != StatusOK {
			t.Errorf("Like %d: got %+v", i, res)
		}
	}

	swipes, _ := f.documentCounts(t)
	if swipes != 3 {
		t.Errorf("Expected 3 swipes, got %d", swipes)
	}
}

func TestRecordSwipeRejects(t *testing.T) {
	f := newFixture(t, nil)
	a := f.createUser(t, "a@x.com")
	b := f.createUser(t, "b@x.com")

	tests := []struct {
		name    string
		req     *SwipeRequest
		wantErr error
		kind    error
	}{
		{
			name:    "missing target",
			req:     &SwipeRequest{SwipeType: "like"},
			wantErr: domain.ErrInvalidSwipe,
			kind:    domain.ErrInvalidInput,
		},
		{
			name:    "missing type",
			req:     &SwipeRequest{ToUserID: b},
			wantErr: domain.ErrInvalidSwipe,
			kind:    domain.ErrInvalidInput,
		},
		{
			name:    "self swipe",
			req:     &SwipeRequest{ToUserID: a, SwipeType: "like"},
			wantErr: domain.ErrCannotSwipeSelf,
			kind:    domain.ErrInvalidInput,
		},
		{
			name:    "unknown target",
			req:     &SwipeRequest{ToUserID: b + 1000, SwipeType: "like"},
			wantErr: domain.ErrSwipeTargetAbsent,
			kind:    domain.ErrNotFound,
		},
		{
			name:    "on behalf of another user",
			req:     &SwipeRequest{FromUserID: b, ToUserID: b, SwipeType: "like"},
			wantErr: domain.ErrSwipeOnBehalf,
			kind:    domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.RecordSwipe(context.Background(), a, tt.req)
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, tt.kind) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	swipes, _ := f.documentCounts(t)
	if swipes != 0 {
		t.Errorf("Rejected swipes must not be stored, got %d", swipes)
	}

	// An explicit matching FromUserID is accepted.
	res, err := f.uc.RecordSwipe(context.Background(), a, &SwipeRequest{FromUserID: a, ToUserID: b, SwipeType: "like"})
	if err != nil || res.Status != StatusOK {
		t.Errorf("Expected ok, got %+v, %v", res, err)
	}
}

func TestConcurrentReciprocalLikesCreateOneMatch(t *testing.T) {
	f := newFixture(t, nil)

	const pairs = 5
	type pair struct{ a, b int64 }
	ps := make([]pair, pairs)
	for i := range ps {
		ps[i] = pair{
			a: f.createUser(t, "a"+strings.Repeat("x", i)+"@x.com"),
			b: f.createUser(t, "b"+strings.Repeat("x", i)+"@x.com"),
		}
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[pair][]*SwipeResult)
	)
	for _, p := range ps {
		for _, dir := range [][2]int64{{p.a, p.b}, {p.b, p.a}} {
			wg.Add(1)
			go func(p pair, from, to int64) {
				defer wg.Done()
				res, err := f.uc.RecordSwipe(context.Background(), from, &SwipeRequest{ToUserID: to, SwipeType: "like"})
				if err != nil {
					t.Errorf("RecordSwipe() error = %v", err)
					return
				}
				mu.Lock()
				results[p] = append(results[p], res)
				mu.Unlock()
			}(p, dir[0], dir[1])
		}
	}
	wg.Wait()

	for _, p := range ps {
		var ok, matched int
		for _, res := range results[p] {
			switch res.Status {
			case StatusOK:
				ok++
			case StatusMatch:
				matched++
			}
		}
		if ok != 1 || matched != 1 {
			t.Errorf("Pair %v: expected one ok and one match, got %+v", p, results[p])
		}
	}

	swipes, matches := f.documentCounts(t)
	if swipes != 2*pairs || matches != pairs {
		t.Errorf("Expected %d swipes and %d matches, got %d and %d", 2*pairs, pairs, swipes, matches)
	}
}

func TestMatchEnrichment(t *testing.T) {
	t.Run("icebreakers saved", func(t *testing.T) {
		gen := &stubIcebreakers{lines: []string{"hi", "hello", "hey"}}
		f := newFixture(t, gen)
		a := f.createUser(t, "a@x.com")
		b := f.createUser(t, "b@x.com")

		f.swipe(t, a, b, "like")
		res := f.swipe(t, b, a, "like")
		f.uc.Close()

		match, err := f.matches.GetByID(context.Background(), res.MatchID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if strings.Join(match.Icebreakers, "|") != "hi|hello|hey" {
			t.Errorf("Unexpected icebreakers: %v", match.Icebreakers)
		}

		f.swipe(t, a, b, "like")
		f.uc.Close()
		if gen.calls != 1 {
			t.Errorf("Expected one generation, got %d", gen.calls)
		}
	})

	t.Run("generation failure ignored", func(t *testing.T) {
		f := newFixture(t, &stubIcebreakers{err: errors.New("quota exceeded")})
		a := f.createUser(t, "a@x.com")
		b := f.createUser(t, "b@x.com")

		f.swipe(t, a, b, "like")
		res := f.swipe(t, b, a, "like")
		f.uc.Close()

		if res.Status != StatusMatch {
			t.Errorf("Expected match, got %+v", res)
		}
		match, err := f.matches.GetByID(context.Background(), res.MatchID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if len(match.Icebreakers) != 0 {
			t.Errorf("Expected no icebreakers, got %v", match.Icebreakers)
		}
	})
}

func TestCloseStopsEnrichment(t *testing.T) {
	gen := &stubIcebreakers{lines: []string{"hi"}}
	f := newFixture(t, gen)
	a := f.createUser(t, "a@x.com")
	b := f.createUser(t, "b@x.com")

	f.swipe(t, a, b, "like")
	f.uc.Close()

	res := f.swipe(t, b, a, "like")
	if res.Status != StatusMatch {
		t.Fatalf("Expected match after Close, got %+v", res)
	}
	f.uc.Close()

	if gen.calls != 0 {
		t.Errorf("Expected no generation after Close, got %d", gen.calls)
	}
	match, err := f.matches.GetByID(context.Background(), res.MatchID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(match.Icebreakers) != 0 {
		t.Errorf("Expected no icebreakers, got %v", match.Icebreakers)
	}
}

func TestCloseDuringSwipes(t *testing.T) {
	f := newFixture(t, &stubIcebreakers{lines: []string{"hi"}})

	const pairs = 5
	ids := make([][2]int64, pairs)
	for i := range ids {
		ids[i][0] = f.createUser(t, "l"+strings.Repeat("x", i)+"@x.com")
		ids[i][1] = f.createUser(t, "r"+strings.Repeat("x", i)+"@x.com")
		f.swipe(t, ids[i][0], ids[i][1], "like")
	}

	var wg sync.WaitGroup
	for _, pair := range ids {
		wg.Add(1)
		go func(from, to int64) {
			defer wg.Done()
			if _, err := f.uc.RecordSwipe(context.Background(), from, &SwipeRequest{ToUserID: to, SwipeType: "like"}); err != nil {
				t.Errorf("RecordSwipe() error = %v", err)
			}
		}(pair[1], pair[0])
	}
	f.uc.Close()
	wg.Wait()
	f.uc.Close()

	if _, matches := f.documentCounts(t); matches != pairs {
		t.Errorf("Expected %d matches, got %d", pairs, matches)
	}
}
