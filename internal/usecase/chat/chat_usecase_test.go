package chat

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/gdugdh24/campus-match/internal/repository/jsonfile"
	"github.com/sirupsen/logrus"
)

type fixture struct {
	uc       *ChatUseCase
	users    repository.UserRepository
	matches  repository.MatchRepository
	messages repository.MessageRepository

	alice, bob, carol int64
	match             *domain.Match
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "database.json"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		users:    jsonfile.NewUserRepository(store),
		matches:  jsonfile.NewMatchRepository(store),
		messages: jsonfile.NewMessageRepository(store),
	}
	f.uc = NewChatUseCase(f.matches, f.messages, f.users, logger)

	ctx := context.Background()
	ids := make([]int64, 0, 3)
	for _, email := range []string{"alice@x.com", "bob@x.com", "carol@x.com"} {
		u := &domain.User{Email: email, Name: email, PasswordHash: "secret"}
		if err := f.users.Create(ctx, u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		ids = append(ids, u.ID)
	}
	f.alice, f.bob, f.carol = ids[0], ids[1], ids[2]

	f.match = &domain.Match{User1ID: f.bob, User2ID: f.alice}
	if err := f.matches.Create(ctx, f.match); err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}
	return f
}

func TestGetMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	details, err := f.uc.GetMatch(ctx, f.alice, f.match.ID)
	if err != nil {
		t.Fatalf("GetMatch() error = %v", err)
	}
	if details.User1Info == nil || details.User1Info.ID != f.bob {
		t.Errorf("Unexpected user1info: %+v", details.User1Info)
	}
	if details.User2Info == nil || details.User2Info.ID != f.alice {
		t.Errorf("Unexpected user2info: %+v", details.User2Info)
	}

	if _, err := f.uc.GetMatch(ctx, f.carol, f.match.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected forbidden for outsider, got %v", err)
	}
	if _, err := f.uc.GetMatch(ctx, f.alice, f.match.ID+1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  int64
		matchID int64
		text    string
		wantErr error
	}{
		{name: "unknown match checked first", userID: f.carol, matchID: f.match.ID + 1, text: "", wantErr: domain.ErrNotFound},
		{name: "outsider checked before text", userID: f.carol, matchID: f.match.ID, text: "", wantErr: domain.ErrForbidden},
		{name: "blank text", userID: f.alice, matchID: f.match.ID, text: "  \n\t", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.uc.SendMessage(ctx, tt.userID, tt.matchID, tt.text); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	msg, err := f.uc.SendMessage(ctx, f.alice, f.match.ID, "  hello  ")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if msg.Text != "  hello  " || msg.SenderID != f.alice || msg.MatchID != f.match.ID {
		t.Errorf("Unexpected message: %+v", msg)
	}

	messages, err := f.uc.GetMessages(ctx, f.bob, f.match.ID)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	if len(messages) != 1 || messages[0].Text != "  hello  " {
		t.Errorf("Unexpected messages: %+v", messages)
	}
}

func TestGetMessagesOrderingAndAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, m := range []*domain.Message{
		{MatchID: f.match.ID, SenderID: f.bob, Text: "third", CreatedAt: base.Add(2 * time.Minute)},
		{MatchID: f.match.ID, SenderID: f.alice, Text: "first", CreatedAt: base},
		{MatchID: f.match.ID, SenderID: f.bob, Text: "second", CreatedAt: base.Add(time.Minute)},
	} {
		if err := f.messages.Create(ctx, m); err != nil {
			t.Fatalf("Failed to create message: %v", err)
		}
	}

	messages, err := f.uc.GetMessages(ctx, f.alice, f.match.ID)
	if err != nil {
		t.Fatalf("GetMessages() error = %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(messages) != len(want) {
		t.Fatalf("Got %d messages, want %d", len(messages), len(want))
	}
	for i, text := range want {
		if messages[i].Text != text {
			t.Errorf("Message %d: got %q, want %q", i, messages[i].Text, text)
		}
	}

	if _, err := f.uc.GetMessages(ctx, f.carol, f.match.ID); !errors.Is(err, domain.ErrNotParticipant) {
		t.Errorf("Expected access denied, got %v", err)
	}
	if _, err := f.uc.GetMessages(ctx, f.alice, f.match.ID+1); !errors.Is(err, domain.ErrMatchNotFound) {
		t.Errorf("Expected match not found, got %v", err)
	}

	matches, err := f.uc.GetUserMatches(ctx, f.alice)
	if err != nil {
		t.Fatalf("GetUserMatches() error = %v", err)
	}
	if len(matches) != 1 || matches[0].LastMessage != "third" {
		t.Errorf("Unexpected summaries: %+v", matches)
	}
}

func TestGetUserMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second := &domain.Match{User1ID: f.alice, User2ID: f.carol}
	if err := f.matches.Create(ctx, second); err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}

	matches, err := f.uc.GetUserMatches(ctx, f.alice)
	if err != nil {
		t.Fatalf("GetUserMatches() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != f.match.ID || matches[1].ID != second.ID {
		t.Errorf("Matches out of creation order: %d, %d", matches[0].ID, matches[1].ID)
	}
	for _, m := range matches {
		if m.LastMessage != "" {
			t.Errorf("Expected empty last message, got %q", m.LastMessage)
		}
		if m.User1Info == nil || m.User2Info == nil {
			t.Errorf("Missing participant info: %+v", m)
		}
	}

	matches, err = f.uc.GetUserMatches(ctx, f.bob)
	if err != nil {
		t.Fatalf("GetUserMatches() error = %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Expected 1 match for bob, got %d", len(matches))
	}
}
