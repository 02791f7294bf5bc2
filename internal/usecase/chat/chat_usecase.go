package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/sirupsen/logrus"
)

type ChatUseCase struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	logger      *logrus.Logger
}

func NewChatUseCase(
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	logger *logrus.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// MatchDetails is a match together with both participants.
type MatchDetails struct {
	*domain.Match
	User1Info *domain.UserPublic `json:"user1info"`
	User2Info *domain.UserPublic `json:"user2info"`
}

// MatchSummary is a row of the caller's match list.
type MatchSummary struct {
	MatchDetails
	LastMessage string `json:"lastMessage"`
}

// GetMatch returns the match if the user takes part in it
func (uc *ChatUseCase) GetMatch(ctx context.Context, userID, matchID int64) (*MatchDetails, error) {
	match, err := uc.participantMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}
	return uc.details(ctx, match)
}

// GetMessages returns the conversation of a match, oldest first
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, matchID int64) ([]*domain.Message, error) {
	if _, err := uc.participantMatch(ctx, userID, matchID); err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

// SendMessage appends a message from userID to the match
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, matchID int64, text string) (*domain.Message, error) {
	if _, err := uc.participantMatch(ctx, userID, matchID); err != nil {
		return nil, err
	}

	// Whitespace-only text is rejected, but the text is stored as sent.
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyMessage
	}

	message := &domain.Message{
		MatchID:  matchID,
		SenderID: userID,
		Text:     text,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// GetUserMatches lists the user's matches in creation order with the latest message text.
func (uc *ChatUseCase) GetUserMatches(ctx context.Context, userID int64) ([]*MatchSummary, error) {
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	summaries := make([]*MatchSummary, 0, len(matches))
	for _, match := range matches {
		details, err := uc.details(ctx, match)
		if err != nil {
			return nil, err
		}

		last, err := uc.messageRepo.GetLastByMatch(ctx, match.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get last message: %w", err)
		}

		summary := &MatchSummary{MatchDetails: *details}
		if last != nil {
			summary.LastMessage = last.Text
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (uc *ChatUseCase) participantMatch(ctx context.Context, userID, matchID int64) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}
	return match, nil
}

// details resolves both participants. A participant that no longer exists
// is reported as null rather than failing the whole match.
func (uc *ChatUseCase) details(ctx context.Context, match *domain.Match) (*MatchDetails, error) {
	user1, err := uc.publicUser(ctx, match.User1ID)
	if err != nil {
		return nil, err
	}
	user2, err := uc.publicUser(ctx, match.User2ID)
	if err != nil {
		return nil, err
	}
	return &MatchDetails{Match: match, User1Info: user1, User2Info: user2}, nil
}

func (uc *ChatUseCase) publicUser(ctx context.Context, userID int64) (*domain.UserPublic, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WithField("user_id", userID).Warn("match references a missing user")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Public(), nil
}
