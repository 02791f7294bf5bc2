package swipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	StatusOK             = "ok"
	StatusMatch          = "match"
	StatusAlreadyMatched = "already_matched"

	enrichTimeout = 30 * time.Second
)

// IcebreakerGenerator produces opening lines for a fresh match.
type IcebreakerGenerator interface {
	GenerateIcebreakers(ctx context.Context, user1Interests, user2Interests []string) ([]string, error)
}

type SwipeUseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	userRepo    repository.UserRepository
	icebreakers IcebreakerGenerator
	validate    *validator.Validate
	logger      *logrus.Logger

	// mu serialises the append, reverse lookup and match creation of a swipe.
	// It also guards closed, so wg.Add never races with Close.
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// NewSwipeUseCase builds the match engine. icebreakers may be nil.
func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
	icebreakers IcebreakerGenerator,
	logger *logrus.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		userRepo:    userRepo,
		icebreakers: icebreakers,
		validate:    validator.New(),
		logger:      logger,
	}
}

// SwipeRequest represents a swipe action. FromUserID is optional and must
// equal the caller when set.
type SwipeRequest struct {
	FromUserID int64
	ToUserID   int64  `validate:"required"`
	SwipeType  string `validate:"required"`
}

// SwipeResult represents swipe result
type SwipeResult struct {
	Status  string `json:"status"`
	MatchID int64  `json:"matchId,omitempty"`
}

// RecordSwipe stores the swipe and, for a like answered by an earlier like
// from the target, makes sure the pair has exactly one match.
func (uc *SwipeUseCase) RecordSwipe(ctx context.Context, callerID int64, req *SwipeRequest) (*SwipeResult, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, domain.ErrInvalidSwipe
	}
	if req.FromUserID != 0 && req.FromUserID != callerID {
		return nil, domain.ErrSwipeOnBehalf
	}
	if req.ToUserID == callerID {
		return nil, domain.ErrCannotSwipeSelf
	}

	if _, err := uc.userRepo.GetByID(ctx, req.ToUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSwipeTargetAbsent
		}
		return nil, fmt.Errorf("failed to get swiped user: %w", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	swipe := &domain.Swipe{
		From: callerID,
		To:   req.ToUserID,
		Type: req.SwipeType,
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		return nil, fmt.Errorf("failed to create swipe: %w", err)
	}

	if !swipe.IsLike() {
		return &SwipeResult{Status: StatusOK}, nil
	}

	reverse, err := uc.swipeRepo.FindLike(ctx, req.ToUserID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check mutual like: %w", err)
	}
	if reverse == nil {
		return &SwipeResult{Status: StatusOK}, nil
	}

	existing, err := uc.matchRepo.GetByUsers(ctx, callerID, req.ToUserID)
	if err == nil {
		return &SwipeResult{Status: StatusAlreadyMatched, MatchID: existing.ID}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	match := &domain.Match{
		User1ID: callerID,
		User2ID: req.ToUserID,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		// Another process got there first.
		if errors.Is(err, domain.ErrMatchExists) {
			existing, getErr := uc.matchRepo.GetByUsers(ctx, callerID, req.ToUserID)
			if getErr != nil {
				return nil, fmt.Errorf("failed to get match: %w", getErr)
			}
			return &SwipeResult{Status: StatusAlreadyMatched, MatchID: existing.ID}, nil
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"match_id": match.ID,
		"user1":    match.User1ID,
		"user2":    match.User2ID,
	}).Info("match created")

	if uc.icebreakers != nil && !uc.closed {
		uc.wg.Add(1)
		go func() {
			defer uc.wg.Done()
			uc.enrichMatch(match.ID, match.User1ID, match.User2ID)
		}()
	}

	return &SwipeResult{Status: StatusMatch, MatchID: match.ID}, nil
}

// enrichMatch attaches generated icebreakers to the match. It runs detached
// from the request, so failures are only logged.
func (uc *SwipeUseCase) enrichMatch(matchID, user1ID, user2ID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
	defer cancel()

	log := uc.logger.WithField("match_id", matchID)

	u1, err := uc.userRepo.GetByID(ctx, user1ID)
	if err != nil {
		log.WithError(err).Warn("icebreakers: failed to load user")
		return
	}
	u2, err := uc.userRepo.GetByID(ctx, user2ID)
	if err != nil {
		log.WithError(err).Warn("icebreakers: failed to load user")
		return
	}

	icebreakers, err := uc.icebreakers.GenerateIcebreakers(ctx, u1.Interests, u2.Interests)
	if err != nil {
		log.WithError(err).Warn("icebreakers: generation failed")
		return
	}
	if len(icebreakers) == 0 {
		return
	}

	if err := uc.matchRepo.UpdateIcebreakers(ctx, matchID, icebreakers); err != nil {
		log.WithError(err).Warn("icebreakers: failed to save")
		return
	}
	log.WithField("count", len(icebreakers)).Debug("icebreakers saved")
}

// Close stops scheduling match enrichment and waits for the in-flight work.
// Swipes recorded afterwards still match but get no icebreakers.
func (uc *SwipeUseCase) Close() {
	uc.mu.Lock()
	uc.closed = true
	uc.mu.Unlock()

	uc.wg.Wait()
}
