package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultAvatarExt = ".jpg"

// FileStorage persists uploaded files and returns the public URL.
type FileStorage interface {
	Save(ctx context.Context, name string, content io.Reader) (string, error)
}

type ProfileUseCase struct {
	userRepo repository.UserRepository
	files    FileStorage
	logger   *logrus.Logger
}

func NewProfileUseCase(
	userRepo repository.UserRepository,
	files FileStorage,
	logger *logrus.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo: userRepo,
		files:    files,
		logger:   logger,
	}
}

// UpdateProfileRequest represents profile update request. Absent and null
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Age     *int    `json:"age"`
	Gender  *string `json:"gender"`
	Faculty *string `json:"faculty"`
	Course  *string `json:"course"`
	About   *string `json:"about"`
	// Interests is applied only when it holds a JSON array of strings.
	Interests json.RawMessage `json:"interests"`
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int64) (*domain.UserPublic, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile updates user profile
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) error {
	interests, setInterests := parseInterests(req.Interests)

	err := uc.userRepo.Modify(ctx, userID, func(user *domain.User) error {
		// Update fields if provided
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Age != nil {
			user.Age = *req.Age
		}
		if req.Gender != nil {
			user.Gender = *req.Gender
		}
		if req.Faculty != nil {
			user.Faculty = *req.Faculty
		}
		if req.Course != nil {
			user.Course = *req.Course
		}
		if req.About != nil {
			user.About = *req.About
		}
		if setInterests {
			user.Interests = interests
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func parseInterests(raw json.RawMessage) ([]string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var interests []string
	if err := json.Unmarshal(raw, &interests); err != nil {
		return nil, false
	}
	return interests, true
}

// UploadAvatar stores the file under a fresh name and points the user's avatar at it.
func (uc *ProfileUseCase) UploadAvatar(ctx context.Context, userID int64, originalName string, content io.Reader) (string, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = defaultAvatarExt
	}

	url, err := uc.files.Save(ctx, uuid.NewString()+ext, content)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	if err := uc.SetAvatar(ctx, userID, url); err != nil {
		return "", err
	}

	uc.logger.WithFields(logrus.Fields{"user_id": userID, "avatar": url}).Info("avatar updated")
	return url, nil
}

// SetAvatar overwrites the user's avatar URL
func (uc *ProfileUseCase) SetAvatar(ctx context.Context, userID int64, avatarURL string) error {
	err := uc.userRepo.Modify(ctx, userID, func(user *domain.User) error {
		user.Avatar = &avatarURL
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}
