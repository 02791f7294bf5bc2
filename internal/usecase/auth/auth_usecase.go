package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is the lifetime of an issued session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

const passwordCost = 10

type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtSecret   string
	tokenTTL    time.Duration
	validate    *validator.Validate
	logger      *logrus.Logger
}

// NewAuthUseCase creates the identity use case. sessionRepo may be nil, in
// which case tokens are verified by signature and expiry only.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *logrus.Logger,
) *AuthUseCase {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		validate:    validator.New(),
		logger:      logger,
	}
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Email     string   `json:"email" validate:"required"`
	Password  string   `json:"password" validate:"required"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Faculty   string   `json:"faculty"`
	Course    string   `json:"course"`
	Interests []string `json:"interests"`
	About     string   `json:"about"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents an issued session
type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register creates a new user with a bcrypt-hashed password.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, domain.ErrMissingCredentials
	}

	// Hashing happens before the repository takes its writer lock.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		Faculty:      req.Faculty,
		Course:       req.Course,
		Interests:    interests,
		About:        req.About,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.WithFields(logrus.Fields{"user_id": user.ID}).Info("user registered")
	return user, nil
}

// Login checks credentials and issues a session token
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, domain.ErrMissingCredentials
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrBadPassword
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResponse{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// createSession signs a JWT and, when sessions are tracked, records its hash
func (uc *AuthUseCase) createSession(ctx context.Context, userID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(uc.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	if uc.sessionRepo != nil {
		if err := uc.sessionRepo.Create(ctx, hashToken(tokenString), userID, uc.tokenTTL); err != nil {
			return "", time.Time{}, err
		}
	}

	return tokenString, expiresAt, nil
}

// VerifyToken verifies JWT token and returns user ID
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	}, jwt.WithJSONNumber(), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	raw, ok := claims["user_id"].(json.Number)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	userID, err := raw.Int64()
	if err != nil {
		return 0, domain.ErrInvalidToken
	}

	if uc.sessionRepo != nil {
		exists, err := uc.sessionRepo.Exists(ctx, hashToken(tokenString))
		if err != nil {
			return 0, fmt.Errorf("failed to verify session: %w", err)
		}
		if !exists {
			return 0, domain.ErrSessionNotFound
		}
	}

	return userID, nil
}

// Logout deletes user session
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	if uc.sessionRepo == nil {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, hashToken(tokenString))
}

// hashToken creates SHA256 hash of token for storage
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
