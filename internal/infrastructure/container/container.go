package container

import (
	"errors"
	"fmt"

	"github.com/gdugdh24/campus-match/internal/config"
	"github.com/gdugdh24/campus-match/internal/delivery/http"
	"github.com/gdugdh24/campus-match/internal/delivery/http/handler"
	"github.com/gdugdh24/campus-match/internal/delivery/http/middleware"
	"github.com/gdugdh24/campus-match/internal/infrastructure/database"
	"github.com/gdugdh24/campus-match/internal/infrastructure/gemini"
	"github.com/gdugdh24/campus-match/internal/infrastructure/server"
	"github.com/gdugdh24/campus-match/internal/infrastructure/storage"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/gdugdh24/campus-match/internal/repository/jsonfile"
	"github.com/gdugdh24/campus-match/internal/repository/postgres"
	redisrepo "github.com/gdugdh24/campus-match/internal/repository/redis"
	"github.com/gdugdh24/campus-match/internal/usecase/auth"
	"github.com/gdugdh24/campus-match/internal/usecase/chat"
	"github.com/gdugdh24/campus-match/internal/usecase/feed"
	"github.com/gdugdh24/campus-match/internal/usecase/profile"
	"github.com/gdugdh24/campus-match/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  *jsonfile.Store
	DB     *sqlx.DB
	Redis  *redis.Client
	Gemini *gemini.GeminiClient
	Server *server.Server

	swipeUseCase *swipe.SwipeUseCase
}

type repositories struct {
	users    repository.UserRepository
	swipes   repository.SwipeRepository
	matches  repository.MatchRepository
	messages repository.MessageRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	repos, err := c.initRepositories()
	if err != nil {
		c.Close()
		return nil, err
	}

	// Session registry is optional
	var sessionRepo repository.SessionRepository
	if cfg.Redis.Enabled() {
		c.Redis, err = database.NewRedisClient(&cfg.Redis, logger)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(c.Redis)
	}

	// Icebreakers are optional
	var icebreakers swipe.IcebreakerGenerator
	c.Gemini, err = gemini.NewGeminiClient(cfg.GeminiAPIKey, logger)
	switch {
	case err == nil:
		icebreakers = c.Gemini
	case errors.Is(err, gemini.ErrNoAPIKey):
		logger.Info("GEMINI_API_KEY not set, icebreakers disabled")
	default:
		logger.WithError(err).Warn("failed to initialize gemini client, icebreakers disabled")
	}

	files, err := storage.NewLocalStorage(cfg.Files.UploadsDir, http.UploadsPath, logger)
	if err != nil {
		c.Close()
		return nil, err
	}

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		repos.users,
		sessionRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.TokenTTL(),
		logger,
	)

	profileUseCase := profile.NewProfileUseCase(
		repos.users,
		files,
		logger,
	)

	feedUseCase := feed.NewFeedUseCase(
		repos.users,
		repos.swipes,
	)

	c.swipeUseCase = swipe.NewSwipeUseCase(
		repos.swipes,
		repos.matches,
		repos.users,
		icebreakers,
		logger,
	)

	chatUseCase := chat.NewChatUseCase(
		repos.matches,
		repos.messages,
		repos.users,
		logger,
	)

	// Initialize router
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := http.NewRouter(
		handler.NewAuthHandler(authUseCase, logger),
		handler.NewProfileHandler(profileUseCase, logger),
		handler.NewFeedHandler(feedUseCase, logger),
		handler.NewSwipeHandler(c.swipeUseCase, logger),
		handler.NewChatHandler(chatUseCase, logger),
		middleware.NewAuthMiddleware(authUseCase, logger),
		logger,
		cfg.Files.UploadsDir,
		cfg.Files.PublicDir,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)

	return c, nil
}

func (c *Container) initRepositories() (*repositories, error) {
	switch c.Config.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(&c.Config.Database, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return &repositories{
			users:    postgres.NewUserRepository(db),
			swipes:   postgres.NewSwipeRepository(db),
			matches:  postgres.NewMatchRepository(db),
			messages: postgres.NewMessageRepository(db),
		}, nil

	default:
		store, err := jsonfile.Open(c.Config.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		c.Store = store
		c.Logger.WithField("path", store.Path()).Info("using json storage")
		return &repositories{
			users:    jsonfile.NewUserRepository(store),
			swipes:   jsonfile.NewSwipeRepository(store),
			matches:  jsonfile.NewMatchRepository(store),
			messages: jsonfile.NewMessageRepository(store),
		}, nil
	}
}

// Close waits for background work and closes all connections
func (c *Container) Close() error {
	if c.swipeUseCase != nil {
		c.swipeUseCase.Close()
	}

	if c.Gemini != nil {
		c.Gemini.Close()
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.WithError(err).Error("error closing redis")
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
