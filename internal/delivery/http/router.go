package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdugdh24/campus-match/internal/delivery/http/handler"
	"github.com/gdugdh24/campus-match/internal/delivery/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadsPath is the URL prefix avatars are served under.
const UploadsPath = "/uploads"

// maxUploadMemory bounds the multipart form kept in memory; the rest spills to disk.
const maxUploadMemory = 8 << 20

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	feedHandler    *handler.FeedHandler
	swipeHandler   *handler.SwipeHandler
	chatHandler    *handler.ChatHandler
	authMiddleware *middleware.AuthMiddleware
	logger         *logrus.Logger
	uploadsDir     string
	publicDir      string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *logrus.Logger,
	uploadsDir string,
	publicDir string,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		feedHandler:    feedHandler,
		swipeHandler:   swipeHandler,
		chatHandler:    chatHandler,
		authMiddleware: authMiddleware,
		logger:         logger,
		uploadsDir:     uploadsDir,
		publicDir:      publicDir,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(r.logger),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:   []string{middleware.RequestIDHeader},
		}),
	)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.Static(UploadsPath, r.uploadsDir)

	api := router.Group("/api")
	{
		// Public routes
		api.POST("/register", r.authHandler.Register)
		api.POST("/login", r.authHandler.Login)

		// Protected routes
		protected := api.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)

			// Profile routes
			protected.GET("/me", r.profileHandler.GetMyProfile)
			protected.POST("/update-profile", r.profileHandler.UpdateMyProfile)
			protected.POST("/upload-avatar", r.profileHandler.UploadAvatar)

			// Discovery and swipes
			protected.GET("/users", r.feedHandler.ListUsers)
			protected.POST("/swipe", r.swipeHandler.CreateSwipe)

			// Matches and chat
			protected.GET("/matches", r.chatHandler.GetMatches)
			protected.GET("/match/:id", r.chatHandler.GetMatch)
			protected.GET("/chat/:matchId", r.chatHandler.GetMessages)
			protected.POST("/chat/:matchId", r.chatHandler.SendMessage)
		}
	}

	router.NoRoute(r.serveFrontend)

	return router
}

// serveFrontend serves files from the public directory for unknown non-API
// paths, falling back to its index.html.
func (r *Router) serveFrontend(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "not found"})
		return
	}

	root, err := filepath.Abs(r.publicDir)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "not found"})
		return
	}

	file := filepath.Join(root, filepath.FromSlash(filepath.Clean("/"+path)))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	index := filepath.Join(root, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}

	c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "not found"})
}
