package handler

import (
	"net/http"

	"github.com/gdugdh24/campus-match/internal/delivery/http/middleware"
	"github.com/gdugdh24/campus-match/internal/usecase/feed"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
	logger      *logrus.Logger
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase, logger *logrus.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// ListUsers handles GET /users
// @Summary Discovery feed
// @Description Users the caller has not swiped on yet
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.UserSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *FeedHandler) ListUsers(c *gin.Context) {
	users, err := h.feedUseCase.ListCandidates(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
