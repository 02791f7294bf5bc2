package handler

import (
	"net/http"

	"github.com/gdugdh24/campus-match/internal/delivery/http/middleware"
	"github.com/gdugdh24/campus-match/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
	logger       *logrus.Logger
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase, logger *logrus.Logger) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
		logger:       logger,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	FromUserID idValue `json:"fromUserId"`
	ToUserID   idValue `json:"toUserId"`
	SwipeType  string  `json:"swipeType"`
}

// CreateSwipe handles POST /swipe
// @Summary Swipe
// @Description Record a swipe; a like answering an earlier like creates a match
// @Tags swipe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SwipeRequest true "Swipe"
// @Success 200 {object} swipe.SwipeResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipe [post]
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidBody)
		return
	}

	result, err := h.swipeUseCase.RecordSwipe(c.Request.Context(), middleware.UserID(c), &swipe.SwipeRequest{
		FromUserID: int64(req.FromUserID),
		ToUserID:   int64(req.ToUserID),
		SwipeType:  req.SwipeType,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
