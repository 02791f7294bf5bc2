package handler

import (
	"net/http"

	"github.com/gdugdh24/campus-match/internal/delivery/http/middleware"
	"github.com/gdugdh24/campus-match/internal/usecase/chat"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
	logger      *logrus.Logger
}

func NewChatHandler(chatUseCase *chat.ChatUseCase, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		logger:      logger,
	}
}

// SendMessageRequest represents a chat message
type SendMessageRequest struct {
	Text string `json:"text"`
}

// GetMatch handles GET /match/:id
// @Summary Get match
// @Description Match with both participants' profiles
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} chat.MatchDetails
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /match/{id} [get]
func (h *ChatHandler) GetMatch(c *gin.Context) {
	matchID, ok := pathID(c, "id")
	if !ok {
		return
	}

	match, err := h.chatUseCase.GetMatch(c.Request.Context(), middleware.UserID(c), matchID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetMatches handles GET /matches
// @Summary List matches
// @Description Caller's matches with the latest message
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {array} chat.MatchSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *ChatHandler) GetMatches(c *gin.Context) {
	matches, err := h.chatUseCase.GetUserMatches(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMessages handles GET /chat/:matchId
// @Summary Read chat
// @Description Messages of a match, oldest first
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param matchId path int true "Match ID"
// @Success 200 {array} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chat/{matchId} [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	messages, err := h.chatUseCase.GetMessages(c.Request.Context(), middleware.UserID(c), matchID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /chat/:matchId
// @Summary Send message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param matchId path int true "Match ID"
// @Param request body SendMessageRequest true "Message"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chat/{matchId} [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidBody)
		return
	}

	if _, err := h.chatUseCase.SendMessage(c.Request.Context(), middleware.UserID(c), matchID, req.Text); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "sent"})
}
