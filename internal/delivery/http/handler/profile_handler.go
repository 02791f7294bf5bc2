package handler

import (
	"net/http"

	"github.com/gdugdh24/campus-match/internal/delivery/http/middleware"
	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const avatarField = "avatar"

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	logger         *logrus.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// GetMyProfile handles GET /me
// @Summary Get my profile
// @Description Get current user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.UserPublic
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	user, err := h.profileUseCase.GetMyProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMyProfile handles POST /update-profile
// @Summary Update my profile
// @Description Update the given fields of the current user's profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateProfileRequest true "Profile update data"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /update-profile [post]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errInvalidBody)
		return
	}

	if err := h.profileUseCase.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// UploadAvatar handles POST /upload-avatar
// @Summary Upload avatar
// @Description Store an image and make it the current user's avatar
// @Tags profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /upload-avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile(avatarField)
	if err != nil {
		respondError(c, h.logger, domain.ErrEmptyFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Close()

	url, err := h.profileUseCase.UploadAvatar(c.Request.Context(), middleware.UserID(c), fileHeader.Filename, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": url})
}
