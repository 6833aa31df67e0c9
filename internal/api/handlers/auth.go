package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/middleware"
	"github.com/jroosing/zoneinv/internal/api/models"
	"github.com/jroosing/zoneinv/internal/auth"
)

// Login godoc
// @Summary Issue access token
// @Description Exchanges username and password for a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} models.TokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /token [post]
func (h *Handler) Login(c *gin.Context) {
	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.Unauthorized(c, auth.ErrInvalidCredentials.Error())
		return
	}
	token, err := h.auth.IssueToken(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.Info("login rejected", "username", form.Username)
		middleware.Unauthorized(c, err.Error())
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} auth.User
// @Failure 401 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /users/me [get]
func (h *Handler) Me(c *gin.Context, user *auth.User) {
	c.JSON(http.StatusOK, user)
}
