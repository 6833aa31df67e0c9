package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/models"
	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/jroosing/zoneinv/internal/inventory"
)

// CreateEnvironment godoc
// @Summary Add an environment
// @Tags environments
// @Accept json
// @Produce json
// @Param zone path string true "Zone name"
// @Param If-Match header string false "Expected zone revision"
// @Param environment body inventory.Environment true "Environment"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone}/environments/ [post]
func (h *Handler) CreateEnvironment(c *gin.Context, user *auth.User) {
	zone := c.Param("zone")
	var env inventory.Environment
	if err := c.ShouldBindJSON(&env); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.inventory.CreateEnvironment(c.Request.Context(), zone, ifMatch(c), env); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("environment created", "zone", zone, "env", env.Name, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "environment " + env.Name + " added to zone " + zone})
}

// UpdateEnvironment godoc
// @Summary Replace an environment
// @Description Replaces the environment including its full server list
// @Tags environments
// @Accept json
// @Produce json
// @Param zone path string true "Zone name"
// @Param env path string true "Environment name"
// @Param If-Match header string false "Expected zone revision"
// @Param environment body inventory.Environment true "Environment"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone}/environments/{env} [put]
func (h *Handler) UpdateEnvironment(c *gin.Context, user *auth.User) {
	zone, name := c.Param("zone"), c.Param("env")
	var env inventory.Environment
	if err := c.ShouldBindJSON(&env); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.inventory.UpdateEnvironment(c.Request.Context(), zone, name, ifMatch(c), env); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("environment updated", "zone", zone, "env", name, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "environment " + name + " updated in zone " + zone})
}

// DeleteEnvironment godoc
// @Summary Remove an environment
// @Tags environments
// @Produce json
// @Param zone path string true "Zone name"
// @Param env path string true "Environment name"
// @Param If-Match header string false "Expected zone revision"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone}/environments/{env} [delete]
func (h *Handler) DeleteEnvironment(c *gin.Context, user *auth.User) {
	zone, name := c.Param("zone"), c.Param("env")
	if err := h.inventory.DeleteEnvironment(c.Request.Context(), zone, name, ifMatch(c)); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("environment deleted", "zone", zone, "env", name, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "environment " + name + " removed from zone " + zone})
}
