package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/models"
	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/jroosing/zoneinv/internal/inventory"
)

// AddServer godoc
// @Summary Add a server
// @Tags servers
// @Accept json
// @Produce json
// @Param zone path string true "Zone name"
// @Param env path string true "Environment name"
// @Param If-Match header string false "Expected zone revision"
// @Param server body inventory.Server true "Server"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone}/environments/{env}/servers/ [post]
func (h *Handler) AddServer(c *gin.Context, user *auth.User) {
	zone, env := c.Param("zone"), c.Param("env")
	var srv inventory.Server
	if err := c.ShouldBindJSON(&srv); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.inventory.AddServer(c.Request.Context(), zone, env, ifMatch(c), srv); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("server added", "zone", zone, "env", env, "fqdn", srv.FQDN, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "server " + srv.FQDN + " added to environment " + env + " of zone " + zone})
}

// UpdateServer godoc
// @Summary Replace a server
// @Tags servers
// @Accept json
// @Produce json
// @Param zone path string true "Zone name"
// @Param env path string true "Environment name"
// @Param fqdn path string true "Server FQDN"
// @Param If-Match header string false "Expected zone revision"
// @Param server body inventory.Server true "Server"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone}/environments/{env}/servers/{fqdn} [put]
func (h *Handler) UpdateServer(c *gin.Context, user *auth.User) {
	zone, env, fqdn := c.Param("zone"), c.Param("env"), c.Param("fqdn")
	var srv inventory.Server
	if err := c.ShouldBindJSON(&srv); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.inventory.UpdateServer(c.Request.Context(), zone, env, fqdn, ifMatch(c), srv); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("server updated", "zone", zone, "env", env, "fqdn", fqdn, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "server " + fqdn + " updated in environment " + env + " of zone " + zone})
}

// DeleteServer godoc
// @Summary Remove a server
// @Tags servers
// @Produce json
// @Param zone path string true "Zone name"
// @Param env path string true "Environment name"
// @Param fqdn path string true "Server FQDN"
// @Param If-Match header string false "Expected zone revision"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone}/environments/{env}/servers/{fqdn} [delete]
func (h *Handler) DeleteServer(c *gin.Context, user *auth.User) {
	zone, env, fqdn := c.Param("zone"), c.Param("env"), c.Param("fqdn")
	if err := h.inventory.DeleteServer(c.Request.Context(), zone, env, fqdn, ifMatch(c)); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("server deleted", "zone", zone, "env", env, "fqdn", fqdn, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "server " + fqdn + " removed from environment " + env + " of zone " + zone})
}
