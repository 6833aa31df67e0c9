package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/models"
	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/jroosing/zoneinv/internal/inventory"
)

// ListZones godoc
// @Summary List all zones
// @Description Returns every zone with its environments and servers
// @Tags zones
// @Produce json
// @Success 200 {array} inventory.Zone
// @Failure 502 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/ [get]
func (h *Handler) ListZones(c *gin.Context, _ *auth.User) {
	zones, err := h.inventory.ListZones(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// CreateZone godoc
// @Summary Create a zone
// @Description Creates a zone; the name must not be taken
// @Tags zones
// @Accept json
// @Produce json
// @Param zone body inventory.Zone true "Zone to create"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/ [post]
func (h *Handler) CreateZone(c *gin.Context, user *auth.User) {
	var z inventory.Zone
	if err := c.ShouldBindJSON(&z); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.inventory.CreateZone(c.Request.Context(), z)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("zone created", "zone", z.Name, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "zone " + z.Name + " created", ID: id})
}

// GetZone godoc
// @Summary Get a zone
// @Description Returns one zone. The ETag header carries its revision.
// @Tags zones
// @Produce json
// @Param zone path string true "Zone name"
// @Success 200 {object} inventory.Zone
// @Failure 404 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone} [get]
func (h *Handler) GetZone(c *gin.Context, _ *auth.User) {
	z, rev, err := h.inventory.GetZone(c.Request.Context(), c.Param("zone"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("ETag", `"`+rev+`"`)
	c.JSON(http.StatusOK, z)
}

// UpdateZone godoc
// @Summary Update a zone
// @Description Replaces the zone's environments. The name cannot change.
// @Tags zones
// @Accept json
// @Produce json
// @Param zone path string true "Zone name"
// @Param If-Match header string false "Expected revision"
// @Param body body inventory.Zone true "New zone content"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone} [put]
func (h *Handler) UpdateZone(c *gin.Context, user *auth.User) {
	name := c.Param("zone")
	var z inventory.Zone
	if err := c.ShouldBindJSON(&z); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.inventory.UpdateZone(c.Request.Context(), name, ifMatch(c), z); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("zone updated", "zone", name, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "zone " + name + " updated"})
}

// DeleteZone godoc
// @Summary Delete a zone
// @Tags zones
// @Produce json
// @Param zone path string true "Zone name"
// @Param If-Match header string false "Expected revision"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security OAuth2Password
// @Router /zones/{zone} [delete]
func (h *Handler) DeleteZone(c *gin.Context, user *auth.User) {
	name := c.Param("zone")
	if err := h.inventory.DeleteZone(c.Request.Context(), name, ifMatch(c)); err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("zone deleted", "zone", name, "user", user.Username)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "zone " + name + " deleted"})
}
