package server

import (
	"net/http"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/service"
	"github.com/gin-gonic/gin"
)

type securityHandler struct {
	svc *service.SecurityService
}

func (h *securityHandler) create(c *gin.Context) {
	var in service.CreateSecurityInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	by, err := creator(c)
	if err != nil {
		writeError(c, err)
		return
	}
	in.CreatedBy = by

	sec, err := h.svc.CreateSecurity(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sec)
}

func (h *securityHandler) get(c *gin.Context) {
	id, err := domain.ParseID("security id", c.Param("securityId"))
	if err != nil {
		writeError(c, err)
		return
	}
	sec, err := h.svc.GetSecurity(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

func (h *securityHandler) byOwner(c *gin.Context) {
	owner, err := domain.NewParty(c.Param("ownerType"), c.Param("ownerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	secs, err := h.svc.GetOwnerSecurities(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, secs)
}

func (h *securityHandler) status(c *gin.Context) {
	id, err := domain.ParseID("security id", c.Param("securityId"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.UpdateSecurityStatus(c.Request.Context(), id, req.Status); err != nil {
		writeError(c, err)
		return
	}
	success(c)
}

func (h *securityHandler) earnings(c *gin.Context) {
	id, err := domain.ParseID("security id", c.Param("securityId"))
	if err != nil {
		writeError(c, err)
		return
	}
	earnings, err := h.svc.CalculateInterestEarnings(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, earnings)
}
