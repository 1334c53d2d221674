package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
	}
	return nil
}

// creator берет автора записи из X-User-ID
func creator(c *gin.Context) (primitive.ObjectID, error) {
	return domain.ParseID("creator id", c.GetHeader(HeaderUserID))
}

type statusRequest struct {
	Status string `json:"status"`
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
