package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/model"
)

// respondError maps domain errors to HTTP statuses. Unknown errors
// become opaque 500s; the details stay in the logs.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, model.ErrClientHasContracts),
		errors.Is(err, model.ErrInstallmentPaid),
		errors.Is(err, model.ErrContractNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrLicenseInvalid):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
