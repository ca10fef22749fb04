package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ashendes/catalog-service/internal/catalog"
	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/patterns"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// constraintHeader names the database constraint kind behind a 400
const constraintHeader = "X-Constraint-Kind"

// ErrorResponse is the body of every non-2xx reply. Detail is a string, or a
// list of field errors for 422.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// writeError maps service errors onto status codes
func writeError(c *gin.Context, err error) {
	var (
		nf  *catalog.NotFoundError
		we  *catalog.WriteError
		fes models.FieldErrors
	)

	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: nf.Error()})
	case errors.As(err, &we):
		c.Header(constraintHeader, we.Kind())
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: we.Error()})
	case errors.As(err, &fes):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: fes})
	case errors.Is(err, patterns.ErrBulkheadFull):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Detail: "database busy, try again later"})
	default:
		log.WithFields(log.Fields{
			"request_id": c.GetString(requestIDKey),
			"path":       c.FullPath(),
		}).Error("Unhandled error: ", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
	}
}

// bindJSON decodes and validates the request body into dst. A failure is
// written as 422 and reported as false.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			writeError(c, models.FromValidationErrors(ve))
		} else {
			writeError(c, models.FieldErrors{{Field: "body", Message: err.Error()}})
		}
		return false
	}
	return true
}

// pathID parses the :id path segment. A malformed id is written as 422.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		writeError(c, models.FieldErrors{{Field: "id", Message: "value is not a valid integer"}})
		return 0, false
	}
	return uint(id), true
}
