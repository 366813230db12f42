package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"screw-motion/internal/screw"
)

// Status is the error body returned to clients.
type Status struct {
	Code     int             `json:"code" example:"400"`
	Message  string          `json:"message" example:"incomplete input"`
	Validity *screw.Validity `json:"validity,omitempty"`
}

// NewHTTPStatus aborts the request with a JSON error body.
func NewHTTPStatus(ctx *gin.Context, status int, err error) {
	ctx.AbortWithStatusJSON(status, Status{
		Code:    status,
		Message: err.Error(),
	})
}

// Implements the error interface
func (s Status) Error() string {
	if s.Message != "" {
		return s.Message
	}
	return http.StatusText(s.Code)
}
