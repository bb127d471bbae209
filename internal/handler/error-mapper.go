package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"credisight-service/internal/domain"
)

func mapDomainError(c *gin.Context, err error) {
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})

	case errors.Is(err, domain.ErrVectorLengthMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case isBodyError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// isBodyError covers malformed JSON surfaced by the decoder before any field
// is reached (syntax errors, EOF on empty body, non-object payloads).
func isBodyError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
