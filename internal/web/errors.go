package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every JSON error response.
// Example: { "error": { "code": "bad_request", "message": "topic is required" } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response.
func JSONError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

func badRequest(c *gin.Context, msg string) {
	JSONError(c, http.StatusBadRequest, "bad_request", msg)
}

func notFound(c *gin.Context, msg string) {
	JSONError(c, http.StatusNotFound, "not_found", msg)
}

func conflict(c *gin.Context, msg string) {
	JSONError(c, http.StatusConflict, "conflict", msg)
}

func badGateway(c *gin.Context, code, msg string) {
	JSONError(c, http.StatusBadGateway, code, msg)
}

func internalError(c *gin.Context, msg string) {
	JSONError(c, http.StatusInternalServerError, "internal_error", msg)
}
