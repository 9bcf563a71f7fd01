package appErrors

import (
	"net/http"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the gin response.
// Internal detail of 5xx errors goes to the log, never to the client.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err, "path", c.Request.URL.Path)
		// Strip wrapped error detail before responding
		err = New(err.Code, err.Message, err.HTTPCode)
	}

	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleUnknownError wraps an arbitrary error and responds with 500.
func HandleUnknownError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		HandleError(c, appErr)
		return
	}

	logger.CtxWithError(c.Request.Context(), "unexpected error", err, "path", c.Request.URL.Path)
	HandleError(c, New(CodeInternalError, "Internal server error", http.StatusInternalServerError))
}
