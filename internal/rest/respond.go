package rest

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odiseo153/FeedBack-zone-sub001/internal/apperrors"
)

// RespondError writes the uniform error envelope. Internal failures log the
// underlying cause and expose only a generic message.
func RespondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Unwrap())
	}
	c.AbortWithStatusJSON(appErr.Code, apperrors.Envelope{Errors: appErr.Items})
}
