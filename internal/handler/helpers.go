package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/response"
)

// parseID reads a positive int64 path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func internalError(c *gin.Context, log zerolog.Logger, err error, msg string) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg(msg)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
