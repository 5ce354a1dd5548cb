package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/smartcms/smartcontent/internal/common"
)

// respondServiceError maps the service error taxonomy onto stable HTTP
// categories: not-found -> 404, validation/transition/state -> 400,
// concurrent modification -> 409, everything else -> 500.
func respondServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, common.ErrContentNotFound), errors.Is(err, common.ErrVersionNotFound):
		common.ErrorResponse(c, 404, message, err)
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrInvalidState),
		errors.Is(err, common.ErrInvalidScheduleTime):
		common.ErrorResponse(c, 400, message, err)
	case errors.Is(err, common.ErrVersionConflict):
		common.ErrorResponse(c, 409, message, err)
	default:
		common.ErrorResponse(c, 500, message, err)
	}
}
