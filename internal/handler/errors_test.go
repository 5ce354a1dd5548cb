package handler

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartcms/smartcontent/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"content not found", common.ErrContentNotFound, 404},
		{"version not found", common.ErrVersionNotFound, 404},
		{"invalid input", common.ErrInvalidInput, 400},
		{"invalid transition", common.ErrInvalidTransition, 400},
		{"invalid state", common.ErrInvalidState, 400},
		{"invalid schedule time", common.ErrInvalidScheduleTime, 400},
		{"version conflict", common.ErrVersionConflict, 409},
		{"wrapped sentinel", fmt.Errorf("%w: DRAFT -> PUBLISHED", common.ErrInvalidTransition), 400},
		{"unknown error", errors.New("database on fire"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tc.err, "operation failed")

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), "operation failed")
		})
	}
}
