package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"assessment-planner/internal/assessment"
	"assessment-planner/internal/model"
	pkgResponse "assessment-planner/pkg/response"
)

// Import converts free-text assignment descriptions into persisted
// assessments. The caller is already authenticated upstream; the user ID
// arrives in the X-User-ID header.
func (h *handler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		pkgResponse.Unauthorized(c)
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "assessment handler: invalid request body: %v", err)
		pkgResponse.Error(c, errors.New("invalid request body"), nil)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		pkgResponse.Error(c, assessment.ErrEmptyInput, nil)
		return
	}

	sc := model.Scope{UserID: userID}

	out, err := h.uc.ImportFromText(ctx, sc, assessment.ImportInput{
		RawText:       req.Text,
		AllowFallback: req.UseFallback,
	})
	if err != nil {
		// Fallback was disabled and extraction produced nothing usable.
		h.l.Warnf(ctx, "assessment handler: import failed for user=%s: %v", userID, err)
		pkgResponse.Error(c, errors.New("could not interpret the provided text"), nil)
		return
	}

	saved, err := h.uc.SaveImported(ctx, sc, out)
	if err != nil {
		h.l.Errorf(ctx, "assessment handler: save failed for user=%s: %v", userID, err)
		pkgResponse.InternalError(c, err)
		return
	}

	if len(saved.Saved) == 0 {
		pkgResponse.Error(c, errors.New("no valid assessments could be created"), nil)
		return
	}

	pkgResponse.Created(c, newImportResponse(out, saved))
}
