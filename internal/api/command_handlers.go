package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/healthcoach/internal"
)

// CommandRequest carries the whitespace-split command arguments. Now
// overrides the server clock, which keeps replays and tests deterministic.
type CommandRequest struct {
	Args []string   `json:"args"`
	Now  *time.Time `json:"now,omitempty"`
}

type MessageRequest struct {
	Text string     `json:"text" binding:"required"`
	Now  *time.Time `json:"now,omitempty"`
}

func PostCommand(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint64("user_id")
		command := c.Param("command")

		var body CommandRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
				HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
				return
			}
		}

		res, err := app.Coach().Dispatch(c.Request.Context(), userID, nowOr(app, body.Now), command, body.Args)
		if err != nil {
			HandleError(c, app.Logger(), err, internal.StatusFor(err), "Command "+command+" failed")
			return
		}
		HandleSuccess(c, app.Logger(), res, map[string]any{"command": command})
	}
}

func PostMessage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint64("user_id")

		var body MessageRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid request: text required")
			return
		}

		res, err := app.Coach().Message(c.Request.Context(), userID, nowOr(app, body.Now), body.Text)
		if err != nil {
			HandleError(c, app.Logger(), err, internal.StatusFor(err), "Message failed")
			return
		}
		HandleSuccess(c, app.Logger(), res, nil)
	}
}

// GetExport streams the user's row as a CSV attachment.
func GetExport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint64("user_id")

		res, err := app.Coach().ExportData(c.Request.Context(), userID, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, internal.StatusFor(err), "Export failed")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
		c.Data(http.StatusOK, "text/csv", res.CSV)
	}
}

func nowOr(app App, override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	return app.Now()
}
