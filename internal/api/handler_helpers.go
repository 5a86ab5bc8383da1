package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/render"
	"github.com/yourname/healthcoach/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	if status >= http.StatusInternalServerError {
		logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	} else {
		logger.Warnf("[request_id=%s] %s: %v", requestID, msg, err)
	}
	if wantsText(c) {
		c.String(status, render.Error(err))
		return
	}
	var resp response.APIResponse
	switch status {
	case http.StatusBadRequest:
		resp = response.BadRequest(msg + ": " + err.Error())
	case http.StatusNotFound:
		resp = response.NotFound(msg + ": " + err.Error())
	case http.StatusUnprocessableEntity:
		resp = response.Unprocessable(msg + ": " + err.Error())
	case http.StatusInternalServerError:
		resp = response.InternalError(msg)
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleSuccess writes data in the JSON envelope, or as the rendered chat
// reply when the caller asked for ?format=text.
func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	if wantsText(c) {
		text, err := render.Text(data)
		if err != nil {
			HandleError(c, logger, err, http.StatusNotAcceptable, "No text rendering")
			return
		}
		logger.Infof("[request_id=%s] Success", requestID)
		c.String(http.StatusOK, text)
		return
	}
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(http.StatusOK, response.Success(data, meta))
}

func wantsText(c *gin.Context) bool {
	return c.Query("format") == "text"
}
