package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/frontdesk/internal/contract"
	"github.com/alexanderramin/frontdesk/internal/service"
)

type handler struct {
	frontDesk service.FrontDeskService
	logger    *slog.Logger
}

func (h *handler) submitQuery(c *gin.Context) {
	var req contract.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, contract.ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	resp, err := h.frontDesk.Submit(c.Request.Context(), req)
	if err != nil {
		var verr *contract.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, contract.ErrorResponse{Error: verr.Message})
			return
		}
		// Submit absorbs downstream failures; anything here is a bug.
		h.logger.ErrorContext(c.Request.Context(), "submit_query_failed",
			"request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, contract.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
