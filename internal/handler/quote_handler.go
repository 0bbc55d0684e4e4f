package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/middleware"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/service"
)

type QuoteHandler struct {
	svc *service.QuoteService
}

func NewQuoteHandler(svc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

// Quote computes eligibility, fee and refund for a sale draft without
// persisting anything. Business failures are data in the 200 response, not
// HTTP errors.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	quote, err := h.svc.Quote(c.Request.Context(), &req)
	if err != nil {
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, quote)
}
