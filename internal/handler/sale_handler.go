package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/middleware"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/service"
)

type SaleHandler struct {
	svc *service.SaleService
}

func NewSaleHandler(svc *service.SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// Create confirms a sale and issues its tax free form. A sale the gate
// rejects is a 422 carrying the eligibility failures and the feasibility
// verdict in separate fields; issuing without an active ruleset is a 409.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	form, quote, err := h.svc.CreateSale(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveRuleSet) {
			c.JSON(http.StatusConflict, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, service.ErrSaleRejected) {
			c.JSON(http.StatusUnprocessableEntity, dto.SaleRejectedResponse{
				Error:            err.Error(),
				ValidationErrors: quote.ValidationErrors,
				RefundValidation: quote.RefundValidation,
			})
			return
		}
		status, resp := middleware.MapDBError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"form":        dto.NewFormResponse(form),
		"computation": quote,
	})
}
