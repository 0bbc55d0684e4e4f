package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/middleware"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/service"
)

type FormHandler struct {
	formRepo  *repository.FormRepository
	refundSvc *service.RefundService
}

func NewFormHandler(formRepo *repository.FormRepository, refundSvc *service.RefundService) *FormHandler {
	return &FormHandler{formRepo: formRepo, refundSvc: refundSvc}
}

func (h *FormHandler) List(c *gin.Context) {
	status := c.Query("status")
	p := dto.ParsePagination(c)

	forms, total, err := h.formRepo.List(c.Request.Context(), status, p.PageSize, p.Offset)
	if err != nil {
		st, resp := middleware.MapDBError(err)
		c.JSON(st, resp)
		return
	}

	results := make([]dto.FormResponse, len(forms))
	for i, f := range forms {
		results[i] = dto.NewFormResponse(f)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       results,
		"pagination": dto.NewPagination(p.Page, p.PageSize, total),
	})
}

func (h *FormHandler) Get(c *gin.Context) {
	form, err := h.formRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		st, resp := middleware.MapDBError(err)
		c.JSON(st, resp)
		return
	}

	c.JSON(http.StatusOK, dto.NewFormResponse(form))
}

// Payout quotes the form's refund converted into the requested currency.
func (h *FormHandler) Payout(c *gin.Context) {
	quote, err := h.refundSvc.PayoutQuote(c.Request.Context(), c.Param("id"), c.Query("currency"))
	if err != nil {
		st, resp := middleware.MapDBError(err)
		c.JSON(st, resp)
		return
	}

	c.JSON(http.StatusOK, quote)
}
