package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/dto"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/engine"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/middleware"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
)

type CategoryHandler struct {
	repo *repository.CategoryRepository
}

func NewCategoryHandler(repo *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// List returns the active product categories. With an empty table the static
// built-in catalog is served, so the point of sale always has something to
// offer.
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		st, resp := middleware.MapDBError(err)
		c.JSON(st, resp)
		return
	}

	results := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		results = append(results, dto.CategoryResponse{
			Code:                cat.Code,
			Name:                cat.Name,
			Icon:                cat.Icon,
			IsEligibleByDefault: cat.IsEligibleByDefault,
		})
	}

	if len(results) == 0 {
		for _, cat := range engine.StaticCategories() {
			results = append(results, dto.CategoryResponse{
				Code:                cat.Code,
				Name:                cat.Label,
				Icon:                cat.Icon,
				IsEligibleByDefault: cat.Eligible,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}
