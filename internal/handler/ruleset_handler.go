package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/middleware"
	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
)

type RuleSetHandler struct {
	repo *repository.RuleSetRepository
}

func NewRuleSetHandler(repo *repository.RuleSetRepository) *RuleSetHandler {
	return &RuleSetHandler{repo: repo}
}

// GetActive returns the active ruleset with its risk rules. 404 when no
// ruleset is active; clients then fall back to their preload display values.
func (h *RuleSetHandler) GetActive(c *gin.Context) {
	rs, riskRules, err := h.repo.GetActive(c.Request.Context())
	if err != nil {
		st, resp := middleware.MapDBError(err)
		c.JSON(st, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ruleset":    rs,
		"risk_rules": riskRules,
	})
}
