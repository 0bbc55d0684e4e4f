package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthHandler struct {
	pool *pgxpool.Pool
}

func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "connected"
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		dbStatus = "disconnected"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"service":  "taxfree-rdc",
			"status":   "unhealthy",
			"database": dbStatus,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service":  "taxfree-rdc",
		"status":   "healthy",
		"database": dbStatus,
	})
}
