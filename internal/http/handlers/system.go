package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	intconfig "carbook/internal/config"
	dbutil "carbook/internal/db"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "car service backend running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database ping failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "database connection OK",
		"schema": gin.H{
			"users":          dbutil.HasTable(intconfig.DB, "users"),
			"reservations":   dbutil.HasTable(intconfig.DB, "reservations"),
			"booking_drafts": dbutil.HasTable(intconfig.DB, "booking_drafts"),
			// Older deployments predate the confirmation column; surfacing it
			// here makes a missed migration obvious.
			"confirmation_column": dbutil.HasColumn(intconfig.DB, "reservations", "confirmation_number"),
		},
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
