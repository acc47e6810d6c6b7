package handlers

import (
	"net/http"
	"sync"

	intconfig "shopadmin/internal/config"
	intdb "shopadmin/internal/db"
	"shopadmin/internal/query"

	"github.com/gin-gonic/gin"
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
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "shop admin berjalan"})
}

// DBCheck pings the store and reports, per resource, whether its table and
// the base columns of its general shape exist.
func DBCheck(compiler *query.Compiler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := intconfig.EnsureDB(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "gagal ping database: " + err.Error()})
			return
		}
		db := intconfig.DB

		report := gin.H{}
		healthy := true
		for _, name := range compiler.Names() {
			r, _ := compiler.Resource(name)
			exists := intdb.HasTable(ctx, db, r.Table)
			entry := gin.H{"table": r.Table, "exists": exists}
			report[name] = entry
			if !exists {
				healthy = false
				continue
			}
			shape, err := compiler.Projection(name, query.ShapeGeneral)
			if err != nil {
				continue
			}
			missing := []string{}
			for _, col := range shape.Columns() {
				if col.Source == query.BaseAlias && !intdb.HasColumn(ctx, db, r.Table, col.Name) {
					missing = append(missing, col.Name)
				}
			}
			if len(missing) > 0 {
				healthy = false
				entry["missing_columns"] = missing
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"message": "koneksi database OK", "healthy": healthy, "resources": report})
	}
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
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
