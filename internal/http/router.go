package api

import (
	stdhttp "net/http"

	"shopadmin/internal/auth"
	"shopadmin/internal/catalog"
	intconfig "shopadmin/internal/config"
	h "shopadmin/internal/http/handlers"
	"shopadmin/internal/http/middleware"
	"shopadmin/internal/query"
	"shopadmin/internal/repositories"
	"shopadmin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// adminOnly lists resources whose routes need an admin role.
var adminOnly = map[string][]string{
	catalog.Admins: {"superadmin", "admin"},
}

func NewRouter(env intconfig.Env, compiler *query.Compiler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins), middleware.Metrics())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var validator auth.TokenValidator
	if env.JWTSecret != "" {
		validator = auth.NewJWTValidator(env.JWTSecret)
	} else {
		utils.Logger().Warn().Msg("JWT_SECRET kosong: bearer token diabaikan")
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck(compiler))
		api.GET("/routes", h.Routes)

		resources := h.Resources{Compiler: compiler, Repo: repositories.ResourceRepository{}}
		secured := api.Group("", middleware.AuthOptional(validator))
		for _, name := range compiler.Names() {
			g := secured.Group("/" + name)
			if roles, ok := adminOnly[name]; ok {
				g.Use(middleware.RequireRoles(roles...))
			}
			mountResource(g, resources, name)
		}
	}

	h.SetRouter(r)
	return r
}

func mountResource(g *gin.RouterGroup, res h.Resources, name string) {
	g.GET("", res.List(name))
	g.POST("/search", res.Search(name))
	g.GET("/:uuid", res.Detail(name))
	g.HEAD("/:uuid", res.Exists(name))
}
