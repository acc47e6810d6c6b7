package handlers

import (
	"io"
	"net/http"

	"shopadmin/internal/http/middleware"
	"shopadmin/internal/query"
	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/gin-gonic/gin"
)

// Resources serves the list/detail endpoints of every catalogued resource.
type Resources struct {
	Compiler *query.Compiler
	Repo     repositories.ResourceRepository
}

func (h Resources) service(c *gin.Context) services.ResourceService {
	return services.ResourceService{
		Compiler:  h.Compiler,
		Repo:      h.Repo,
		RequestID: middleware.GetRequestID(c),
	}
}

// List handles GET /api/{resource} with filters in the query string.
func (h Resources) List(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := query.FromValues(c.Request.URL.Query())
		h.respondList(c, resource, filter)
	}
}

// Search handles POST /api/{resource}/search with filters in a JSON body.
func (h Resources) Search(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw []byte
		if c.Request.Body != nil {
			b, err := io.ReadAll(c.Request.Body)
			if err != nil {
				RespondError(c, http.StatusBadRequest, "body tidak terbaca", err)
				return
			}
			raw = b
		}
		filter, err := query.FromJSON(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
			return
		}
		h.respondList(c, resource, filter)
	}
}

func (h Resources) respondList(c *gin.Context, resource string, filter query.RawFilter) {
	page, err := h.service(c).List(c.Request.Context(), resource, filter, middleware.GetSubject(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Detail handles GET /api/{resource}/:uuid.
func (h Resources) Detail(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := h.service(c).Get(c.Request.Context(), resource, c.Param("uuid"), middleware.GetSubject(c))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rec})
	}
}

// Exists handles HEAD /api/{resource}/:uuid.
func (h Resources) Exists(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := h.service(c).Exists(c.Request.Context(), resource, c.Param("uuid"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if !found {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	}
}
