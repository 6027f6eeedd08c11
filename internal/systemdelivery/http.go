// Package systemdelivery serves the service info and health endpoints.
package systemdelivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the endpoints that do not belong to any resource.
type Handler struct {
	serviceName string
	version     string
}

// NewHandler returns system handler.
func NewHandler(serviceName, version string) Handler {
	return Handler{serviceName: serviceName, version: version}
}

type indexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   struct {
		Accounts string `json:"accounts"`
	} `json:"paths"`
}

// Index handles http request for service metadata.
func (h *Handler) Index(gctx *gin.Context) {
	res := indexResponse{
		Name:    h.serviceName,
		Version: h.version,
	}
	res.Paths.Accounts = "/accounts"

	gctx.JSON(http.StatusOK, res)
}

// Health reports service liveness.
func (h *Handler) Health(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, gin.H{"status": "OK"})
}
