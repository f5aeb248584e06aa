// Package handlers binds the quote API routes to the application services.
package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acme/quote-manager/internal/ports"
)

// BuildInfo is served on /-/build. Version, commit and build time come
// from ldflags.
type BuildInfo struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	BuildTime       string `json:"buildTime"`
	GoVersion       string `json:"goVersion"`
	AdminAPIVersion string `json:"adminApiVersion,omitempty"`
}

// NewBuildInfo fills in the running Go version.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{Version: version, Commit: commit, BuildTime: buildTime, GoVersion: runtime.Version()}
}

// WithAdminAPIVersion names the Admin API version the relay is pinned to.
func (b BuildInfo) WithAdminAPIVersion(version string) BuildInfo {
	b.AdminAPIVersion = version
	return b
}

// HealthHandler serves the operational endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
	build    BuildInfo
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(registry ports.HealthRegistry, build BuildInfo) *HealthHandler {
	return &HealthHandler{registry: registry, build: build}
}

type livenessResponse struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Liveness answers 200 while the process runs. It never calls the relay.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

// Readiness reports the Admin API gateway and session store checks, with
// 503 when either fails.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	code := http.StatusOK
	if result.Status != ports.HealthStatusHealthy {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, readinessResponse{Status: string(result.Status), Checks: result.Checks})
}

// Build serves the build info.
func (h *HealthHandler) Build(c *gin.Context) {
	c.JSON(http.StatusOK, h.build)
}

// RegisterHealthRoutesOnEngine mounts live, ready and build under /-/ and
// the Prometheus scrape endpoint at /metrics.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	probes := engine.Group("/-")
	probes.GET("/live", h.Liveness)
	probes.GET("/ready", h.Readiness)
	probes.GET("/build", h.Build)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
