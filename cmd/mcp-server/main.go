package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/patrickwarner/webapp/internal/config"
	"github.com/patrickwarner/webapp/internal/db"
	"github.com/patrickwarner/webapp/internal/reporting"
)

type CountHealthChecksInput struct{}

type CountHealthChecksOutput struct {
	Backend     string `json:"backend"`
	TotalChecks int64  `json:"total_checks"`
	GeneratedAt string `json:"generated_at"`
}

type ProbeHealthzInput struct {
	BaseURL string `json:"base_url,omitempty"`
}

type ProbeHealthzOutput struct {
	URL                 string `json:"url"`
	StatusCode          int    `json:"status_code"`
	Healthy             bool   `json:"healthy"`
	CacheControl        string `json:"cache_control"`
	Pragma              string `json:"pragma"`
	XContentTypeOptions string `json:"x_content_type_options"`
}

// HealthTools holds the dependencies of the MCP tools.
type HealthTools struct {
	store   reporting.Counter
	backend string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// CountHealthChecks reports how many health checks the store holds.
func (h *HealthTools) CountHealthChecks(ctx context.Context, req *mcp.CallToolRequest, input CountHealthChecksInput) (*mcp.CallToolResult, CountHealthChecksOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	report, err := reporting.GenerateHealthReport(ctx, h.store, h.backend)
	if err != nil {
		h.logger.Error("count health checks", zap.Error(err))
		return nil, CountHealthChecksOutput{}, err
	}
	return nil, CountHealthChecksOutput{
		Backend:     report.Backend,
		TotalChecks: report.TotalChecks,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
	}, nil
}

// ProbeHealthz issues GET /healthz against a running service.
func (h *HealthTools) ProbeHealthz(ctx context.Context, req *mcp.CallToolRequest, input ProbeHealthzInput) (*mcp.CallToolResult, ProbeHealthzOutput, error) {
	base := input.BaseURL
	if base == "" {
		base = h.baseURL
	}
	url := strings.TrimRight(base, "/") + "/healthz"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ProbeHealthzOutput{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, ProbeHealthzOutput{}, fmt.Errorf("probe %s: %w", url, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	h.logger.Info("Probed healthz", zap.String("url", url), zap.Int("status", resp.StatusCode))
	return nil, ProbeHealthzOutput{
		URL:                 url,
		StatusCode:          resp.StatusCode,
		Healthy:             resp.StatusCode == http.StatusOK,
		CacheControl:        resp.Header.Get("Cache-Control"),
		Pragma:              resp.Header.Get("Pragma"),
		XContentTypeOptions: resp.Header.Get("X-Content-Type-Options"),
	}, nil
}

func newMCPServer(tools *HealthTools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "webapp-health",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "count_health_checks",
		Description: "Count the health check records stored by the webapp service",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}, tools.CountHealthChecks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "probe_healthz",
		Description: "Call GET /healthz on a running webapp instance and report the status and cache headers",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"base_url": map[string]interface{}{
					"type":        "string",
					"description": "Service base URL (optional, defaults to HEALTHZ_BASE_URL)",
				},
			},
		},
	}, tools.ProbeHealthz)

	return server
}

func main() {
	// Logs go to stderr; stdout carries the MCP stream.
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.MessageKey = "msg"

	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.Named("webapp-mcp").With(zap.String("service", "webapp-mcp"))

	_ = godotenv.Load()
	cfg := config.Load()

	store, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	baseURL := os.Getenv("HEALTHZ_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port
	}

	tools := &HealthTools{
		store:   store,
		backend: cfg.StoreBackend,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}

	logger.Info("MCP server running via stdio", zap.String("backend", cfg.StoreBackend))
	if err := newMCPServer(tools).Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("Server error", zap.Error(err))
		os.Exit(1)
	}
}
