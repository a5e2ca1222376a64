//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-link-shortener/config"
	"go-link-shortener/handlers"
	"go-link-shortener/metrics"
	"go-link-shortener/services"
	"go-link-shortener/storage"
	"go-link-shortener/types"
)

func sendRequest(t *testing.T, server *httptest.Server, method, path string, body interface{}) (*http.Response, []byte) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, server.URL+path, reqBody)
	require.NoError(t, err, "Failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Failed to send request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	resp.Body.Close()

	return resp, respBody
}

type environment struct {
	server *httptest.Server
	router *gin.Engine
	cfg    *config.Config
}

func setupTestEnvironment(t *testing.T, mutate ...func(*config.Config)) *environment {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.StorageCapacity = 1000000
	for _, m := range mutate {
		m(cfg)
	}

	logger := zap.NewNop()
	m := metrics.New()
	store := storage.NewInMemoryStorage(cfg.StorageCapacity, logger)
	linkService := services.NewLinkService(store, cfg.BaseURL, services.WithMetrics(m))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	linkHandler, err := handlers.NewLinkHandler(ctx, linkService, cfg, logger, m)
	require.NoError(t, err, "Failed to create LinkHandler")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers.MetricsMiddleware(m))
	handlers.RegisterRoutes(router, linkHandler, cfg)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		linkHandler.Close()
		cancel()
	})

	return &environment{server: server, router: router, cfg: cfg}
}

func noRateLimit(cfg *config.Config) { cfg.DisableRateLimit = true }

func TestIntegration(t *testing.T) {
	env := setupTestEnvironment(t, noRateLimit)

	t.Run("BasicOperations", func(t *testing.T) {
		var created types.Link

		t.Run("CreateLink", func(t *testing.T) {
			resp, body := sendRequest(t, env.server, "POST", "/api/v1/links", types.LinkRequest{URL: "https://example.com"})
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			require.NoError(t, json.Unmarshal(body, &created), "Failed to unmarshal response")
			assert.Len(t, created.ShortCode, 6)
			assert.Equal(t, "http://localhost:3000/"+created.ShortCode, created.ShortURL)
			assert.Equal(t, 30, created.ExpiryMinutes)
			assert.Equal(t, 0, created.Clicks)
			assert.NotEmpty(t, created.ID)
		})

		t.Run("GetLink", func(t *testing.T) {
			resp, body := sendRequest(t, env.server, "GET", "/api/v1/links/"+created.ShortCode, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var response types.Link
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, "https://example.com", response.OriginalURL)
			assert.Equal(t, created.ID, response.ID)
		})

		t.Run("ListLinks", func(t *testing.T) {
			resp, body := sendRequest(t, env.server, "GET", "/api/v1/links", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var response types.ListResponse
			require.NoError(t, json.Unmarshal(body, &response))
			require.Equal(t, 1, response.Count)
			assert.Equal(t, created.ShortCode, response.Links[0].ShortCode)
		})

		t.Run("DeleteLink", func(t *testing.T) {
			resp, _ := sendRequest(t, env.server, "DELETE", "/api/v1/links/"+created.ShortCode, nil)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, body := sendRequest(t, env.server, "GET", "/api/v1/links/"+created.ShortCode, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Contains(t, string(body), "Link not found")
		})
	})

	t.Run("HealthCheck", func(t *testing.T) {
		resp, body := sendRequest(t, env.server, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "OK", string(body))
	})

	t.Run("Metrics", func(t *testing.T) {
		resp, body := sendRequest(t, env.server, "GET", "/metrics", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "link_shortener_links_created_total")
		assert.Contains(t, string(body), `route="/api/v1/links"`)
	})

	t.Run("CORS Headers", func(t *testing.T) {
		corsServer := httptest.NewServer(env.router)
		defer corsServer.Close()

		req, _ := http.NewRequest("OPTIONS", corsServer.URL+"/api/v1/links", nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, GET, OPTIONS, DELETE", resp.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("No redirect route", func(t *testing.T) {
		resp, _ := sendRequest(t, env.server, "GET", "/abc123", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSubmissionRules(t *testing.T) {
	env := setupTestEnvironment(t, noRateLimit)

	t.Run("Invalid URLs are rejected with the alert text", func(t *testing.T) {
		for _, url := range []string{"", "example.com", "ftp://example.com", "https://"} {
			resp, body := sendRequest(t, env.server, "POST", "/api/v1/links", types.LinkRequest{URL: url})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, url)
			assert.Contains(t, string(body), "Please enter a valid URL starting with http:// or https://")
		}

		_, body := sendRequest(t, env.server, "GET", "/api/v1/links", nil)
		assert.JSONEq(t, `{"links":[],"count":0}`, string(body))
	})

	t.Run("Custom code and expiry", func(t *testing.T) {
		resp, body := sendRequest(t, env.server, "POST", "/api/v1/links",
			map[string]interface{}{"url": "https://example.com/custom", "custom_code": "mine", "expiry_minutes": "90"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var link types.Link
		require.NoError(t, json.Unmarshal(body, &link))
		assert.Equal(t, "mine", link.ShortCode)
		assert.Equal(t, "http://localhost:3000/mine", link.ShortURL)
		assert.Equal(t, 90, link.ExpiryMinutes)
	})

	t.Run("Non-numeric expiry falls back to the default", func(t *testing.T) {
		resp, body := sendRequest(t, env.server, "POST", "/api/v1/links",
			map[string]interface{}{"url": "https://example.com/expiry", "expiry_minutes": "soon"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var link types.Link
		require.NoError(t, json.Unmarshal(body, &link))
		assert.Equal(t, 30, link.ExpiryMinutes)
	})

	t.Run("Duplicate custom code conflicts", func(t *testing.T) {
		resp, body := sendRequest(t, env.server, "POST", "/api/v1/links",
			types.LinkRequest{URL: "https://example.com/other", CustomCode: "mine"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, string(body), "Short code already exists")
	})

	t.Run("Same URL twice yields two links", func(t *testing.T) {
		req := types.LinkRequest{URL: "https://example.com/duplicate"}
		_, first := sendRequest(t, env.server, "POST", "/api/v1/links", req)
		_, second := sendRequest(t, env.server, "POST", "/api/v1/links", req)

		var a, b types.Link
		require.NoError(t, json.Unmarshal(first, &a))
		require.NoError(t, json.Unmarshal(second, &b))
		assert.NotEqual(t, a.ID, b.ID)
		assert.NotEqual(t, a.ShortCode, b.ShortCode)
	})

	t.Run("Invalid JSON input", func(t *testing.T) {
		req, _ := http.NewRequest("POST", env.server.URL+"/api/v1/links", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAnalytics(t *testing.T) {
	env := setupTestEnvironment(t, noRateLimit)

	for i := 0; i < 7; i++ {
		resp, _ := sendRequest(t, env.server, "POST", "/api/v1/links",
			map[string]interface{}{"url": fmt.Sprintf("https://example.com/%d", i), "expiry_minutes": 10 * (i + 1)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	for _, tf := range []string{"today", "week", "all"} {
		t.Run("Stored links "+tf, func(t *testing.T) {
			resp, body := sendRequest(t, env.server, "GET", "/api/v1/analytics?timeframe="+tf, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var summary types.Summary
			require.NoError(t, json.Unmarshal(body, &summary))
			assert.Equal(t, types.Timeframe(tf), summary.Timeframe)
			assert.Equal(t, 7, summary.TotalGeneratedLinks)
			assert.Equal(t, 0, summary.TotalInteractions)
			assert.Equal(t, 40, summary.AverageLifespan)
			assert.Len(t, summary.TopPerformingLinks, 5)
		})
	}

	t.Run("Unknown timeframe", func(t *testing.T) {
		resp, _ := sendRequest(t, env.server, "GET", "/api/v1/analytics?timeframe=month", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Supplied collection", func(t *testing.T) {
		old := time.Now().Add(-30 * 24 * time.Hour)
		req := types.AnalyticsRequest{
			Timeframe: "all",
			Links: []types.AnalyticsLink{
				{UID: "a", BirthTime: old, AccessCount: 3, Lifespan: 10},
				{UID: "b", BirthTime: old, AccessCount: 9, Lifespan: 25},
			},
		}

		resp, body := sendRequest(t, env.server, "POST", "/api/v1/analytics", req)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary types.Summary
		require.NoError(t, json.Unmarshal(body, &summary))
		assert.Equal(t, 2, summary.TotalGeneratedLinks)
		assert.Equal(t, 12, summary.TotalInteractions)
		assert.Equal(t, 18, summary.AverageLifespan)
		require.Len(t, summary.TopPerformingLinks, 2)
		assert.Equal(t, "b", summary.TopPerformingLinks[0].UID)

		req.Timeframe = "week"
		_, body = sendRequest(t, env.server, "POST", "/api/v1/analytics", req)
		require.NoError(t, json.Unmarshal(body, &summary))
		assert.Equal(t, 0, summary.TotalGeneratedLinks)
		assert.Empty(t, summary.TopPerformingLinks)
	})
}

func TestRateLimiting(t *testing.T) {
	env := setupTestEnvironment(t)
	client := &http.Client{}

	testIP := func(ip string) {
		for i := 0; i < env.cfg.RateLimit; i++ {
			req, _ := http.NewRequest("GET", env.server.URL+"/health", nil)
			req.Header.Set("X-Forwarded-For", ip)
			resp, err := client.Do(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}

		req, _ := http.NewRequest("GET", env.server.URL+"/health", nil)
		req.Header.Set("X-Forwarded-For", ip)
		resp, err := client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		resp.Body.Close()

		time.Sleep(env.cfg.RatePeriod)

		req, _ = http.NewRequest("GET", env.server.URL+"/health", nil)
		req.Header.Set("X-Forwarded-For", ip)
		resp, err = client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	testIP("192.0.2.1")
	testIP("192.0.2.2")
}

func TestStorageFull(t *testing.T) {
	env := setupTestEnvironment(t, noRateLimit, func(cfg *config.Config) { cfg.StorageCapacity = 2 })

	for i := 0; i < 2; i++ {
		resp, _ := sendRequest(t, env.server, "POST", "/api/v1/links",
			types.LinkRequest{URL: fmt.Sprintf("https://example.com/full%d", i)})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := sendRequest(t, env.server, "POST", "/api/v1/links", types.LinkRequest{URL: "https://example.com/overflow"})
	assert.Equal(t, http.StatusInsufficientStorage, resp.StatusCode)

	var errorResp map[string]string
	require.NoError(t, json.Unmarshal(body, &errorResp))
	assert.Equal(t, "Storage capacity reached", errorResp["error"])
}

func TestConcurrentCreates(t *testing.T) {
	env := setupTestEnvironment(t, noRateLimit)

	const numRequests = 50
	results := make(chan string, numRequests)

	for i := 0; i < numRequests; i++ {
		go func(i int) {
			jsonBody, _ := json.Marshal(types.LinkRequest{URL: fmt.Sprintf("https://example.com/concurrent%d", i)})
			req, _ := http.NewRequest("POST", env.server.URL+"/api/v1/links", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				results <- fmt.Sprintf("Error: %v", err)
				return
			}
			defer resp.Body.Close()
			var link types.Link
			if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
				results <- fmt.Sprintf("Error: %v", err)
				return
			}
			results <- link.ShortCode
		}(i)
	}

	codes := make(map[string]bool)
	for i := 0; i < numRequests; i++ {
		result := <-results
		require.False(t, strings.HasPrefix(result, "Error:"), result)
		codes[result] = true
	}
	assert.Len(t, codes, numRequests, "Every generated short code should be unique")

	_, body := sendRequest(t, env.server, "GET", "/api/v1/links", nil)
	var list types.ListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, numRequests, list.Count)
}
