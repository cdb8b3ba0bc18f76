package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/utils"
)

func TestAdminKeyCommand(t *testing.T) {
	var out bytes.Buffer
	adminKeyCmd.SetOut(&out)
	require.NoError(t, runAdminKey(adminKeyCmd, []string{"s3cret"}))

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "hash: "))
	assert.True(t, utils.VerifySecret(strings.TrimPrefix(line, "hash: "), "s3cret"))
}

func TestNewRouter(t *testing.T) {
	cfg := &config.Config{CORSOrigins: []string{"https://survey.example"}}
	prev := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })

	r := newRouter(cfg)
	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	assert.True(t, routes["POST /api/services/:id/responses"])
	assert.True(t, routes["GET /api/survey-data"])
	assert.True(t, routes["GET /metrics"])

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/services", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	w := preflight("https://survey.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://survey.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusForbidden, preflight("https://evil.example").Code)
}
