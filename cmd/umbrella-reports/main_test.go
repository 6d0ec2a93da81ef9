package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrella-tools/umbrella-reports/internal/umbrella/reports"
)

func TestBuildRootCmd_Commands(t *testing.T) {
	rootCmd := buildRootCmd()

	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "token")
	assert.Contains(t, names, "report")
}

func TestEndpointCalls_CoversAllEndpoints(t *testing.T) {
	calls := endpointCalls(&reports.Reports{})
	assert.Len(t, calls, 17)

	// The help list and the dispatch table must not drift apart.
	assert.Len(t, endpointNames, len(calls))
	assert.True(t, sort.StringsAreSorted(endpointNames))
	for _, name := range endpointNames {
		assert.Contains(t, calls, name)
	}
}

func TestReportCmd_UnknownEndpoint(t *testing.T) {
	t.Setenv("DNS_API_KEY", "test-key")
	t.Setenv("DNS_API_SECRET", "test-secret")

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"report", "top-fortnights"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown endpoint")
}

func TestReportCmd_MissingCredentials(t *testing.T) {
	t.Setenv("DNS_API_KEY", "")
	t.Setenv("DNS_API_SECRET", "")

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"report", "summary"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key and secret are required")
}

func TestReportCmd_PrintsBody(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenServer.Close()

	reportServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summary", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"requests":42}}`))
	}))
	defer reportServer.Close()

	t.Setenv("DNS_API_KEY", "test-key")
	t.Setenv("DNS_API_SECRET", "test-secret")
	t.Setenv("DNS_TOKEN_URL", tokenServer.URL)
	t.Setenv("DNS_REPORT_URL", reportServer.URL)

	out := &bytes.Buffer{}
	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"report", "summary", "--from", "-2hours", "--size", "25"})
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})

	require.NoError(t, rootCmd.Execute())
	assert.JSONEq(t, `{"data":{"requests":42}}`, out.String())
}

func TestReportCmd_ExplicitZeroPage(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenServer.Close()

	reportServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer reportServer.Close()

	t.Setenv("DNS_API_KEY", "test-key")
	t.Setenv("DNS_API_SECRET", "test-secret")
	t.Setenv("DNS_TOKEN_URL", tokenServer.URL)
	t.Setenv("DNS_REPORT_URL", reportServer.URL)

	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"report", "activity", "--page", "0"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	require.NoError(t, rootCmd.Execute())
}

func TestTokenCmd_PrintsExpiry(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenServer.Close()

	t.Setenv("DNS_API_KEY", "test-key")
	t.Setenv("DNS_API_SECRET", "test-secret")
	t.Setenv("DNS_TOKEN_URL", tokenServer.URL)

	out := &bytes.Buffer{}
	rootCmd := buildRootCmd()
	rootCmd.SetArgs([]string{"token"})
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "token acquired, expires at")
}
