package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/equity-insight/internal/extract"
	"github.com/jonathan/equity-insight/internal/research"
	"github.com/jonathan/equity-insight/internal/types"
)

// fakeFetcher records calls and returns a canned report or error
type fakeFetcher struct {
	report    *types.Report
	err       error
	calls     int
	lastQuery string
}

func (f *fakeFetcher) FetchReport(_ context.Context, companyName string) (*types.Report, error) {
	f.calls++
	f.lastQuery = companyName
	return f.report, f.err
}

func newTestServer(t *testing.T, fetcher ReportFetcher) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	s, err := New(Config{Port: 0, Fetcher: fetcher, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return s
}

func postReport(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateReportSuccess(t *testing.T) {
	fetcher := &fakeFetcher{
		report: &types.Report{
			Banner:  types.Banner{CompanyName: "Acme Corp"},
			Sources: []string{"A"},
		},
	}
	s := newTestServer(t, fetcher)

	rec := postReport(s, `{"company": "  Acme Corp "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Acme Corp", fetcher.lastQuery, "company name must be trimmed before the pipeline")

	var report types.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "Acme Corp", report.Banner.CompanyName)
	assert.Equal(t, []string{"A"}, report.Sources)
}

func TestCreateReportInvalidBody(t *testing.T) {
	fetcher := &fakeFetcher{}
	s := newTestServer(t, fetcher)

	rec := postReport(s, `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, fetcher.calls)
}

func TestCreateReportEmptyCompany(t *testing.T) {
	tests := []string{
		`{"company": ""}`,
		`{"company": "   "}`,
		`{}`,
	}

	for _, body := range tests {
		t.Run(body, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			s := newTestServer(t, fetcher)

			rec := postReport(s, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, fetcher.calls, "validation failures must not reach the pipeline")
		})
	}
}

func TestCreateReportPipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{
			name:       "content blocked",
			err:        &research.ContentBlockedError{Reason: "SAFETY"},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "content_blocked",
		},
		{
			name:       "malformed response",
			err:        &extract.MalformedResponseError{Message: "no JSON object found", RawText: "raw model output"},
			wantStatus: http.StatusBadGateway,
			wantKind:   "malformed_response",
		},
		{
			name:       "incomplete data",
			err:        &extract.IncompleteDataError{Missing: []string{"banner"}},
			wantStatus: http.StatusBadGateway,
			wantKind:   "incomplete_data",
		},
		{
			name:       "upstream failure",
			err:        &research.UpstreamError{Message: "timeout"},
			wantStatus: http.StatusBadGateway,
			wantKind:   "upstream_error",
		},
		{
			name:       "configuration error",
			err:        &research.ConfigurationError{Message: "GEMINI_API_KEY is not set"},
			wantStatus: http.StatusInternalServerError,
			wantKind:   "configuration_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeFetcher{err: tt.err})

			rec := postReport(s, `{"company": "Acme Corp"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body["error"])
			assert.Equal(t, research.UserMessage(tt.err), body["message"])
		})
	}
}

func TestCreateReportDoesNotLeakDiagnostics(t *testing.T) {
	err := &extract.MalformedResponseError{
		Message: "response is not valid JSON",
		RawText: `{"banner": secret internal text`,
		Cause:   errors.New("invalid character 's'"),
	}
	s := newTestServer(t, &fakeFetcher{err: err})

	rec := postReport(s, `{"company": "Acme Corp"}`)

	assert.NotContains(t, rec.Body.String(), "secret internal text")
	assert.NotContains(t, rec.Body.String(), "invalid character")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeFetcher{})

	req := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiting(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_LIMIT", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "1h")
	t.Setenv("RATE_LIMIT_BURST", "1")

	fetcher := &fakeFetcher{report: &types.Report{}}
	s, err := New(Config{Port: 0, Fetcher: fetcher, Logger: zerolog.Nop()})
	require.NoError(t, err)

	first := postReport(s, `{"company": "Acme Corp"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postReport(s, `{"company": "Acme Corp"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// Health stays reachable when the client is limited
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRequiresFetcher(t *testing.T) {
	_, err := New(Config{Port: 0, Logger: zerolog.Nop()})
	assert.Error(t, err)
}
