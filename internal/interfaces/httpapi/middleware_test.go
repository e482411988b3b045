package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/hockey-league/internal/usecase"
)

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("unconfigured token", func(t *testing.T) {
		guarded := RequireInternalJobToken("", next)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		guarded := RequireInternalJobToken("tok", next)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		guarded := RequireInternalJobToken("tok", next)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil)
		req.Header.Set("X-Internal-Job-Token", "wrong")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if nextCalled {
			t.Fatal("next must not run on a rejected token")
		}
	})

	t.Run("valid token", func(t *testing.T) {
		guarded := RequireInternalJobToken("tok", next)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/daily-sync", nil)
		req.Header.Set("X-Internal-Job-Token", "tok")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || !nextCalled {
			t.Fatalf("status = %d nextCalled = %v, want 200/true", rec.Code, nextCalled)
		}
	})
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{usecase.ErrConfiguration, http.StatusUnprocessableEntity, "unresolvedConfiguration"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{errors.New("anything else"), http.StatusInternalServerError, "internalError"},
	}
	for _, tc := range tests {
		mapped := mapError(tc.err)
		if mapped.HTTPStatus != tc.wantStatus || mapped.Reason != tc.wantReason {
			t.Fatalf("mapError(%v) = %+v, want %d/%s", tc.err, mapped, tc.wantStatus, tc.wantReason)
		}
	}

	// Wrapped sentinels still map.
	wrapped := mapError(errors.Join(errors.New("ctx"), usecase.ErrNotFound))
	if wrapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("wrapped mapError = %+v, want 404", wrapped)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	if shouldTraceRequest("/healthz") || shouldTraceRequest("/readyz") {
		t.Fatal("health probes must not be traced")
	}
	if !shouldTraceRequest("/v1/weeks/2526-w01/matchups") {
		t.Fatal("api routes must be traced")
	}
}
