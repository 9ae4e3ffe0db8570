package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveAuth(keys []string, header string) *httptest.ResponseRecorder {
	handler := BearerAuthMiddleware(keys)(okHandler())

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware_EmptyKeys_PassThrough(t *testing.T) {
	if rr := serveAuth(nil, ""); rr.Code != http.StatusOK {
		t.Errorf("empty keys: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_EmptyStringKeys_PassThrough(t *testing.T) {
	if rr := serveAuth([]string{"", ""}, ""); rr.Code != http.StatusOK {
		t.Errorf("empty string keys: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_MissingHeader_401(t *testing.T) {
	rr := serveAuth([]string{"secret"}, "")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != ErrorCodeUnauthorized {
		t.Errorf("error code: got %s, want %s", errResp.Code, ErrorCodeUnauthorized)
	}
}

func TestAuthMiddleware_BasicScheme_401(t *testing.T) {
	if rr := serveAuth([]string{"secret"}, "Basic dXNlcjpwYXNz"); rr.Code != http.StatusUnauthorized {
		t.Errorf("basic scheme: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_InvalidToken_401(t *testing.T) {
	for _, h := range []string{"Bearer wrong-key", "Bearer secre", "Bearer secret2", "Bearer "} {
		if rr := serveAuth([]string{"secret"}, h); rr.Code != http.StatusUnauthorized {
			t.Errorf("%q: got %d, want %d", h, rr.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthMiddleware_ValidToken_200(t *testing.T) {
	if rr := serveAuth([]string{"secret"}, "Bearer secret"); rr.Code != http.StatusOK {
		t.Errorf("valid token: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_MultipleKeys(t *testing.T) {
	for _, key := range []string{"key1", "key2"} {
		if rr := serveAuth([]string{"key1", "key2"}, "Bearer "+key); rr.Code != http.StatusOK {
			t.Errorf("key %s: got %d, want %d", key, rr.Code, http.StatusOK)
		}
	}
}
