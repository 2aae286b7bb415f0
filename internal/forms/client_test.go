package forms

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, seen *map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if seen != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, seen))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Submit(t *testing.T) {
	var seen map[string]string
	srv := newServer(t, http.StatusOK, `{"success":true}`, &seen)

	err := NewClient(srv.URL, time.Second).Submit(context.Background(), map[string]string{
		"name":  "Jane",
		"email": "jane@college.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@college.edu", seen["email"])
}

func TestClient_SubmitFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server error", http.StatusInternalServerError, `{}`, "status 500"},
		{"not json", http.StatusOK, `<html>ok</html>`, "decode response"},
		{"rejected", http.StatusOK, `{"success":false,"error":"sheet full"}`, "sheet full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)
			err := NewClient(srv.URL, time.Second).Submit(context.Background(), map[string]string{"a": "b"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClient_NotConfigured(t *testing.T) {
	err := NewClient("", time.Second).Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = Router{}.Submit(context.Background(), KindSponsor, nil)
	assert.Error(t, err)
}
