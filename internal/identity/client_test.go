package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPClientExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/1":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"userId":1}`))
		case "/internal/users/500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/", time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	tests := []struct {
		name    string
		userID  int64
		want    bool
		wantErr bool
	}{
		{"known user", 1, true, false},
		{"unknown user", 2, false, false},
		{"upstream failure", 500, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.Exists(context.Background(), tt.userID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Exists(%d) error = %v, wantErr %v", tt.userID, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("Exists(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

func TestHTTPClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewHTTPClient(url, 200*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Exists(context.Background(), 1); err == nil {
		t.Fatalf("expected error for unreachable identity service")
	}
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("identity.local", time.Second, nil); err == nil {
		t.Fatalf("expected error for relative url")
	}
}

func TestStatic(t *testing.T) {
	client := NewStatic(1, 2, 3)
	for id, want := range map[int64]bool{1: true, 3: true, 4: false, 0: false} {
		got, err := client.Exists(context.Background(), id)
		if err != nil {
			t.Fatalf("Exists(%d) error: %v", id, err)
		}
		if got != want {
			t.Fatalf("Exists(%d) = %v, want %v", id, got, want)
		}
	}
}
