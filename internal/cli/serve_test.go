package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/themizzi/shopflow/internal/config"
)

// stubHandler answers every request with name
func stubHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	})
}

func stubDeps(port string) ServerDependencies {
	return ServerDependencies{
		ServerConfig:     config.ServerConfig{Port: port},
		HomeHandler:      stubHandler("home"),
		CatalogHandler:   stubHandler("catalog"),
		ProductHandler:   stubHandler("product"),
		BasketHandler:    stubHandler("basket"),
		BasketAPIHandler: stubHandler("basket-api"),
	}
}

func get(t *testing.T, url string) (string, int) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func TestNewMux_Routes(t *testing.T) {
	mux := NewMux(stubDeps("0"))

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/", "home"},
		{http.MethodGet, "/catalog/0/search.aspx?search=nike", "catalog"},
		{http.MethodGet, "/catalog/0/search.aspx?search=146972815", "catalog"},
		{http.MethodGet, "/catalog/146972815/detail.aspx", "product"},
		{http.MethodGet, "/lk/basket", "basket"},
		{http.MethodPost, "/api/basket", "basket-api"},
		{http.MethodGet, "/security/captcha", "home"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Body.String() != tt.want {
				t.Errorf("%s routed to %q, want %q", tt.path, rr.Body.String(), tt.want)
			}
		})
	}
}

func TestNewMux_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "storefront.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("Failed to write static file: %v", err)
	}

	deps := stubDeps("0")
	deps.ServerConfig.StaticDir = dir
	mux := NewMux(deps)

	tests := []struct {
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{path: "/static/storefront.css", expectedStatus: http.StatusOK, expectedBody: "body{}"},
		{path: "/static/missing.css", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if tt.expectedBody != "" && rr.Body.String() != tt.expectedBody {
				t.Errorf("Expected %q, got %q", tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestStartServer(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve a port: %v", err)
	}
	defer busy.Close()

	tests := []struct {
		name    string
		port    string
		wantErr bool
	}{
		{name: "ephemeral port", port: "0"},
		{name: "port out of range", port: "99999", wantErr: true},
		{name: "port in use", port: fmt.Sprintf("%d", busy.Addr().(*net.TCPAddr).Port), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listener, server, err := StartServer(stubDeps(tt.port))
			if tt.wantErr {
				if err == nil {
					listener.Close()
					server.Close()
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("StartServer() error = %v", err)
			}
			defer listener.Close()
			defer server.Close()

			port := listener.Addr().(*net.TCPAddr).Port
			body, status := get(t, fmt.Sprintf("http://127.0.0.1:%d/lk/basket", port))
			if status != http.StatusOK || body != "basket" {
				t.Errorf("GET /lk/basket = %d %q", status, body)
			}
		})
	}
}

func TestWaitForShutdown_DrainsOpenRequests(t *testing.T) {
	// GIVEN a basket page that is slow to render
	deps := stubDeps("0")
	deps.BasketHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		w.Write([]byte("basket"))
	})
	listener, server, err := StartServer(deps)
	if err != nil {
		t.Fatalf("StartServer() error = %v", err)
	}
	defer listener.Close()
	url := fmt.Sprintf("http://127.0.0.1:%d/lk/basket", listener.Addr().(*net.TCPAddr).Port)

	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := http.Get(url)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		done <- result{body: string(body)}
	}()
	time.Sleep(50 * time.Millisecond)

	// WHEN the run context is cancelled mid-request
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- WaitForShutdown(ctx, server, 5*time.Second) }()
	cancel()

	// THEN the open request still completes and shutdown reports no error
	select {
	case r := <-done:
		if r.err != nil || r.body != "basket" {
			t.Errorf("open request = %q, %v", r.body, r.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("open request did not complete")
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("WaitForShutdown() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not return")
	}

	if _, err := http.Get(url); err == nil {
		t.Error("server still answering after shutdown")
	}
}

func TestRunServe(t *testing.T) {
	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		if err := RunServe(ctx, stubDeps("0")); err != nil {
			t.Errorf("RunServe() error = %v", err)
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		if err := RunServe(context.Background(), stubDeps("99999")); err == nil {
			t.Error("Expected error for invalid port, got nil")
		}
	})
}
