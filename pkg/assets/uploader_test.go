package assets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPUploader_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer file.Close()

		if !strings.HasSuffix(header.Filename, ".png") {
			t.Errorf("expected object name to keep the .png extension, got %q", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"url":"https://cdn.example.com/%s"}`, header.Filename)
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, 5*time.Second)

	url, err := uploader.Upload(context.Background(), "poster.png", "image/png", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Upload() unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/") {
		t.Errorf("expected CDN URL, got %q", url)
	}
}

func TestHTTPUploader_HostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, 5*time.Second)

	if _, err := uploader.Upload(context.Background(), "poster.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected an error when the asset host rejects the upload")
	}
}

func TestHTTPUploader_EmptyURLRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"url":""}`)
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, 5*time.Second)

	if _, err := uploader.Upload(context.Background(), "poster.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected an error when the asset host returns no URL")
	}
}
