package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/voxbridge/server/domain"
)

func TestMyMemoryTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("langpair"); got != "en|fr" {
			t.Errorf("langpair = %q, want en|fr", got)
		}
		if got := r.URL.Query().Get("q"); got != "Hello" {
			t.Errorf("q = %q, want Hello", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":   map[string]string{"translatedText": "Bonjour"},
			"responseStatus": 200,
		})
	}))
	defer server.Close()

	translator := NewMyMemoryTranslator(server.URL, zaptest.NewLogger(t))
	got, err := translator.Translate(context.Background(), "Hello", "en", "fr")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("Translate = %q, want Bonjour", got)
	}
}

func TestMyMemoryRejectsInvalidLangpair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// MyMemory reports langpair problems in-band, HTTP 200 with a
		// string status code.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":    map[string]string{"translatedText": "INVALID TARGET LANGUAGE"},
			"responseStatus":  "403",
			"responseDetails": "'XX' IS AN INVALID TARGET LANGUAGE",
		})
	}))
	defer server.Close()

	translator := NewMyMemoryTranslator(server.URL, zaptest.NewLogger(t))
	_, err := translator.Translate(context.Background(), "Hello", "en", "xx")
	if !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Fatalf("Expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestMyMemoryServerErrorIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	translator := NewMyMemoryTranslator(server.URL, zaptest.NewLogger(t))
	_, err := translator.Translate(context.Background(), "Hello", "en", "fr")
	if !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("Expected ErrUnreachable, got %v", err)
	}
}

func TestMyMemoryConnectionRefusedIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	translator := NewMyMemoryTranslator(server.URL, zaptest.NewLogger(t))
	_, err := translator.Translate(context.Background(), "Hello", "en", "fr")
	if !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("Expected ErrUnreachable, got %v", err)
	}
}

func TestMyMemoryRequiresLanguages(t *testing.T) {
	translator := NewMyMemoryTranslator("http://localhost:1", zaptest.NewLogger(t))
	if _, err := translator.Translate(context.Background(), "Hello", "", "fr"); !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Errorf("Expected ErrUnsupportedLanguage for empty source, got %v", err)
	}
	if _, err := translator.Translate(context.Background(), "Hello", "en", ""); !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Errorf("Expected ErrUnsupportedLanguage for empty target, got %v", err)
	}
}
