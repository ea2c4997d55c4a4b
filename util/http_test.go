package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlePrefix(t *testing.T) {

	mux := http.NewServeMux()
	HandlePrefix(mux, "/app/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello/" {
			t.Errorf("got path %q, want the prefix stripped", r.URL.Path)
		}
		http.Redirect(w, r, "/articles/", http.StatusSeeOther)
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/app/hello/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/app/articles/" {
		t.Errorf("got location %q, want %q", loc, "/app/articles/")
	}
}

func TestHandlePrefixEmpty(t *testing.T) {

	mux := http.NewServeMux()
	HandlePrefix(mux, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/articles/", http.StatusSeeOther)
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/anything/", nil))

	if loc := rec.Header().Get("Location"); loc != "/articles/" {
		t.Errorf("got location %q, locations must stay untouched without a prefix", loc)
	}
}
