package util

import (
	"net/http"
	"strings"
)

// prefixedResponseWriter re-adds a stripped URL prefix to absolute redirect
// locations, so handlers can redirect without knowing about the prefix.
type prefixedResponseWriter struct {
	http.ResponseWriter
	prefix string // without trailing slash
}

// WriteHeader shadows and calls http.ResponseWriter.WriteHeader.
func (w prefixedResponseWriter) WriteHeader(statusCode int) {
	// absolute locations only, relative ones resolve on their own
	if w.prefix != "" {
		if location := w.Header().Get("Location"); len(location) > 0 && location[0] == '/' {
			w.Header().Set("Location", w.prefix+location)
		}
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

// HandlePrefix registers the handler on the mux under the given prefix.
// The prefix is stripped from incoming request paths and prepended to
// absolute Location headers on the way out.
func HandlePrefix(mux *http.ServeMux, prefix string, handler http.Handler) {
	prefix = strings.TrimSuffix(prefix, "/")
	mux.Handle(
		prefix+"/", // http mux needs the trailing slash
		http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(prefixedResponseWriter{w, prefix}, r)
		})),
	)
}
