package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Status returns the written status code.
func (w *statusResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func wrap(w http.ResponseWriter) *statusResponseWriter {
	if sw, ok := w.(*statusResponseWriter); ok {
		return sw
	}
	return &statusResponseWriter{ResponseWriter: w}
}

// logRequest logs method, path, status and duration of every request.
func logRequest(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := wrap(w)
		h.ServeHTTP(sw, r)
		addr := r.Header.Get("X-Real-IP")
		if addr == "" {
			addr = r.Header.Get("X-Forwarded-For")
			if addr == "" {
				addr = r.RemoteAddr
			}
		}
		log.Debug().Str("method", r.Method).Int("status", sw.Status()).Str("path", r.URL.Path).
			Str("addr", addr).Str("duration", time.Since(start).String()).Msg("http request")
	})
}

func (s *Server) instrument(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := wrap(w)
		h.ServeHTTP(sw, r)
		s.metrics.ObserveRequest(r.URL.Path, r.Method, sw.Status())
	})
}

// recoverPanic turns a handler panic into a 500 so one bad request cannot
// stop the server.
func recoverPanic(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		h.ServeHTTP(w, r)
	})
}
