// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MinCompressSize is the body size below which responses are sent as is.
// Error envelopes and health payloads stay well under it; recommendation
// lists with reasons and feature vectors are usually far above.
const MinCompressSize = 1024

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter holds the body back until it reaches minSize, then
// switches to gzip. Bodies that never reach minSize are written uncompressed
// by finish.
type gzipResponseWriter struct {
	http.ResponseWriter

	minSize int
	status  int
	buf     []byte

	gz          *gzip.Writer
	passthrough bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	switch {
	case w.gz != nil:
		return w.gz.Write(b)
	case w.passthrough:
		return w.ResponseWriter.Write(b)
	}

	w.buf = append(w.buf, b...)
	if len(w.buf) < w.minSize {
		return len(b), nil
	}
	if err := w.start(); err != nil {
		return 0, err
	}
	return len(b), nil
}

// start commits the headers and flushes the buffered body, compressed unless
// the handler already encoded it.
func (w *gzipResponseWriter) start() error {
	if w.Header().Get("Content-Encoding") != "" {
		w.passthrough = true
		w.ResponseWriter.WriteHeader(w.status)
		_, err := w.ResponseWriter.Write(w.buf)
		w.buf = nil
		return err
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(w.status)

	gz := gzipWriterPool.Get().(*gzip.Writer)
	gz.Reset(w.ResponseWriter)
	w.gz = gz

	_, err := gz.Write(w.buf)
	w.buf = nil
	return err
}

// finish completes the response after the handler returns.
func (w *gzipResponseWriter) finish() {
	if w.gz != nil {
		_ = w.gz.Close() // response already committed
		gzipWriterPool.Put(w.gz)
		w.gz = nil
		return
	}
	if w.passthrough || w.status == 0 {
		return
	}
	w.ResponseWriter.WriteHeader(w.status)
	if len(w.buf) > 0 {
		_, _ = w.ResponseWriter.Write(w.buf)
	}
}

// Compression gzips response bodies of at least MinCompressSize bytes for
// clients that accept gzip. HEAD requests pass through untouched.
func Compression(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
			next(w, r)
			return
		}

		w.Header().Add("Vary", "Accept-Encoding")
		gzw := &gzipResponseWriter{ResponseWriter: w, minSize: MinCompressSize}
		defer gzw.finish()
		next(gzw, r)
	}
}

// acceptsGzip reports whether an Accept-Encoding value lists gzip with a
// non-zero quality.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		q := strings.ReplaceAll(strings.TrimSpace(params), " ", "")
		return q != "q=0" && q != "q=0.0" && q != "q=0.00" && q != "q=0.000"
	}
	return false
}
