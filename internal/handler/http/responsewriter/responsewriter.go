// Package responsewriter records the status line and body size of a response
// so the logging, metrics and tracing middleware can report them.
package responsewriter

import "net/http"

// ResponseWriter is an http.ResponseWriter that remembers what it sent.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
	sent   bool
}

// Wrap reuses w when it is already a *ResponseWriter so every layer of the
// middleware chain observes the same counters.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards only the first status; later calls are dropped.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.sent {
		return
	}
	w.status, w.sent = code, true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(p []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(p)
	w.size += n
	return n, err
}

// Flush passes through to the wrapped writer when it supports streaming.
func (w *ResponseWriter) Flush() {
	w.WriteHeader(http.StatusOK)
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *ResponseWriter) StatusCode() int     { return w.status }
func (w *ResponseWriter) BytesWritten() int   { return w.size }
func (w *ResponseWriter) HeaderWritten() bool { return w.sent }

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
