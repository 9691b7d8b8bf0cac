// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseData is a snapshot of a finished response, handed to the access
// log after the downstream handler returns.
type responseData struct {
	status int
	size   int

	// body keeps only the slice from the most recent Write call.
	body []byte
}

// responseWriter decorates [http.ResponseWriter] to record the status code
// and the number of body bytes written. WriteHeader is forwarded at most
// once; later calls are ignored, matching the stdlib contract.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
	body        []byte
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards to the underlying writer, implying a 200 when no status
// has been set yet. size accumulates across calls; body does not.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	w.body = b
	return n, err
}
