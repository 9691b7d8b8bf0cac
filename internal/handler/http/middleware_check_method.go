// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is meant to be installed via [chi.Mux.MethodNotAllowed].
// Instead of chi's default 405 it answers 404 when the matched route does
// not handle the request's method, so an unsupported method cannot probe
// which paths exist. Requests whose method is registered go through the
// router's normal pipeline.
//
// Route lookup compares each registered pattern against the raw request
// path; parameterised segments are not expanded here, which is fine for
// the probe-hiding purpose.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
