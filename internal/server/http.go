package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
)

type httpServer struct {
	server *http.Server
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	logger.Debug().Str("address", cfg.HTTPAddress).Msg("creating HTTP server")

	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.RequestTimeout, "request timed out")
	}

	return &httpServer{
		server: &http.Server{
			Addr:    cfg.HTTPAddress,
			Handler: handler,
		},
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil {
		fmt.Printf("HTTP server ListenAndServe: %v\n", err)
	}
}

func (h *httpServer) Shutdown() {
	if err := h.server.Shutdown(context.Background()); h.server != nil && err != nil {
		// listener close errors only
		fmt.Printf("HTTP server Shutdown: %v\n", err)
	}
}
