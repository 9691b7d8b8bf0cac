package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.pinger == nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	if err := h.pinger.PingContext(r.Context()); err != nil {
		log.Err(err).Msg("database ping failed")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}
