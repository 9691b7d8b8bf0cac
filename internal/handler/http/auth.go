package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/service"
	"github.com/MKhiriev/go-vault-warden/models"
)

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	// The gateway itself holds no credentials; the deployment's front door is
	// expected to have verified control of the address before this endpoint
	// is reachable.
	var body models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, body.Address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid address provided")
			http.Error(w, "invalid address provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("creation of token failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}
