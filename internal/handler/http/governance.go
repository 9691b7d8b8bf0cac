package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/utils"
	"github.com/MKhiriev/go-vault-warden/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getDelay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))

	delay, err := h.services.DelayService.GetDelay(ctx, vaultID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDelay").Msg("error getting delay")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.DelayResponse{VaultID: vaultID, Delay: delay.String()}, http.StatusOK)
}

func (h *Handler) setDelay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, found := utils.GetCallerFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.setDelay").Msg("no caller address in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var body models.SetDelayRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.setDelay").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	newDelay, err := time.ParseDuration(body.Delay)
	if err != nil {
		log.Err(err).Str("func", "*Handler.setDelay").Str("delay", body.Delay).Msg("invalid delay duration")
		http.Error(w, "invalid delay duration", http.StatusBadRequest)
		return
	}

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))

	settings, err := h.services.DelayService.SetDelay(ctx, caller, vaultID, newDelay)
	if err != nil {
		log.Err(err).Str("func", "*Handler.setDelay").Msg("error setting delay")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.DelayResponse{VaultID: settings.VaultID, Delay: settings.Delay.String()}, http.StatusOK)
}

func (h *Handler) listProposers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))

	proposers, err := h.services.DelayService.ListProposers(ctx, vaultID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listProposers").Msg("error listing proposers")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, proposers, http.StatusOK)
}

func (h *Handler) addProposer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, found := utils.GetCallerFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.addProposer").Msg("no caller address in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var body models.ProposerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.addProposer").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))

	if err := h.services.DelayService.AddProposer(ctx, caller, vaultID, body.Address); err != nil {
		log.Err(err).Str("func", "*Handler.addProposer").Msg("error adding proposer")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) removeProposer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, found := utils.GetCallerFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.removeProposer").Msg("no caller address in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))
	address := models.Identity(chi.URLParam(r, "address"))

	if err := h.services.DelayService.RemoveProposer(ctx, caller, vaultID, address); err != nil {
		log.Err(err).Str("func", "*Handler.removeProposer").Msg("error removing proposer")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
