package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/utils"
	"github.com/MKhiriev/go-vault-warden/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) propose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, found := utils.GetCallerFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.propose").Msg("no caller address in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var body models.ProposeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.propose").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))

	request, err := h.services.GatewayService.Propose(ctx, caller, vaultID, body.Payload, body.Proof)
	if err != nil {
		log.Err(err).Str("func", "*Handler.propose").Msg("error proposing request")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, request, http.StatusCreated)
}

func (h *Handler) getRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))
	requestID := chi.URLParam(r, "requestID")

	request, err := h.services.GatewayService.GetRequest(ctx, vaultID, requestID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRequest").Msg("error getting request")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, request, http.StatusOK)
}

func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))

	var filter models.RequestFilter
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = models.RequestStatus(status)
	}
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			log.Error().Str("func", "*Handler.listRequests").Str("limit", limitParam).Msg("invalid limit parameter")
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	requests, err := h.services.GatewayService.ListRequests(ctx, vaultID, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRequests").Msg("error listing requests")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, requests, http.StatusOK)
}

func (h *Handler) trigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, found := utils.GetCallerFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.trigger").Msg("no caller address in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))
	requestID := chi.URLParam(r, "requestID")

	request, err := h.services.GatewayService.Trigger(ctx, caller, vaultID, requestID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.trigger").Msg("error triggering request")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, request, http.StatusOK)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	caller, found := utils.GetCallerFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.cancel").Msg("no caller address in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	vaultID := models.Identity(chi.URLParam(r, "vaultID"))
	requestID := chi.URLParam(r, "requestID")

	request, err := h.services.GatewayService.Cancel(ctx, caller, vaultID, requestID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.cancel").Msg("error cancelling request")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, request, http.StatusOK)
}
