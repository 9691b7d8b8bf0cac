// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter implements clients for external collaborator services.
// Its only member today is the vault daemon client, which answers ownership
// queries and performs the privileged module calls the warden schedules.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
)

// Errors returned by the vault daemon client. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrVaultUnreachable is returned when the vault daemon cannot be
	// reached or answers with a transport-level failure.
	ErrVaultUnreachable = errors.New("vault daemon unreachable")

	// ErrVaultBadResponse is returned when the vault daemon answers with an
	// unexpected status code or an undecodable body.
	ErrVaultBadResponse = errors.New("unexpected vault daemon response")
)

// ownerResponse is the body of GET /api/vault/{vault}/owner/{identity}.
type ownerResponse struct {
	Owner bool `json:"owner"`
}

// executeRequest is the body of POST /api/vault/{vault}/module-execute.
type executeRequest struct {
	Target   models.Identity `json:"target"`
	Value    string          `json:"value"`
	Data     []byte          `json:"data"`
	CallKind models.CallKind `json:"call_kind"`
}

// executeResponse is the body returned by the module-execute endpoint.
// By contract the daemon reports execution failure here, not via HTTP status.
type executeResponse struct {
	Success bool `json:"success"`
}

// Retry settings for the read-side client. Ownership queries are idempotent,
// so transient daemon hiccups are retried a couple of times with a short wait.
const (
	readRetryCount    = 2
	readRetryWaitTime = 100 * time.Millisecond
)

// vaultClient is the resty-backed implementation of [VaultClient]. It holds
// two clients: readClient retries transient failures, execClient never does.
type vaultClient struct {
	readClient *resty.Client
	execClient *resty.Client
	logger     *logger.Logger
}

// NewVaultClient constructs a [VaultClient] talking to the vault daemon
// configured in cfg.
//
// Retries apply to ownership queries only; Execute is sent with retries
// disabled because the call is not idempotent on the daemon side.
func NewVaultClient(cfg config.Adapter, log *logger.Logger) VaultClient {
	newClient := func() *resty.Client {
		return resty.New().
			SetBaseURL(cfg.VaultBaseURL).
			SetTimeout(cfg.RequestTimeout).
			SetHeader("Accept", "application/json")
	}

	readClient := newClient().
		SetRetryCount(readRetryCount).
		SetRetryWaitTime(readRetryWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	log.Debug().Str("base_url", cfg.VaultBaseURL).Msg("creating vault daemon client")

	return &vaultClient{
		readClient: readClient,
		execClient: newClient(),
		logger:     log,
	}
}

// IsOwner implements [VaultClient]. It performs a live membership query
// against the vault daemon.
func (v *vaultClient) IsOwner(ctx context.Context, vaultID, identity models.Identity) (bool, error) {
	log := logger.FromContext(ctx)

	var body ownerResponse
	resp, err := v.readClient.R().
		SetContext(ctx).
		SetResult(&body).
		SetPathParam("vault", vaultID.String()).
		SetPathParam("identity", identity.String()).
		Get("/api/vault/{vault}/owner/{identity}")
	if err != nil {
		log.Err(err).
			Str("func", "vaultClient.IsOwner").
			Str("vault_id", vaultID.String()).
			Str("identity", identity.String()).
			Msg("failed to query vault ownership")
		return false, fmt.Errorf("%w: %w", ErrVaultUnreachable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		log.Error().
			Str("func", "vaultClient.IsOwner").
			Str("vault_id", vaultID.String()).
			Int("status", resp.StatusCode()).
			Msg("vault daemon returned unexpected status for ownership query")
		return false, fmt.Errorf("%w: status %d", ErrVaultBadResponse, resp.StatusCode())
	}

	return body.Owner, nil
}

// Execute implements [VaultClient]. It asks the daemon to perform the
// privileged module call described by payload on behalf of the vault.
//
// A false return with nil error is the daemon's in-band failure report: the
// call was attempted and did not succeed. The warden has already committed
// the request as executed by the time this method is called.
func (v *vaultClient) Execute(ctx context.Context, vaultID models.Identity, payload models.Payload) (bool, error) {
	log := logger.FromContext(ctx)

	var body executeResponse
	resp, err := v.execClient.R().
		SetContext(ctx).
		SetBody(executeRequest{
			Target:   payload.Target,
			Value:    payload.Value,
			Data:     payload.Data,
			CallKind: payload.CallKind,
		}).
		SetResult(&body).
		SetPathParam("vault", vaultID.String()).
		Post("/api/vault/{vault}/module-execute")
	if err != nil {
		log.Err(err).
			Str("func", "vaultClient.Execute").
			Str("vault_id", vaultID.String()).
			Str("target", payload.Target.String()).
			Msg("failed to reach vault daemon for module execution")
		return false, fmt.Errorf("%w: %w", ErrVaultUnreachable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		log.Error().
			Str("func", "vaultClient.Execute").
			Str("vault_id", vaultID.String()).
			Int("status", resp.StatusCode()).
			Msg("vault daemon returned unexpected status for module execution")
		return false, fmt.Errorf("%w: status %d", ErrVaultBadResponse, resp.StatusCode())
	}

	log.Info().
		Str("func", "vaultClient.Execute").
		Str("vault_id", vaultID.String()).
		Str("target", payload.Target.String()).
		Bool("success", body.Success).
		Msg("vault module execution completed")

	return body.Success, nil
}
