// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/service"
	"github.com/MKhiriev/go-vault-warden/models"
)

const (
	testVault    = models.Identity("0x00112233445566778899aabbccddeeff00112233")
	testCaller   = models.Identity("0xaaaabbbbccccddddeeeeffff0000111122223333")
	testTarget   = models.Identity("0xffeeddccbbaa99887766554433221100ffeeddcc")
	testReqID    = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"
	testToken    = "test-token"
	testAuthnHdr = "Bearer " + testToken
)

// ─────────────────────────────────────────────
// Mock: service.GatewayService
// ─────────────────────────────────────────────

type mockGatewayService struct {
	proposeFn func(ctx context.Context, caller models.Identity, vaultID models.Identity, payload models.Payload, proof *models.Proof) (models.Request, error)
	triggerFn func(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error)
	cancelFn  func(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error)
	getFn     func(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error)
	listFn    func(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error)
}

func (m *mockGatewayService) Propose(ctx context.Context, caller models.Identity, vaultID models.Identity, payload models.Payload, proof *models.Proof) (models.Request, error) {
	if m.proposeFn != nil {
		return m.proposeFn(ctx, caller, vaultID, payload, proof)
	}
	return models.Request{}, nil
}

func (m *mockGatewayService) Trigger(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error) {
	if m.triggerFn != nil {
		return m.triggerFn(ctx, caller, vaultID, requestID)
	}
	return models.Request{}, nil
}

func (m *mockGatewayService) Cancel(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error) {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, caller, vaultID, requestID)
	}
	return models.Request{}, nil
}

func (m *mockGatewayService) GetRequest(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error) {
	if m.getFn != nil {
		return m.getFn(ctx, vaultID, requestID)
	}
	return models.Request{}, nil
}

func (m *mockGatewayService) ListRequests(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error) {
	if m.listFn != nil {
		return m.listFn(ctx, vaultID, filter)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.DelayService
// ─────────────────────────────────────────────

type mockDelayService struct {
	getDelayFn       func(ctx context.Context, vaultID models.Identity) (time.Duration, error)
	setDelayFn       func(ctx context.Context, caller models.Identity, vaultID models.Identity, newDelay time.Duration) (models.VaultSettings, error)
	addProposerFn    func(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error
	removeProposerFn func(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error
	listProposersFn  func(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error)
}

func (m *mockDelayService) GetDelay(ctx context.Context, vaultID models.Identity) (time.Duration, error) {
	if m.getDelayFn != nil {
		return m.getDelayFn(ctx, vaultID)
	}
	return time.Hour, nil
}

func (m *mockDelayService) SetDelay(ctx context.Context, caller models.Identity, vaultID models.Identity, newDelay time.Duration) (models.VaultSettings, error) {
	if m.setDelayFn != nil {
		return m.setDelayFn(ctx, caller, vaultID, newDelay)
	}
	return models.VaultSettings{VaultID: vaultID, Delay: newDelay}, nil
}

func (m *mockDelayService) AddProposer(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error {
	if m.addProposerFn != nil {
		return m.addProposerFn(ctx, caller, vaultID, address)
	}
	return nil
}

func (m *mockDelayService) RemoveProposer(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error {
	if m.removeProposerFn != nil {
		return m.removeProposerFn(ctx, caller, vaultID, address)
	}
	return nil
}

func (m *mockDelayService) ListProposers(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error) {
	if m.listProposersFn != nil {
		return m.listProposersFn(ctx, vaultID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	createTokenFn func(ctx context.Context, address models.Identity) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) CreateToken(ctx context.Context, address models.Identity) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, address)
	}
	return models.Token{SignedString: testToken, Address: address}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	if tokenString != testToken {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{SignedString: tokenString, Address: testCaller}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(ctx context.Context) string {
	if m.version == "" {
		return "0.0.0-test"
	}
	return m.version
}

// ─────────────────────────────────────────────
// Mock: Pinger
// ─────────────────────────────────────────────

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

type testHandlerDeps struct {
	gateway *mockGatewayService
	delays  *mockDelayService
	auth    *mockAuthService
	pinger  *mockPinger
}

func newTestHandler() (*Handler, *testHandlerDeps) {
	deps := &testHandlerDeps{
		gateway: &mockGatewayService{},
		delays:  &mockDelayService{},
		auth:    &mockAuthService{},
		pinger:  &mockPinger{},
	}

	services := &service.Services{
		GatewayService: deps.gateway,
		DelayService:   deps.delays,
		AuthService:    deps.auth,
		AppInfoService: &mockAppInfoService{},
	}

	return NewHandler(services, deps.pinger, logger.Nop()), deps
}

func pendingRequest() models.Request {
	return models.Request{
		VaultID:   testVault,
		RequestID: testReqID,
		Payload: models.Payload{
			Target:   testTarget,
			Value:    "10",
			CallKind: models.CallKindCall,
		},
		Status:     models.RequestStatusPending,
		ProposedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}
