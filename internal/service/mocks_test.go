// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/MKhiriev/go-vault-warden/models"
)

// ─────────────────────────────────────────────
// Mock: store.RequestRepository
// ─────────────────────────────────────────────

type mockRequestRepository struct {
	createFn        func(ctx context.Context, request models.Request) (models.Request, error)
	getFn           func(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error)
	listFn          func(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error)
	markExecutedFn  func(ctx context.Context, vaultID models.Identity, requestID string) error
	markCancelledFn func(ctx context.Context, vaultID models.Identity, requestID string) error
}

func (m *mockRequestRepository) CreateRequest(ctx context.Context, request models.Request) (models.Request, error) {
	if m.createFn != nil {
		return m.createFn(ctx, request)
	}
	return request, nil
}

func (m *mockRequestRepository) GetRequest(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error) {
	if m.getFn != nil {
		return m.getFn(ctx, vaultID, requestID)
	}
	return models.Request{}, store.ErrRequestNotFound
}

func (m *mockRequestRepository) ListRequests(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error) {
	if m.listFn != nil {
		return m.listFn(ctx, vaultID, filter)
	}
	return nil, nil
}

func (m *mockRequestRepository) MarkExecuted(ctx context.Context, vaultID models.Identity, requestID string) error {
	if m.markExecutedFn != nil {
		return m.markExecutedFn(ctx, vaultID, requestID)
	}
	return nil
}

func (m *mockRequestRepository) MarkCancelled(ctx context.Context, vaultID models.Identity, requestID string) error {
	if m.markCancelledFn != nil {
		return m.markCancelledFn(ctx, vaultID, requestID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Fake: in-memory request registry
// ─────────────────────────────────────────────

// fakeRequestRegistry implements store.RequestRepository with real duplicate
// and transition semantics, for lifecycle scenarios spanning several calls.
type fakeRequestRegistry struct {
	mu       sync.Mutex
	nextID   int64
	requests map[string]*models.Request // key: vaultID + "/" + requestID
}

func newFakeRequestRegistry() *fakeRequestRegistry {
	return &fakeRequestRegistry{requests: make(map[string]*models.Request)}
}

func registryKey(vaultID models.Identity, requestID string) string {
	return string(vaultID) + "/" + requestID
}

func (f *fakeRequestRegistry) CreateRequest(ctx context.Context, request models.Request) (models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := registryKey(request.VaultID, request.RequestID)
	if _, exists := f.requests[key]; exists {
		return models.Request{}, store.ErrDuplicateRequest
	}

	f.nextID++
	request.ID = f.nextID
	stored := request
	f.requests[key] = &stored

	return request, nil
}

func (f *fakeRequestRegistry) GetRequest(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, exists := f.requests[registryKey(vaultID, requestID)]
	if !exists {
		return models.Request{}, store.ErrRequestNotFound
	}

	return *stored, nil
}

func (f *fakeRequestRegistry) ListRequests(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var requests []models.Request
	for _, stored := range f.requests {
		if stored.VaultID != vaultID {
			continue
		}
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		requests = append(requests, *stored)
	}

	return requests, nil
}

func (f *fakeRequestRegistry) MarkExecuted(ctx context.Context, vaultID models.Identity, requestID string) error {
	return f.finalize(vaultID, requestID, models.RequestStatusExecuted)
}

func (f *fakeRequestRegistry) MarkCancelled(ctx context.Context, vaultID models.Identity, requestID string) error {
	return f.finalize(vaultID, requestID, models.RequestStatusCancelled)
}

func (f *fakeRequestRegistry) finalize(vaultID models.Identity, requestID string, status models.RequestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, exists := f.requests[registryKey(vaultID, requestID)]
	if !exists {
		return store.ErrRequestNotFound
	}
	if stored.Status != models.RequestStatusPending {
		return store.ErrInvalidTransition
	}

	now := time.Now()
	stored.Status = status
	stored.FinalizedAt = &now

	return nil
}

// ─────────────────────────────────────────────
// Mock: store.SettingsRepository
// ─────────────────────────────────────────────

type mockSettingsRepository struct {
	getFn    func(ctx context.Context, vaultID models.Identity) (models.VaultSettings, error)
	upsertFn func(ctx context.Context, vaultID models.Identity, delay time.Duration) (models.VaultSettings, error)
}

func (m *mockSettingsRepository) GetSettings(ctx context.Context, vaultID models.Identity) (models.VaultSettings, error) {
	if m.getFn != nil {
		return m.getFn(ctx, vaultID)
	}
	return models.VaultSettings{}, store.ErrSettingsNotFound
}

func (m *mockSettingsRepository) UpsertDelay(ctx context.Context, vaultID models.Identity, delay time.Duration) (models.VaultSettings, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, vaultID, delay)
	}
	return models.VaultSettings{VaultID: vaultID, Delay: delay, UpdatedAt: time.Now()}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ProposerRepository
// ─────────────────────────────────────────────

type mockProposerRepository struct {
	addFn        func(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error)
	removeFn     func(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error)
	isProposerFn func(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error)
	listFn       func(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error)
}

func (m *mockProposerRepository) AddProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
	if m.addFn != nil {
		return m.addFn(ctx, vaultID, address)
	}
	return true, nil
}

func (m *mockProposerRepository) RemoveProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
	if m.removeFn != nil {
		return m.removeFn(ctx, vaultID, address)
	}
	return true, nil
}

func (m *mockProposerRepository) IsProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
	if m.isProposerFn != nil {
		return m.isProposerFn(ctx, vaultID, address)
	}
	return false, nil
}

func (m *mockProposerRepository) ListProposers(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error) {
	if m.listFn != nil {
		return m.listFn(ctx, vaultID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.EventRepository
// ─────────────────────────────────────────────

type mockEventRepository struct {
	mu     sync.Mutex
	events []models.Event

	createFn func(ctx context.Context, event models.Event) error
}

func (m *mockEventRepository) CreateEvent(ctx context.Context, event models.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepository) GetUndispatched(ctx context.Context, limit int) ([]models.Event, error) {
	return nil, nil
}

func (m *mockEventRepository) MarkDispatched(ctx context.Context, eventIDs []string, dispatchedAt time.Time) error {
	return nil
}

func (m *mockEventRepository) recorded() []models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Event(nil), m.events...)
}

// ─────────────────────────────────────────────
// Mock: adapter.VaultClient
// ─────────────────────────────────────────────

type mockVaultClient struct {
	mu           sync.Mutex
	executeCalls []models.Payload

	isOwnerFn func(ctx context.Context, vaultID models.Identity, identity models.Identity) (bool, error)
	executeFn func(ctx context.Context, vaultID models.Identity, payload models.Payload) (bool, error)
}

func (m *mockVaultClient) IsOwner(ctx context.Context, vaultID models.Identity, identity models.Identity) (bool, error) {
	if m.isOwnerFn != nil {
		return m.isOwnerFn(ctx, vaultID, identity)
	}
	return false, nil
}

func (m *mockVaultClient) Execute(ctx context.Context, vaultID models.Identity, payload models.Payload) (bool, error) {
	m.mu.Lock()
	m.executeCalls = append(m.executeCalls, payload)
	m.mu.Unlock()

	if m.executeFn != nil {
		return m.executeFn(ctx, vaultID, payload)
	}
	return true, nil
}

func (m *mockVaultClient) executions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.executeCalls)
}
