// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delayDeps struct {
	settings  *mockSettingsRepository
	proposers *mockProposerRepository
	events    *mockEventRepository
}

func newTestDelayService() (DelayService, *delayDeps) {
	deps := &delayDeps{
		settings:  &mockSettingsRepository{},
		proposers: &mockProposerRepository{},
		events:    &mockEventRepository{},
	}
	svc := NewDelayService(deps.settings, deps.proposers, deps.events, testAppConfig(), CallerIsVault, logger.Nop())
	return svc, deps
}

func TestCallerIsVault(t *testing.T) {
	assert.True(t, CallerIsVault(testVault, testVault))
	assert.False(t, CallerIsVault(testVault, testProposer))
	assert.False(t, CallerIsVault(models.ZeroIdentity, models.ZeroIdentity))
}

func TestGetDelay_DefaultWhenUnset(t *testing.T) {
	svc, _ := newTestDelayService()

	delay, err := svc.GetDelay(context.Background(), testVault)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, delay)
}

func TestGetDelay_StoredValue(t *testing.T) {
	svc, deps := newTestDelayService()
	deps.settings.getFn = func(ctx context.Context, vaultID models.Identity) (models.VaultSettings, error) {
		return models.VaultSettings{VaultID: vaultID, Delay: 30 * time.Minute}, nil
	}

	delay, err := svc.GetDelay(context.Background(), testVault)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, delay)
}

func TestSetDelay_OnlyTheVaultItself(t *testing.T) {
	svc, deps := newTestDelayService()

	_, err := svc.SetDelay(context.Background(), testProposer, testVault, time.Minute)
	assert.ErrorIs(t, err, ErrNotTheVault)
	assert.Empty(t, deps.events.recorded())
}

func TestSetDelay_Bounds(t *testing.T) {
	svc, _ := newTestDelayService()
	ctx := context.Background()

	_, err := svc.SetDelay(ctx, testVault, testVault, -time.Second)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	// maxDelay is 4h in the test config
	_, err = svc.SetDelay(ctx, testVault, testVault, 5*time.Hour)
	assert.ErrorIs(t, err, ErrDelayTooLong)

	// the bound itself is allowed, as is zero
	_, err = svc.SetDelay(ctx, testVault, testVault, 4*time.Hour)
	assert.NoError(t, err)
	_, err = svc.SetDelay(ctx, testVault, testVault, 0)
	assert.NoError(t, err)
}

func TestSetDelay_SuccessEmitsEvent(t *testing.T) {
	svc, deps := newTestDelayService()

	settings, err := svc.SetDelay(context.Background(), testVault, testVault, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, settings.Delay)

	events := deps.events.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventDelayChanged, events[0].Kind)
	assert.Contains(t, string(events[0].Payload), "2h0m0s")
}

func TestAddProposer_OnlyTheVaultItself(t *testing.T) {
	svc, _ := newTestDelayService()

	err := svc.AddProposer(context.Background(), testProposer, testVault, testProposer)
	assert.ErrorIs(t, err, ErrNotTheVault)
}

func TestAddProposer_EventOnlyWhenMembershipChanged(t *testing.T) {
	svc, deps := newTestDelayService()
	ctx := context.Background()

	err := svc.AddProposer(ctx, testVault, testVault, testProposer)
	require.NoError(t, err)
	require.Len(t, deps.events.recorded(), 1)
	assert.Equal(t, models.EventProposerAdded, deps.events.recorded()[0].Kind)

	// re-adding an existing member is a no-op and stays silent
	deps.proposers.addFn = func(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
		return false, nil
	}
	err = svc.AddProposer(ctx, testVault, testVault, testProposer)
	require.NoError(t, err)
	assert.Len(t, deps.events.recorded(), 1)
}

func TestRemoveProposer_EventOnlyWhenMembershipChanged(t *testing.T) {
	svc, deps := newTestDelayService()
	ctx := context.Background()

	err := svc.RemoveProposer(ctx, testVault, testVault, testProposer)
	require.NoError(t, err)
	require.Len(t, deps.events.recorded(), 1)
	assert.Equal(t, models.EventProposerRemoved, deps.events.recorded()[0].Kind)

	deps.proposers.removeFn = func(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
		return false, nil
	}
	err = svc.RemoveProposer(ctx, testVault, testVault, testProposer)
	require.NoError(t, err)
	assert.Len(t, deps.events.recorded(), 1)
}

func TestAddProposer_InvalidAddress(t *testing.T) {
	svc, _ := newTestDelayService()

	err := svc.AddProposer(context.Background(), testVault, testVault, models.ZeroIdentity)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestListProposers(t *testing.T) {
	svc, deps := newTestDelayService()
	deps.proposers.listFn = func(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error) {
		return []models.Proposer{{VaultID: vaultID, Address: testProposer}}, nil
	}

	proposers, err := svc.ListProposers(context.Background(), testVault)
	require.NoError(t, err)
	require.Len(t, proposers, 1)
	assert.Equal(t, testProposer, proposers[0].Address)
}
