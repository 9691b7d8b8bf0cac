// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorages() *store.Storages {
	return &store.Storages{
		RequestRepository:  &mockRequestRepository{},
		SettingsRepository: &mockSettingsRepository{},
		ProposerRepository: &mockProposerRepository{},
		EventRepository:    &mockEventRepository{},
	}
}

func testStructuredConfig(policy string) config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey:        "test-sign-key",
			TokenIssuer:         "vault-warden",
			TokenDuration:       time.Hour,
			AuthorizationPolicy: policy,
			DefaultDelay:        time.Hour,
			MaxDelay:            4 * time.Hour,
			Version:             "0.1.0-test",
		},
	}
}

func TestNewServices_AllowlistPolicy(t *testing.T) {
	services, err := NewServices(testStorages(), &mockVaultClient{}, testStructuredConfig(config.PolicyAllowlist), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, config.PolicyAllowlist, services.Policy.Name())
	assert.NotNil(t, services.GatewayService)
	assert.NotNil(t, services.DelayService)
	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.AppInfoService)
}

func TestNewServices_SignedOwnerPolicy(t *testing.T) {
	services, err := NewServices(testStorages(), &mockVaultClient{}, testStructuredConfig(config.PolicySignedOwner), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, config.PolicySignedOwner, services.Policy.Name())
}

func TestNewServices_UnknownPolicy(t *testing.T) {
	_, err := NewServices(testStorages(), &mockVaultClient{}, testStructuredConfig("multisig"), logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestNewServices_VersionRequired(t *testing.T) {
	cfg := testStructuredConfig(config.PolicyAllowlist)
	cfg.App.Version = ""

	_, err := NewServices(testStorages(), &mockVaultClient{}, cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestAppInfoService_GetAppVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.2.3"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", svc.GetAppVersion(context.Background()))
}
