// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Enforced rules:
//   - the database DSN must be non-empty;
//   - the authorization policy, when set, must be one of the known variants;
//   - the delay bounds must be consistent: 0 < MaxDelay and
//     DefaultDelay <= MaxDelay when both are set;
//   - the vault daemon base URL must be non-empty.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.App.AuthorizationPolicy {
	case "", PolicyAllowlist, PolicySignedOwner:
	default:
		return fmt.Errorf("%w: unknown authorization policy %q",
			ErrInvalidAppConfigs, cfg.App.AuthorizationPolicy)
	}

	if cfg.App.MaxDelay < 0 || cfg.App.DefaultDelay < 0 {
		return fmt.Errorf("%w: negative delay bound", ErrInvalidAppConfigs)
	}
	if cfg.App.MaxDelay > 0 && cfg.App.DefaultDelay > cfg.App.MaxDelay {
		return fmt.Errorf("%w: default delay %s exceeds max delay %s",
			ErrInvalidAppConfigs, cfg.App.DefaultDelay, cfg.App.MaxDelay)
	}

	if cfg.Adapter.VaultBaseURL == "" {
		return fmt.Errorf("%w: empty vault base URL", ErrInvalidAdapterConfigs)
	}

	return nil
}
