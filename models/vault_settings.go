package models

import "time"

// VaultSettings is the per-vault configuration owned by the vault itself.
// Settings rows are created lazily: a vault with no row uses the configured
// default delay and an empty proposer set.
type VaultSettings struct {
	// VaultID is the vault the settings belong to.
	VaultID Identity `json:"vault_id"`

	// Delay is the mandatory wait between proposal and triggering.
	// Bounded by the configured maximum; mutable only by the vault itself.
	Delay time.Duration `json:"delay"`

	// UpdatedAt is the time of the last delay change.
	UpdatedAt time.Time `json:"updated_at"`
}

// Proposer is one allowlist membership entry (allowlist policy only).
// Membership is consulted live at propose and trigger time, never cached.
type Proposer struct {
	// VaultID is the vault whose allowlist the entry belongs to.
	VaultID Identity `json:"vault_id"`

	// Address is the approved proposer identity.
	Address Identity `json:"address"`

	// AddedAt is the time the entry was added.
	AddedAt time.Time `json:"added_at"`
}

// TableName returns the name of the database table
// associated with the VaultSettings model.
func (s VaultSettings) TableName() string {
	return "vault_settings"
}

// TableName returns the name of the database table
// associated with the Proposer model.
func (p Proposer) TableName() string {
	return "vault_proposers"
}
