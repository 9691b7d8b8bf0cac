package adapter

import (
	"context"

	"github.com/MKhiriev/go-vault-warden/models"
)

// VaultClient is the boundary to the vault daemon: the external collaborator
// that owns the custodial accounts. The warden consumes exactly three
// capabilities from it and treats everything behind them as opaque.
type VaultClient interface {
	// IsOwner reports whether identity is currently an owner of the vault.
	// Consulted live on every signed-owner lifecycle check; the answer is
	// never cached across calls.
	IsOwner(ctx context.Context, vaultID, identity models.Identity) (bool, error)

	// Execute invokes the privileged module call on behalf of the vault.
	// The daemon reports failure through the returned bool rather than an
	// error: a false result means the vault attempted the call and it
	// failed. An error return means the daemon itself was unreachable or
	// answered malformed.
	Execute(ctx context.Context, vaultID models.Identity, payload models.Payload) (bool, error)
}
