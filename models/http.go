package models

// ProposeRequest is the JSON body of the proposal endpoint.
type ProposeRequest struct {
	// Payload is the operation the vault should perform after the delay.
	Payload Payload `json:"payload"`

	// Proof is required under the signed-owner policy and ignored under
	// the allowlist policy.
	Proof *Proof `json:"proof,omitempty"`
}

// TokenRequest is the JSON body of the token issuance endpoint.
type TokenRequest struct {
	// Address is the caller identity the token will name.
	Address Identity `json:"address"`
}

// SetDelayRequest is the JSON body of the delay update endpoint.
type SetDelayRequest struct {
	// Delay is the new mandatory wait, in Go duration syntax (e.g. "24h").
	Delay string `json:"delay"`
}

// DelayResponse reports a vault's delay as a Go duration string
// (e.g. "24h0m0s").
type DelayResponse struct {
	VaultID Identity `json:"vault_id"`
	Delay   string   `json:"delay"`
}

// ProposerRequest is the JSON body of the allowlist mutation endpoint.
type ProposerRequest struct {
	// Address is the proposer identity to add.
	Address Identity `json:"address"`
}
