package models

import "time"

// RequestStatus is the lifecycle state of a deferred request.
// Transitions are strictly one-way: a request starts pending and becomes
// either executed or cancelled; a terminal request never changes again.
type RequestStatus string

const (
	// RequestStatusPending indicates the request is waiting out its delay
	// window (or is mature but not yet triggered).
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusExecuted indicates the request was triggered and the
	// vault capability was invoked. This status is committed before the
	// invocation, so it also covers requests whose downstream call failed.
	RequestStatusExecuted RequestStatus = "executed"
	// RequestStatusCancelled indicates the request was explicitly cancelled
	// before maturity or triggering. Only the signed-owner policy exposes a
	// cancel path.
	RequestStatusCancelled RequestStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusExecuted || s == RequestStatusCancelled
}

// CallKind distinguishes how the vault performs the deferred operation.
type CallKind string

const (
	// CallKindCall is an ordinary call from the vault to the target.
	CallKindCall CallKind = "call"
	// CallKindDelegate is a delegated call executed in the vault's own context.
	CallKindDelegate CallKind = "delegatecall"
)

// Valid reports whether the call kind is one of the two supported values.
func (k CallKind) Valid() bool {
	return k == CallKindCall || k == CallKindDelegate
}

// Payload is the content of a deferred operation: everything the vault needs
// to perform the call once the request matures. Payload content, together
// with the vault identity (and the signer identity for signed proposals),
// fully determines the request id.
type Payload struct {
	// Target is the address the vault will call. A zero target is rejected
	// at proposal time.
	Target Identity `json:"target"`

	// Value is the amount transferred with the call, as a base-10 string.
	// Kept as a string because vault balances exceed the int64 range.
	Value string `json:"value"`

	// Data is the opaque call data forwarded to the target unmodified.
	Data []byte `json:"data"`

	// CallKind selects between an ordinary and a delegated call.
	CallKind CallKind `json:"call_kind"`
}

// Proof is the cryptographic authorization supplied with a signed-owner
// proposal. It is stored verbatim with the request so that authorization can
// be re-derived from scratch at trigger and cancel time; no recovered
// identity or verification outcome is ever cached.
type Proof struct {
	// PublicKey is the claimed signer's ed25519 public key (32 bytes).
	PublicKey []byte `json:"public_key"`

	// Signature is the ed25519 signature over the operation digest (64 bytes).
	Signature []byte `json:"signature"`
}

// Request is one proposed, deferred operation awaiting its delay window.
type Request struct {
	// ID is the internal surrogate key assigned by the database.
	// Not exposed via JSON; the content-addressed RequestID is the public name.
	ID int64 `json:"-"`

	// VaultID is the vault this request belongs to. Requests are only ever
	// visible and mutable under their own vault's namespace.
	VaultID Identity `json:"vault_id"`

	// RequestID is the content-addressed identifier: a hex-encoded digest of
	// the vault identity and the payload (plus the recovered signer identity
	// for signed proposals). Unique per vault for all time — terminal ids are
	// never reusable.
	RequestID string `json:"request_id"`

	// Payload is the deferred operation content.
	Payload Payload `json:"payload"`

	// Proof is present only for requests created under the signed-owner
	// policy. Nil for allowlist requests.
	Proof *Proof `json:"proof,omitempty"`

	// Status is the current lifecycle state. Written only by the gateway,
	// through the registry's guarded transition queries.
	Status RequestStatus `json:"status"`

	// ProposedAt is set once at creation and never mutated. Maturity is
	// ProposedAt plus the vault's delay at trigger time.
	ProposedAt time.Time `json:"proposed_at"`

	// FinalizedAt records when the request reached a terminal status.
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
}

// RequestFilter narrows a vault-scoped request listing.
// Zero values mean "no constraint".
type RequestFilter struct {
	// Status restricts the listing to one lifecycle state.
	Status RequestStatus `json:"status,omitempty"`

	// Limit caps the number of returned requests, newest first.
	Limit int `json:"limit,omitempty"`
}

// MatureAt returns the earliest instant the request may be triggered given
// the vault's current delay. The boundary is inclusive: a trigger at exactly
// MatureAt succeeds.
func (r Request) MatureAt(delay time.Duration) time.Time {
	return r.ProposedAt.Add(delay)
}

// TableName returns the name of the database table
// associated with the Request model.
func (r Request) TableName() string {
	return "requests"
}
