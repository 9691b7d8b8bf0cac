package service

import (
	"fmt"

	"github.com/MKhiriev/go-vault-warden/internal/adapter"
	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/crypto"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/store"
)

// Services aggregates every service implementation behind its interface, so
// the handler layer receives a single dependency.
type Services struct {
	GatewayService GatewayService
	DelayService   DelayService
	AuthService    AuthService
	AppInfoService AppInfoService
	Policy         AuthorizationPolicy
}

// NewServices wires the full service layer: it selects the authorization
// policy named in the configuration, builds the identity verifier and
// connects everything to the repositories and the vault capability.
func NewServices(storages *store.Storages, vault adapter.VaultClient, cfg config.StructuredConfig, log *logger.Logger) (*Services, error) {
	verifier := crypto.NewVerifier()

	policy, err := newPolicy(storages, verifier, vault, cfg, log)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, log)
	if err != nil {
		return nil, err
	}

	delayService := NewDelayService(
		storages.SettingsRepository,
		storages.ProposerRepository,
		storages.EventRepository,
		cfg.App,
		CallerIsVault,
		log,
	)

	return &Services{
		GatewayService: NewGatewayService(
			storages.RequestRepository,
			delayService,
			policy,
			verifier,
			vault,
			storages.EventRepository,
			log,
		),
		DelayService:   delayService,
		AuthService:    NewAuthService(cfg.App, log),
		AppInfoService: appInfoService,
		Policy:         policy,
	}, nil
}

func newPolicy(storages *store.Storages, verifier crypto.IdentityVerifier, vault adapter.VaultClient, cfg config.StructuredConfig, log *logger.Logger) (AuthorizationPolicy, error) {
	switch cfg.App.AuthorizationPolicy {
	case config.PolicyAllowlist:
		return NewAllowlistPolicy(storages.ProposerRepository, log), nil
	case config.PolicySignedOwner:
		return NewSignedOwnerPolicy(verifier, vault, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, cfg.App.AuthorizationPolicy)
	}
}
