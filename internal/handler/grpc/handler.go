package grpc

import (
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/service"
)

// Handler is the root gRPC transport handler.
//
// The gRPC surface of the gateway is limited to the standard health service;
// the handler keeps references to the service layer and the structured
// logger so future method handlers can delegate business logic and emit
// consistent logs. One instance is created at startup and shared by the
// gRPC server.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
