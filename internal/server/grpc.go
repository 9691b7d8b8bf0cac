package server

import (
	"fmt"
	"net"

	"github.com/MKhiriev/go-vault-warden/internal/config"
	myGRPC "github.com/MKhiriev/go-vault-warden/internal/handler/grpc"
	"github.com/MKhiriev/go-vault-warden/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener
	health          *health.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("error listening on gRPC address %q: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		health:          healthServer,
		logger:          logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v\n", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	g.server.GracefulStop()
}
