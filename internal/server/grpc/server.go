// Package grpc serves the account and reward operations as the
// azyrnyx.RewardService gRPC service. Messages are JSON encoded.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address   string
	svc       services.Bundle
	logger    logging.Logger
	jwtSecret []byte
}

var _ RewardServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, svc services.Bundle, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		svc:       svc,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds a grpc.Server with the service and its interceptors
// registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.sessionTokenInterceptor))
	srv.RegisterService(&RewardServiceDesc, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
