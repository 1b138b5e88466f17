package grpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/azyrnyx/internal/cryptox"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/catalog"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
	"github.com/dmitrijs2005/azyrnyx/internal/server/services"
	"github.com/dmitrijs2005/azyrnyx/internal/server/snapshot"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "secret"

func newTestServer(t *testing.T) *GRPCServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.AdminSecret = "op-secret"

	store := snapshot.NewFileStore(filepath.Join(t.TempDir(), "registry.json"))
	reg := registry.New(context.Background(), store, logging.Nop{}, catalog.DefaultSeed())

	hasher, err := cryptox.NewHasher(cryptox.Params{Memory: 1024, Time: 1, Threads: 1, SaltLength: 16, KeyLength: 32})
	require.NoError(t, err)
	authSvc, err := services.NewAuthService(reg, hasher, cfg, logging.Nop{})
	require.NoError(t, err)

	return NewGRPCServer("127.0.0.1:0", logging.Nop{}, services.Bundle{
		Auth:       authSvc,
		Redemption: services.NewRedemptionService(reg, cfg, logging.Nop{}),
		Quests:     services.NewQuestService(reg, cfg, logging.Nop{}),
		Admin:      services.NewAdminService(reg, cfg, logging.Nop{}),
	}, cfg.SecretKey)
}

// dial serves s over an in-memory listener and returns a connected client.
func dial(t *testing.T, s *GRPCServer) *RewardServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := s.newServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewRewardServiceClient(conn)
}
