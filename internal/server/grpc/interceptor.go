package grpc

import (
	"context"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	usernameKey ctxKey = "username"
	tokenKey    ctxKey = "token"
)

// authenticated lists the methods that need a live session.
var authenticated = map[string]bool{
	fullMethod("Balance"):    true,
	fullMethod("Redeem"):     true,
	fullMethod("ClaimQuest"): true,
}

func (s *GRPCServer) sessionTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if authenticated[info.FullMethod] {

		var token string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.SessionTokenHeaderName)
			if len(values) > 0 {
				token = values[0]
			}
		}
		if len(token) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		username, err := auth.GetUsernameFromToken(token, s.jwtSecret)
		if err != nil || !s.svc.Auth.Verify(username, token) {
			return nil, status.Error(codes.Unauthenticated, common.ErrUnauthorizedAccount.Error())
		}

		ctx = context.WithValue(ctx, usernameKey, username)
		ctx = context.WithValue(ctx, tokenKey, token)
	}

	return handler(ctx, req)
}

// sessionFrom returns what the interceptor stored for the current call.
func sessionFrom(ctx context.Context) (username, token string) {
	username, _ = ctx.Value(usernameKey).(string)
	token, _ = ctx.Value(tokenKey).(string)
	return username, token
}
