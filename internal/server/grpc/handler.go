package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func codeOf(kind common.Kind) codes.Code {
	switch kind {
	case common.KindMissingFields, common.KindInvalidInput:
		return codes.InvalidArgument
	case common.KindUsernameTaken, common.KindAlreadyRedeemed:
		return codes.AlreadyExists
	case common.KindInvalidCredentials, common.KindUnauthorizedAccount:
		return codes.Unauthenticated
	case common.KindUnknownOrExpiredCode:
		return codes.NotFound
	case common.KindCooldownActive:
		return codes.ResourceExhausted
	case common.KindForbidden:
		return codes.PermissionDenied
	case common.KindPersistenceUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// toStatus converts a service error into a gRPC status without exposing
// internal causes.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	kind := common.KindOf(err)
	if kind == common.KindInternal || kind == common.KindPersistenceUnavailable {
		s.logger.Error(ctx, err.Error())
	}
	return status.Error(codeOf(kind), common.PublicMessage(err))
}

func (s *GRPCServer) Signup(ctx context.Context, req *SignupRequest) (*SessionReply, error) {

	s.logger.Info(ctx, "Signup request")

	session, err := s.svc.Auth.Signup(ctx, req.Username, req.Secret)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &SessionReply{Token: session.Token, ShardBalance: session.ShardBalance}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*SessionReply, error) {

	session, err := s.svc.Auth.Login(ctx, req.Username, req.Secret)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &SessionReply{Token: session.Token, ShardBalance: session.ShardBalance}, nil
}

func (s *GRPCServer) Balance(ctx context.Context, _ *BalanceRequest) (*BalanceReply, error) {

	username, token := sessionFrom(ctx)

	balance, err := s.svc.Auth.Balance(ctx, username, token)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &BalanceReply{ShardBalance: balance}, nil
}

func (s *GRPCServer) Redeem(ctx context.Context, req *RedeemRequest) (*GrantReply, error) {

	username, token := sessionFrom(ctx)

	res, err := s.svc.Redemption.Redeem(ctx, username, token, req.Code)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &GrantReply{Message: res.Message(), ShardBalance: res.NewBalance}, nil
}

func (s *GRPCServer) ClaimQuest(ctx context.Context, req *ClaimQuestRequest) (*GrantReply, error) {

	username, token := sessionFrom(ctx)

	claim, err := s.svc.Quests.ClaimQuest(ctx, username, token, req.QuestID, req.Reward)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &GrantReply{Message: claim.Message(), ShardBalance: claim.NewBalance}, nil
}

func (s *GRPCServer) AddCode(ctx context.Context, req *AddCodeRequest) (*MessageReply, error) {

	c, err := s.svc.Admin.AddCode(ctx, req.AdminSecret, services.NewCode{
		Code:      req.Code,
		Amount:    req.Amount,
		Mode:      req.Mode,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &MessageReply{Message: fmt.Sprintf("Code %s grants %d Aether Shards", c.Code, c.Amount)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *PingRequest) (*PingReply, error) {

	return &PingReply{Status: "OK"}, nil

}
