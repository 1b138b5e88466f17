package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "azyrnyx.RewardService"

// RewardServiceServer is the server API of azyrnyx.RewardService.
type RewardServiceServer interface {
	Signup(context.Context, *SignupRequest) (*SessionReply, error)
	Login(context.Context, *LoginRequest) (*SessionReply, error)
	Balance(context.Context, *BalanceRequest) (*BalanceReply, error)
	Redeem(context.Context, *RedeemRequest) (*GrantReply, error)
	ClaimQuest(context.Context, *ClaimQuestRequest) (*GrantReply, error)
	AddCode(context.Context, *AddCodeRequest) (*MessageReply, error)
	Ping(context.Context, *PingRequest) (*PingReply, error)
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

// unary adapts a typed method to grpc.MethodHandler, the way generated code
// does for every method.
func unary[Req, Resp any](name string, call func(RewardServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RewardServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RewardServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// RewardServiceDesc describes azyrnyx.RewardService for grpc.Server.RegisterService.
var RewardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RewardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Signup", RewardServiceServer.Signup),
		unary("Login", RewardServiceServer.Login),
		unary("Balance", RewardServiceServer.Balance),
		unary("Redeem", RewardServiceServer.Redeem),
		unary("ClaimQuest", RewardServiceServer.ClaimQuest),
		unary("AddCode", RewardServiceServer.AddCode),
		unary("Ping", RewardServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "azyrnyx/reward.json",
}

// RewardServiceClient calls azyrnyx.RewardService using the JSON codec.
type RewardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRewardServiceClient(cc grpc.ClientConnInterface) *RewardServiceClient {
	return &RewardServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RewardServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SessionReply, error) {
	return invoke[SessionReply](ctx, c.cc, "Signup", in, opts)
}

func (c *RewardServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionReply, error) {
	return invoke[SessionReply](ctx, c.cc, "Login", in, opts)
}

func (c *RewardServiceClient) Balance(ctx context.Context, in *BalanceRequest, opts ...grpc.CallOption) (*BalanceReply, error) {
	return invoke[BalanceReply](ctx, c.cc, "Balance", in, opts)
}

func (c *RewardServiceClient) Redeem(ctx context.Context, in *RedeemRequest, opts ...grpc.CallOption) (*GrantReply, error) {
	return invoke[GrantReply](ctx, c.cc, "Redeem", in, opts)
}

func (c *RewardServiceClient) ClaimQuest(ctx context.Context, in *ClaimQuestRequest, opts ...grpc.CallOption) (*GrantReply, error) {
	return invoke[GrantReply](ctx, c.cc, "ClaimQuest", in, opts)
}

func (c *RewardServiceClient) AddCode(ctx context.Context, in *AddCodeRequest, opts ...grpc.CallOption) (*MessageReply, error) {
	return invoke[MessageReply](ctx, c.cc, "AddCode", in, opts)
}

func (c *RewardServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingReply, error) {
	return invoke[PingReply](ctx, c.cc, "Ping", in, opts)
}
