package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName полное имя gRPC сервиса
const ServiceName = "codfraud.ScoringService"

// ScoringServiceServer методы сервиса. Сообщения передаются как google.protobuf.Struct.
type ScoringServiceServer interface {
	// ScoreOrder запрос: {"session_id": "...", "order": {...}}, ответ: вердикт
	ScoreOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	// GenerateOrder запрос: {"count": n}, ответ: {"orders": [...]}
	GenerateOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	// GetModel ответ: описание модели
	GetModel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(method string, call func(ScoringServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ScoringServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ScoringServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc описание сервиса для grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ScoreOrder",
			Handler: unaryHandler("ScoreOrder", func(s ScoringServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.ScoreOrder(ctx, in)
			}),
		},
		{
			MethodName: "GenerateOrder",
			Handler: unaryHandler("GenerateOrder", func(s ScoringServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.GenerateOrder(ctx, in)
			}),
		},
		{
			MethodName: "GetModel",
			Handler: unaryHandler("GetModel", func(s ScoringServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.GetModel(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "codfraud/scoring.proto",
}

// RegisterScoringServiceServer регистрирует реализацию на сервере
func RegisterScoringServiceServer(s grpc.ServiceRegistrar, srv ScoringServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client клиент сервиса оценки
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ScoreOrder(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ScoreOrder", in, opts...)
}

func (c *Client) GenerateOrder(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GenerateOrder", in, opts...)
}

func (c *Client) GetModel(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetModel", in, opts...)
}
