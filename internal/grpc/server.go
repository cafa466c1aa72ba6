package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/models"
	"cod-fraud-system/internal/scoring"
	"cod-fraud-system/internal/services"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// DefaultSessionID сеанс для запросов без session_id
const DefaultSessionID = "grpc"

type ScoringGRPCServer struct {
	scoringService services.ScoringService
}

var _ ScoringServiceServer = (*ScoringGRPCServer)(nil)

func NewScoringGRPCServer(scoringService services.ScoringService) *ScoringGRPCServer {
	return &ScoringGRPCServer{scoringService: scoringService}
}

// ScoreOrder оценивает заказ. Без session_id используется общий сеанс gRPC.
func (s *ScoringGRPCServer) ScoreOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	orderValue, ok := fields["order"]
	if !ok || orderValue.GetStructValue() == nil {
		return nil, status.Error(codes.InvalidArgument, "order is required")
	}

	var order models.Order
	if err := fromStruct(orderValue.GetStructValue(), &order); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid order: %v", err)
	}

	sessionID := fields["session_id"].GetStringValue()
	if sessionID == "" {
		sessionID = DefaultSessionID
		if _, err := s.scoringService.OpenSession(sessionID); err != nil {
			return nil, toStatus(err)
		}
	}

	verdict, err := s.scoringService.ScoreOrder(sessionID, &order)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(verdict)
}

// GenerateOrder генерирует входящие заказы, по умолчанию один
func (s *ScoringGRPCServer) GenerateOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	count := 1
	if v, ok := req.GetFields()["count"]; ok {
		count = int(v.GetNumberValue())
	}

	orders, err := s.scoringService.GenerateOrders(count)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]interface{}{"orders": orders})
}

func (s *ScoringGRPCServer) GetModel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(s.scoringService.ModelSummary())
}

// toStatus переводит ошибку сервиса в gRPC статус
func toStatus(err error) error {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, services.ErrSessionNotFound):
		return status.Error(codes.NotFound, "session not found")
	case errors.Is(err, services.ErrQueueExhausted):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, services.ErrInvalidCount):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		logger.Error("gRPC request failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

// toStruct конвертирует значение в Struct через его JSON представление
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

func fromStruct(in *structpb.Struct, v interface{}) error {
	data, err := json.Marshal(in.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// loggingInterceptor пишет метод, длительность и код ответа
func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logger.Info("gRPC request",
		zap.String("method", info.FullMethod),
		zap.Duration("duration", time.Since(start)),
		zap.String("code", status.Code(err).String()),
	)
	return resp, err
}

// NewGRPCServer создает gRPC сервер с зарегистрированным сервисом оценки
func NewGRPCServer(server ScoringServiceServer) *grpc.Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor))
	RegisterScoringServiceServer(s, server)

	// Включаем reflection API для grpcurl и других инструментов
	reflection.Register(s)
	return s
}

// StartGRPCServer запускает gRPC сервер и блокируется до его остановки
func StartGRPCServer(cfg *config.Config, s *grpc.Server) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	logger.Info("gRPC server listening", zap.Int("port", cfg.Server.GRPCPort))
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}
