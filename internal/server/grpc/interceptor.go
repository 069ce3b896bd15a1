package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// loggingInterceptor logs every unary call with its status code, carrying
// the caller's request id from metadata when present.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	var requestID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.RequestIDHeader)
		if len(values) > 0 {
			requestID = values[0]
		}
	}
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}

	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Debug(ctx, "grpc call",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
		"requestId", requestID,
	)

	return resp, err
}
