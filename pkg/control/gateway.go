package control

import (
	"context"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
	"github.com/core-tools/hsu-svcctl/pkg/domain"
	"github.com/core-tools/hsu-svcctl/pkg/logging"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// correlationIDHeader carries the per-request correlation ID so daemon-side
// logs can be matched with client-side ones.
const correlationIDHeader = "x-hsu-correlation-id"

const supervisorServiceName = "hsu.ctl.Supervisor"

func NewGRPCClientGateway(grpcClientConnection grpc.ClientConnInterface, logger logging.Logger) domain.Contract {
	return &grpcClientGateway{
		connection: grpcClientConnection,
		logger:     logger,
	}
}

type grpcClientGateway struct {
	connection grpc.ClientConnInterface
	logger     logging.Logger
}

func (gw *grpcClientGateway) Load(ctx context.Context, request *ctl.SvcLoad) (*ctl.Ack, error) {
	reply := &ctl.Ack{}
	if err := gw.invoke(ctx, "Load", request, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (gw *grpcClientGateway) Update(ctx context.Context, request *ctl.SvcUpdate) (*ctl.Ack, error) {
	reply := &ctl.Ack{}
	if err := gw.invoke(ctx, "Update", request, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (gw *grpcClientGateway) Start(ctx context.Context, request *ctl.SvcStart) (*ctl.Ack, error) {
	reply := &ctl.Ack{}
	if err := gw.invoke(ctx, "Start", request, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (gw *grpcClientGateway) Stop(ctx context.Context, request *ctl.SvcStop) (*ctl.Ack, error) {
	reply := &ctl.Ack{}
	if err := gw.invoke(ctx, "Stop", request, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (gw *grpcClientGateway) Unload(ctx context.Context, request *ctl.SvcUnload) (*ctl.Ack, error) {
	reply := &ctl.Ack{}
	if err := gw.invoke(ctx, "Unload", request, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (gw *grpcClientGateway) Status(ctx context.Context, request *ctl.SvcStatus) (*ctl.StatusReply, error) {
	reply := &ctl.StatusReply{}
	if err := gw.invoke(ctx, "Status", request, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (gw *grpcClientGateway) invoke(ctx context.Context, operation string, request ctl.WireMarshaler, reply ctl.WireUnmarshaler) error {
	correlationID := uuid.NewString()
	ctx = metadata.AppendToOutgoingContext(ctx, correlationIDHeader, correlationID)

	method := "/" + supervisorServiceName + "/" + operation
	err := gw.connection.Invoke(ctx, method, request, reply, grpc.ForceCodec(wireCodec{}))
	if err != nil {
		gw.logger.Errorf("%s client gateway, correlation_id: %s: %v", operation, correlationID, err)
		return err
	}
	gw.logger.Debugf("%s client gateway done, correlation_id: %s", operation, correlationID)
	return nil
}
