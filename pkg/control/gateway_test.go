package control

import (
	"context"
	"errors"
	"testing"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
	"github.com/core-tools/hsu-svcctl/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// stubConn records the invocation and optionally fills the reply
type stubConn struct {
	method   string
	request  interface{}
	metadata metadata.MD
	fill     func(reply interface{})
	err      error
}

func (c *stubConn) Invoke(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
	c.method = method
	c.request = args
	c.metadata, _ = metadata.FromOutgoingContext(ctx)
	if c.fill != nil {
		c.fill(reply)
	}
	return c.err
}

func (c *stubConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("streaming is not part of the control protocol")
}

func TestGatewayLoad(t *testing.T) {
	conn := &stubConn{fill: func(reply interface{}) {
		ack := reply.(*ctl.Ack)
		ok := true
		ack.OK = &ok
	}}
	gateway := NewGRPCClientGateway(conn, logging.NewNopLogger())

	origin, name := "core", "redis"
	request := &ctl.SvcLoad{Ident: &ctl.PackageRef{Origin: &origin, Name: &name}}
	ack, err := gateway.Load(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "/hsu.ctl.Supervisor/Load", conn.method)
	assert.Same(t, request, conn.request)
	require.NotNil(t, ack.OK)
	assert.True(t, *ack.OK)
}

func TestGatewayMethodPaths(t *testing.T) {
	conn := &stubConn{}
	gateway := NewGRPCClientGateway(conn, logging.NewNopLogger())
	ctx := context.Background()

	_, err := gateway.Update(ctx, &ctl.SvcUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "/hsu.ctl.Supervisor/Update", conn.method)

	_, err = gateway.Start(ctx, &ctl.SvcStart{})
	require.NoError(t, err)
	assert.Equal(t, "/hsu.ctl.Supervisor/Start", conn.method)

	_, err = gateway.Stop(ctx, &ctl.SvcStop{})
	require.NoError(t, err)
	assert.Equal(t, "/hsu.ctl.Supervisor/Stop", conn.method)

	_, err = gateway.Unload(ctx, &ctl.SvcUnload{})
	require.NoError(t, err)
	assert.Equal(t, "/hsu.ctl.Supervisor/Unload", conn.method)

	_, err = gateway.Status(ctx, &ctl.SvcStatus{})
	require.NoError(t, err)
	assert.Equal(t, "/hsu.ctl.Supervisor/Status", conn.method)
}

func TestGatewayAttachesCorrelationID(t *testing.T) {
	conn := &stubConn{}
	gateway := NewGRPCClientGateway(conn, logging.NewNopLogger())

	_, err := gateway.Status(context.Background(), &ctl.SvcStatus{})
	require.NoError(t, err)

	values := conn.metadata.Get("x-hsu-correlation-id")
	require.Len(t, values, 1)
	assert.NotEmpty(t, values[0])
}

func TestGatewayPropagatesTransportErrors(t *testing.T) {
	transportErr := errors.New("connection refused")
	conn := &stubConn{err: transportErr}
	gateway := NewGRPCClientGateway(conn, logging.NewNopLogger())

	ack, err := gateway.Load(context.Background(), &ctl.SvcLoad{})
	assert.Nil(t, ack)
	assert.Equal(t, transportErr, err)
}

func TestGatewayStatusReply(t *testing.T) {
	conn := &stubConn{fill: func(reply interface{}) {
		statusReply := reply.(*ctl.StatusReply)
		state := "up"
		statusReply.Statuses = []*ctl.ServiceStatus{{State: &state}}
	}}
	gateway := NewGRPCClientGateway(conn, logging.NewNopLogger())

	reply, err := gateway.Status(context.Background(), &ctl.SvcStatus{})
	require.NoError(t, err)
	require.Len(t, reply.Statuses, 1)
	assert.Equal(t, "up", *reply.Statuses[0].State)
}
