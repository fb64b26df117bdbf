package domain

import (
	"context"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
)

// Contract is the control-plane surface of the supervisor daemon as seen by
// this tool. Implementations deliver prepared request messages; building and
// validating the messages happens upstream.
type Contract interface {
	Load(ctx context.Context, request *ctl.SvcLoad) (*ctl.Ack, error)
	Update(ctx context.Context, request *ctl.SvcUpdate) (*ctl.Ack, error)
	Start(ctx context.Context, request *ctl.SvcStart) (*ctl.Ack, error)
	Stop(ctx context.Context, request *ctl.SvcStop) (*ctl.Ack, error)
	Unload(ctx context.Context, request *ctl.SvcUnload) (*ctl.Ack, error)
	Status(ctx context.Context, request *ctl.SvcStatus) (*ctl.StatusReply, error)
}
