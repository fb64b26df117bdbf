package control

import (
	"fmt"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
)

// wireCodec bridges the hand-written ctl messages into grpc. It is forced
// per call by the gateway, never registered globally, so it only ever sees
// ctl message types. The codec name is "proto" because the bytes are valid
// protobuf wire format and the daemon negotiates the standard content type.
type wireCodec struct{}

func (wireCodec) Marshal(v interface{}) ([]byte, error) {
	message, ok := v.(ctl.WireMarshaler)
	if !ok {
		return nil, fmt.Errorf("wire codec cannot marshal %T", v)
	}
	return message.MarshalWire(), nil
}

func (wireCodec) Unmarshal(data []byte, v interface{}) error {
	message, ok := v.(ctl.WireUnmarshaler)
	if !ok {
		return fmt.Errorf("wire codec cannot unmarshal %T", v)
	}
	return message.UnmarshalWire(data)
}

func (wireCodec) Name() string {
	return "proto"
}
