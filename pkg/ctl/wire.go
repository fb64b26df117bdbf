package ctl

import (
	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// Protobuf wire codec for the ctl messages. Field numbers are part of the
// daemon protocol and are frozen: never renumber, only extend. Unknown
// fields are skipped on decode so newer daemons can extend replies.
//
// Numbering:
//
//	PackageRef          1 origin, 2 name, 3 version, 4 release
//	ServiceBind         1 name, 2 service_group
//	ServiceBindList     1 binds (repeated)
//	HealthCheckInterval 1 seconds
//	SvcLoad             1 ident, 2 retired, 3 binds, 4 binding_mode, 5 url,
//	                    6 channel, 7 config_from, 8 force, 9 group,
//	                    10 svc_encrypted_password, 11 topology,
//	                    12 update_strategy, 13 health_check_interval,
//	                    14 shutdown_timeout, 15 update_condition
//	SvcUpdate           1 ident, 2 binds, 3 binding_mode, 4 url, 5 channel,
//	                    6 group, 7 topology, 8 update_strategy,
//	                    9 health_check_interval, 10 shutdown_timeout,
//	                    11 update_condition, 12 svc_encrypted_password
//	SvcStart            1 ident
//	SvcStop             1 ident, 2 shutdown_timeout
//	SvcUnload           1 ident, 2 shutdown_timeout
//	SvcStatus           1 ident
//	Ack                 1 ok, 2 message
//	ServiceStatus       1 ident, 2 state, 3 pid, 4 service_group
//	StatusReply         1 statuses (repeated)
//
// SvcLoad field 2 carried the deprecated application/environment pair and
// is retired; it must never be reused.

// WireMarshaler is implemented by every ctl message
type WireMarshaler interface {
	MarshalWire() []byte
}

// WireUnmarshaler is implemented by every ctl message
type WireUnmarshaler interface {
	UnmarshalWire(data []byte) error
}

func (m *PackageRef) MarshalWire() []byte {
	var b []byte
	if m.Origin != nil {
		b = appendString(b, 1, *m.Origin)
	}
	if m.Name != nil {
		b = appendString(b, 2, *m.Name)
	}
	if m.Version != nil {
		b = appendString(b, 3, *m.Version)
	}
	if m.Release != nil {
		b = appendString(b, 4, *m.Release)
	}
	return b
}

func (m *PackageRef) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Origin = &v
			data = rest
		case num == 2 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Name = &v
			data = rest
		case num == 3 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Version = &v
			data = rest
		case num == 4 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Release = &v
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *ServiceBind) MarshalWire() []byte {
	var b []byte
	if m.Name != nil {
		b = appendString(b, 1, *m.Name)
	}
	if m.ServiceGroup != nil {
		b = appendString(b, 2, *m.ServiceGroup)
	}
	return b
}

func (m *ServiceBind) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Name = &v
			data = rest
		case num == 2 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.ServiceGroup = &v
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *ServiceBindList) MarshalWire() []byte {
	var b []byte
	for _, bind := range m.Binds {
		b = appendMessage(b, 1, bind.MarshalWire())
	}
	return b
}

func (m *ServiceBindList) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			bind := &ServiceBind{}
			if err := bind.UnmarshalWire(sub); err != nil {
				return err
			}
			m.Binds = append(m.Binds, bind)
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *HealthCheckInterval) MarshalWire() []byte {
	var b []byte
	if m.Seconds != nil {
		b = appendVarint(b, 1, *m.Seconds)
	}
	return b
}

func (m *HealthCheckInterval) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			m.Seconds = &v
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *SvcLoad) MarshalWire() []byte {
	var b []byte
	if m.Ident != nil {
		b = appendMessage(b, 1, m.Ident.MarshalWire())
	}
	if m.Binds != nil {
		b = appendMessage(b, 3, m.Binds.MarshalWire())
	}
	if m.BindingMode != nil {
		b = appendVarint(b, 4, uint64(*m.BindingMode))
	}
	if m.URL != nil {
		b = appendString(b, 5, *m.URL)
	}
	if m.Channel != nil {
		b = appendString(b, 6, *m.Channel)
	}
	if m.ConfigFrom != nil {
		b = appendString(b, 7, *m.ConfigFrom)
	}
	if m.Force != nil {
		b = appendBool(b, 8, *m.Force)
	}
	if m.Group != nil {
		b = appendString(b, 9, *m.Group)
	}
	if m.SvcEncryptedPassword != nil {
		b = appendString(b, 10, *m.SvcEncryptedPassword)
	}
	if m.Topology != nil {
		b = appendVarint(b, 11, uint64(*m.Topology))
	}
	if m.UpdateStrategy != nil {
		b = appendVarint(b, 12, uint64(*m.UpdateStrategy))
	}
	if m.HealthCheckInterval != nil {
		b = appendMessage(b, 13, m.HealthCheckInterval.MarshalWire())
	}
	if m.ShutdownTimeout != nil {
		b = appendVarint(b, 14, uint64(*m.ShutdownTimeout))
	}
	if m.UpdateCondition != nil {
		b = appendVarint(b, 15, uint64(*m.UpdateCondition))
	}
	return b
}

func (m *SvcLoad) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			ident := &PackageRef{}
			if err := ident.UnmarshalWire(sub); err != nil {
				return err
			}
			m.Ident = ident
			data = rest
		case num == 3 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			binds := &ServiceBindList{}
			if err := binds.UnmarshalWire(sub); err != nil {
				return err
			}
			m.Binds = binds
			data = rest
		case num == 4 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			mode := int32(v)
			m.BindingMode = &mode
			data = rest
		case num == 5 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.URL = &v
			data = rest
		case num == 6 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Channel = &v
			data = rest
		case num == 7 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.ConfigFrom = &v
			data = rest
		case num == 8 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			force := protowire.DecodeBool(v)
			m.Force = &force
			data = rest
		case num == 9 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Group = &v
			data = rest
		case num == 10 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.SvcEncryptedPassword = &v
			data = rest
		case num == 11 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			topology := int32(v)
			m.Topology = &topology
			data = rest
		case num == 12 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			strategy := int32(v)
			m.UpdateStrategy = &strategy
			data = rest
		case num == 13 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			interval := &HealthCheckInterval{}
			if err := interval.UnmarshalWire(sub); err != nil {
				return err
			}
			m.HealthCheckInterval = interval
			data = rest
		case num == 14 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			timeout := uint32(v)
			m.ShutdownTimeout = &timeout
			data = rest
		case num == 15 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			condition := int32(v)
			m.UpdateCondition = &condition
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *SvcUpdate) MarshalWire() []byte {
	var b []byte
	if m.Ident != nil {
		b = appendMessage(b, 1, m.Ident.MarshalWire())
	}
	if m.Binds != nil {
		b = appendMessage(b, 2, m.Binds.MarshalWire())
	}
	if m.BindingMode != nil {
		b = appendVarint(b, 3, uint64(*m.BindingMode))
	}
	if m.URL != nil {
		b = appendString(b, 4, *m.URL)
	}
	if m.Channel != nil {
		b = appendString(b, 5, *m.Channel)
	}
	if m.Group != nil {
		b = appendString(b, 6, *m.Group)
	}
	if m.Topology != nil {
		b = appendVarint(b, 7, uint64(*m.Topology))
	}
	if m.UpdateStrategy != nil {
		b = appendVarint(b, 8, uint64(*m.UpdateStrategy))
	}
	if m.HealthCheckInterval != nil {
		b = appendMessage(b, 9, m.HealthCheckInterval.MarshalWire())
	}
	if m.ShutdownTimeout != nil {
		b = appendVarint(b, 10, uint64(*m.ShutdownTimeout))
	}
	if m.UpdateCondition != nil {
		b = appendVarint(b, 11, uint64(*m.UpdateCondition))
	}
	if m.SvcEncryptedPassword != nil {
		b = appendString(b, 12, *m.SvcEncryptedPassword)
	}
	return b
}

func (m *SvcUpdate) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			ident := &PackageRef{}
			if err := ident.UnmarshalWire(sub); err != nil {
				return err
			}
			m.Ident = ident
			data = rest
		case num == 2 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			binds := &ServiceBindList{}
			if err := binds.UnmarshalWire(sub); err != nil {
				return err
			}
			m.Binds = binds
			data = rest
		case num == 3 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			mode := int32(v)
			m.BindingMode = &mode
			data = rest
		case num == 4 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.URL = &v
			data = rest
		case num == 5 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Channel = &v
			data = rest
		case num == 6 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Group = &v
			data = rest
		case num == 7 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			topology := int32(v)
			m.Topology = &topology
			data = rest
		case num == 8 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			strategy := int32(v)
			m.UpdateStrategy = &strategy
			data = rest
		case num == 9 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			interval := &HealthCheckInterval{}
			if err := interval.UnmarshalWire(sub); err != nil {
				return err
			}
			m.HealthCheckInterval = interval
			data = rest
		case num == 10 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			timeout := uint32(v)
			m.ShutdownTimeout = &timeout
			data = rest
		case num == 11 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			condition := int32(v)
			m.UpdateCondition = &condition
			data = rest
		case num == 12 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.SvcEncryptedPassword = &v
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *SvcStart) MarshalWire() []byte {
	var b []byte
	if m.Ident != nil {
		b = appendMessage(b, 1, m.Ident.MarshalWire())
	}
	return b
}

func (m *SvcStart) UnmarshalWire(data []byte) error {
	ident, _, err := unmarshalIdentTimeout(data)
	if err != nil {
		return err
	}
	m.Ident = ident
	return nil
}

func (m *SvcStop) MarshalWire() []byte {
	return marshalIdentTimeout(m.Ident, m.ShutdownTimeout)
}

func (m *SvcStop) UnmarshalWire(data []byte) error {
	ident, timeout, err := unmarshalIdentTimeout(data)
	if err != nil {
		return err
	}
	m.Ident = ident
	m.ShutdownTimeout = timeout
	return nil
}

func (m *SvcUnload) MarshalWire() []byte {
	return marshalIdentTimeout(m.Ident, m.ShutdownTimeout)
}

func (m *SvcUnload) UnmarshalWire(data []byte) error {
	ident, timeout, err := unmarshalIdentTimeout(data)
	if err != nil {
		return err
	}
	m.Ident = ident
	m.ShutdownTimeout = timeout
	return nil
}

func (m *SvcStatus) MarshalWire() []byte {
	var b []byte
	if m.Ident != nil {
		b = appendMessage(b, 1, m.Ident.MarshalWire())
	}
	return b
}

func (m *SvcStatus) UnmarshalWire(data []byte) error {
	ident, _, err := unmarshalIdentTimeout(data)
	if err != nil {
		return err
	}
	m.Ident = ident
	return nil
}

func (m *Ack) MarshalWire() []byte {
	var b []byte
	if m.OK != nil {
		b = appendBool(b, 1, *m.OK)
	}
	if m.Message != nil {
		b = appendString(b, 2, *m.Message)
	}
	return b
}

func (m *Ack) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			ok := protowire.DecodeBool(v)
			m.OK = &ok
			data = rest
		case num == 2 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.Message = &v
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *ServiceStatus) MarshalWire() []byte {
	var b []byte
	if m.Ident != nil {
		b = appendMessage(b, 1, m.Ident.MarshalWire())
	}
	if m.State != nil {
		b = appendString(b, 2, *m.State)
	}
	if m.Pid != nil {
		b = appendVarint(b, 3, uint64(*m.Pid))
	}
	if m.ServiceGroup != nil {
		b = appendString(b, 4, *m.ServiceGroup)
	}
	return b
}

func (m *ServiceStatus) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			ident := &PackageRef{}
			if err := ident.UnmarshalWire(sub); err != nil {
				return err
			}
			m.Ident = ident
			data = rest
		case num == 2 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.State = &v
			data = rest
		case num == 3 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return err
			}
			pid := uint32(v)
			m.Pid = &pid
			data = rest
		case num == 4 && typ == protowire.BytesType:
			v, rest, err := consumeString(data)
			if err != nil {
				return err
			}
			m.ServiceGroup = &v
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

func (m *StatusReply) MarshalWire() []byte {
	var b []byte
	for _, status := range m.Statuses {
		b = appendMessage(b, 1, status.MarshalWire())
	}
	return b
}

func (m *StatusReply) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return err
			}
			status := &ServiceStatus{}
			if err := status.UnmarshalWire(sub); err != nil {
				return err
			}
			m.Statuses = append(m.Statuses, status)
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return err
			}
			data = rest
		}
	}
	return nil
}

// marshalIdentTimeout covers the shared {1 ident, 2 shutdown_timeout} shape
// of the start, stop, unload and status requests.
func marshalIdentTimeout(ident *PackageRef, timeout *uint32) []byte {
	var b []byte
	if ident != nil {
		b = appendMessage(b, 1, ident.MarshalWire())
	}
	if timeout != nil {
		b = appendVarint(b, 2, uint64(*timeout))
	}
	return b
}

func unmarshalIdentTimeout(data []byte) (*PackageRef, *uint32, error) {
	var ident *PackageRef
	var timeout *uint32

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, nil, wireError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, rest, err := consumeMessage(data)
			if err != nil {
				return nil, nil, err
			}
			ident = &PackageRef{}
			if err := ident.UnmarshalWire(sub); err != nil {
				return nil, nil, err
			}
			data = rest
		case num == 2 && typ == protowire.VarintType:
			v, rest, err := consumeVarint(data)
			if err != nil {
				return nil, nil, err
			}
			value := uint32(v)
			timeout = &value
			data = rest
		default:
			rest, err := skipField(num, typ, data)
			if err != nil {
				return nil, nil, err
			}
			data = rest
		}
	}
	return ident, timeout, nil
}

func appendMessage(b []byte, num protowire.Number, sub []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func consumeString(data []byte) (string, []byte, error) {
	v, n := protowire.ConsumeString(data)
	if n < 0 {
		return "", nil, wireError(n)
	}
	return v, data[n:], nil
}

func consumeVarint(data []byte) (uint64, []byte, error) {
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, nil, wireError(n)
	}
	return v, data[n:], nil
}

func consumeMessage(data []byte) ([]byte, []byte, error) {
	sub, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, nil, wireError(n)
	}
	return sub, data[n:], nil
}

func skipField(num protowire.Number, typ protowire.Type, data []byte) ([]byte, error) {
	n := protowire.ConsumeFieldValue(num, typ, data)
	if n < 0 {
		return nil, wireError(n)
	}
	return data[n:], nil
}

func wireError(n int) error {
	return errors.NewDecodeError("malformed wire message", protowire.ParseError(n))
}
