package ctl

import (
	"testing"

	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// fieldNumbers parses a wire message and returns its top-level field
// numbers in encounter order.
func fieldNumbers(t *testing.T, data []byte) []protowire.Number {
	t.Helper()
	var nums []protowire.Number
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		require.GreaterOrEqual(t, n, 0)
		data = data[n:]
		skipped := protowire.ConsumeFieldValue(num, typ, data)
		require.GreaterOrEqual(t, skipped, 0)
		data = data[skipped:]
		nums = append(nums, num)
	}
	return nums
}

func fullyQualifiedIdent() *PackageRef {
	return &PackageRef{
		Origin:  stringPtr("core"),
		Name:    stringPtr("redis"),
		Version: stringPtr("4.0.14"),
		Release: stringPtr("20180801005930"),
	}
}

func TestSvcLoadWireRoundTrip(t *testing.T) {
	original := &SvcLoad{
		Ident: fullyQualifiedIdent(),
		Binds: &ServiceBindList{Binds: []*ServiceBind{
			{Name: stringPtr("cache"), ServiceGroup: stringPtr("redis.default")},
			{Name: stringPtr("database"), ServiceGroup: stringPtr("postgres.prod")},
		}},
		BindingMode:          codePtr(BindingModeCodeRelaxed),
		URL:                  stringPtr("https://registry.example.com"),
		Channel:              stringPtr("unstable"),
		ConfigFrom:           stringPtr("/tmp/override"),
		Force:                boolPtr(true),
		Group:                stringPtr("prod"),
		SvcEncryptedPassword: stringPtr("deadbeef"),
		Topology:             codePtr(TopologyCodeLeader),
		UpdateStrategy:       codePtr(UpdateStrategyCodeRolling),
		HealthCheckInterval:  &HealthCheckInterval{Seconds: uint64Ptr(10)},
		ShutdownTimeout:      uint32Ptr(7),
		UpdateCondition:      codePtr(UpdateConditionCodeTrackChannel),
	}

	decoded := &SvcLoad{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))
	assert.Equal(t, original, decoded)
}

func TestSvcLoadWireSparse(t *testing.T) {
	original := &SvcLoad{
		Ident: &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")},
	}

	decoded := &SvcLoad{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))

	// Absent fields stay absent across the wire.
	assert.Equal(t, original, decoded)
	assert.Nil(t, decoded.Binds)
	assert.Nil(t, decoded.Force)
	assert.Nil(t, decoded.ShutdownTimeout)
}

func TestSvcLoadWireFieldNumbers(t *testing.T) {
	load := &SvcLoad{
		Ident:                fullyQualifiedIdent(),
		Binds:                &ServiceBindList{},
		BindingMode:          codePtr(0),
		URL:                  stringPtr("u"),
		Channel:              stringPtr("c"),
		ConfigFrom:           stringPtr("f"),
		Force:                boolPtr(false),
		Group:                stringPtr("g"),
		SvcEncryptedPassword: stringPtr("p"),
		Topology:             codePtr(0),
		UpdateStrategy:       codePtr(0),
		HealthCheckInterval:  &HealthCheckInterval{Seconds: uint64Ptr(0)},
		ShutdownTimeout:      uint32Ptr(0),
		UpdateCondition:      codePtr(0),
	}

	// Field 2 is retired and must stay unused.
	expected := []protowire.Number{1, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	assert.Equal(t, expected, fieldNumbers(t, load.MarshalWire()))
}

func TestSvcUpdateWireFieldNumbers(t *testing.T) {
	update := &SvcUpdate{
		Ident:                fullyQualifiedIdent(),
		Binds:                &ServiceBindList{},
		BindingMode:          codePtr(0),
		URL:                  stringPtr("u"),
		Channel:              stringPtr("c"),
		Group:                stringPtr("g"),
		Topology:             codePtr(0),
		UpdateStrategy:       codePtr(0),
		HealthCheckInterval:  &HealthCheckInterval{Seconds: uint64Ptr(0)},
		ShutdownTimeout:      uint32Ptr(0),
		UpdateCondition:      codePtr(0),
		SvcEncryptedPassword: stringPtr("p"),
	}

	expected := []protowire.Number{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	assert.Equal(t, expected, fieldNumbers(t, update.MarshalWire()))
}

func TestSvcUpdateWireRoundTrip(t *testing.T) {
	original := &SvcUpdate{
		Ident:                &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")},
		Channel:              stringPtr("unstable"),
		ShutdownTimeout:      uint32Ptr(0),
		SvcEncryptedPassword: stringPtr("deadbeef"),
	}

	decoded := &SvcUpdate{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))
	assert.Equal(t, original, decoded)
}

func TestSvcUpdateWirePreservesEmptyBindList(t *testing.T) {
	original := &SvcUpdate{
		Ident: &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")},
		Binds: &ServiceBindList{},
	}

	decoded := &SvcUpdate{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))

	// "Clear all binds" and "do not change binds" must stay distinct.
	require.NotNil(t, decoded.Binds)
	assert.Len(t, decoded.Binds.Binds, 0)
}

func TestSvcStopWireRoundTrip(t *testing.T) {
	original := &SvcStop{
		Ident:           &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")},
		ShutdownTimeout: uint32Ptr(7),
	}

	decoded := &SvcStop{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))
	assert.Equal(t, original, decoded)

	withoutTimeout := &SvcStop{Ident: &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")}}
	decoded = &SvcStop{}
	require.NoError(t, decoded.UnmarshalWire(withoutTimeout.MarshalWire()))
	assert.Nil(t, decoded.ShutdownTimeout)
}

func TestSvcUnloadWireRoundTrip(t *testing.T) {
	original := &SvcUnload{
		Ident:           &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")},
		ShutdownTimeout: uint32Ptr(3),
	}

	decoded := &SvcUnload{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))
	assert.Equal(t, original, decoded)
}

func TestSvcStartWireRoundTrip(t *testing.T) {
	original := &SvcStart{Ident: &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")}}

	decoded := &SvcStart{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))
	assert.Equal(t, original, decoded)
}

func TestSvcStatusWireRoundTrip(t *testing.T) {
	// An absent ident queries all services and encodes as an empty message.
	everything := &SvcStatus{}
	assert.Empty(t, everything.MarshalWire())

	decoded := &SvcStatus{}
	require.NoError(t, decoded.UnmarshalWire(nil))
	assert.Nil(t, decoded.Ident)

	one := &SvcStatus{Ident: &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")}}
	decoded = &SvcStatus{}
	require.NoError(t, decoded.UnmarshalWire(one.MarshalWire()))
	assert.Equal(t, one, decoded)
}

func TestAckWireRoundTrip(t *testing.T) {
	original := &Ack{OK: boolPtr(false), Message: stringPtr("service not loaded")}

	decoded := &Ack{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))
	assert.Equal(t, original, decoded)
}

func TestStatusReplyWireRoundTrip(t *testing.T) {
	original := &StatusReply{Statuses: []*ServiceStatus{
		{
			Ident:        &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")},
			State:        stringPtr("up"),
			Pid:          uint32Ptr(4242),
			ServiceGroup: stringPtr("redis.default"),
		},
		{
			Ident: &PackageRef{Origin: stringPtr("core"), Name: stringPtr("postgres")},
			State: stringPtr("down"),
		},
	}}

	decoded := &StatusReply{}
	require.NoError(t, decoded.UnmarshalWire(original.MarshalWire()))
	assert.Equal(t, original, decoded)
}

func TestWireSkipsUnknownFields(t *testing.T) {
	load := &SvcLoad{Ident: &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")}}
	data := load.MarshalWire()

	// A newer peer may add fields; decoding must not choke on them.
	data = protowire.AppendTag(data, 99, protowire.VarintType)
	data = protowire.AppendVarint(data, 1)
	data = protowire.AppendTag(data, 98, protowire.BytesType)
	data = protowire.AppendBytes(data, []byte("future"))

	decoded := &SvcLoad{}
	require.NoError(t, decoded.UnmarshalWire(data))
	require.NotNil(t, decoded.Ident)
	assert.Equal(t, "redis", *decoded.Ident.Name)
}

func TestWireRejectsMalformedData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"bad_tag", []byte{0xFF}},
		{"truncated_message", []byte{0x0A, 0x10, 0x01}},
		{"truncated_varint", []byte{0x40, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&SvcLoad{}).UnmarshalWire(tt.data)
			assert.True(t, errors.IsDecodeError(err), "unexpected error: %v", err)
		})
	}
}
