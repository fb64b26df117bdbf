// Package ctl defines the control request messages sent to the supervisor
// daemon and the builders that produce them from resolved service specs.
//
// Messages use pointer fields so that "absent" and "present with the zero
// value" stay distinct on the wire, which the daemon relies on. A message is
// built once by this package and never mutated afterwards.
package ctl

import "strings"

// PackageRef identifies the package a request targets
type PackageRef struct {
	Origin  *string
	Name    *string
	Version *string
	Release *string
}

// String renders the set parts in origin/name[/version[/release]] form.
// Safe on a nil receiver so reply fields can be printed directly.
func (m *PackageRef) String() string {
	if m == nil {
		return "-"
	}
	parts := make([]string, 0, 4)
	for _, part := range []*string{m.Origin, m.Name, m.Version, m.Release} {
		if part != nil {
			parts = append(parts, *part)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}

// ServiceBind names a dependency binding, with the producer side expressed
// as a "service.group" string
type ServiceBind struct {
	Name         *string
	ServiceGroup *string
}

// ServiceBindList wraps the bind list so that an empty-but-present list and
// an absent list encode differently
type ServiceBindList struct {
	Binds []*ServiceBind
}

// HealthCheckInterval carries the health check period in seconds
type HealthCheckInterval struct {
	Seconds *uint64
}

// SvcLoad asks the supervisor to load a service. Every field a resolved
// spec decides is present; genuinely optional attributes are absent when
// the spec did not carry them.
type SvcLoad struct {
	Ident                *PackageRef
	Binds                *ServiceBindList
	BindingMode          *int32
	URL                  *string
	Channel              *string
	ConfigFrom           *string
	Force                *bool
	Group                *string
	SvcEncryptedPassword *string
	Topology             *int32
	UpdateStrategy       *int32
	HealthCheckInterval  *HealthCheckInterval
	ShutdownTimeout      *uint32
	UpdateCondition      *int32
}

// SvcUpdate patches the runtime-updatable fields of a loaded service. An
// absent field means "do not change". An empty-but-present bind list means
// "clear all binds", which is why the list is wrapped rather than repeated
// directly.
type SvcUpdate struct {
	Ident                *PackageRef
	Binds                *ServiceBindList
	BindingMode          *int32
	URL                  *string
	Channel              *string
	Group                *string
	Topology             *int32
	UpdateStrategy       *int32
	HealthCheckInterval  *HealthCheckInterval
	ShutdownTimeout      *uint32
	UpdateCondition      *int32
	SvcEncryptedPassword *string
}

// SvcStart asks the supervisor to start a loaded service
type SvcStart struct {
	Ident *PackageRef
}

// SvcStop asks the supervisor to stop a running service
type SvcStop struct {
	Ident           *PackageRef
	ShutdownTimeout *uint32
}

// SvcUnload removes a service from supervision
type SvcUnload struct {
	Ident           *PackageRef
	ShutdownTimeout *uint32
}

// SvcStatus queries service state. An absent ident means all services.
type SvcStatus struct {
	Ident *PackageRef
}

// Ack is the daemon's reply to load, update, start, stop and unload
type Ack struct {
	OK      *bool
	Message *string
}

// ServiceStatus is one service's state in a status reply
type ServiceStatus struct {
	Ident        *PackageRef
	State        *string
	Pid          *uint32
	ServiceGroup *string
}

// StatusReply is the daemon's reply to a status query
type StatusReply struct {
	Statuses []*ServiceStatus
}
