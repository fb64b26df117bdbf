package svcspec

// Layer is one source of service specification values at a fixed precedence
// rank: the invocation (command line), a persisted per-service file, or the
// process-wide default file. Every field is a pointer so that "explicitly
// set" and "unset" survive decoding: nil means the layer said nothing about
// the field, which makes it eligible for inheritance from a lower layer.
//
// A Layer is also the sparse specification shape used by update requests,
// where an unset field means "do not change".
type Layer struct {
	// Ident is the service identity. It is exempt from default-file
	// inheritance: resolution fails unless the invocation or the service
	// file supplies it.
	Ident *PackageRef `toml:"pkg_ident"`

	// Force reloads the service even if it is already loaded.
	Force *bool `toml:"force"`

	// RemoteSup overrides the supervisor control address for this spec.
	RemoteSup *string `toml:"remote_sup"`

	Channel             *string          `toml:"channel"`
	URL                 *string          `toml:"url"`
	Group               *string          `toml:"group"`
	Topology            *Topology        `toml:"topology"`
	Strategy            *UpdateStrategy  `toml:"update_strategy"`
	UpdateCondition     *UpdateCondition `toml:"update_condition"`
	Bind                *[]ServiceBind   `toml:"bind"`
	BindingMode         *BindingMode     `toml:"binding_mode"`
	HealthCheckInterval *uint64          `toml:"health_check_interval"`
	ShutdownTimeout     *uint32          `toml:"shutdown_timeout"`
	Password            *string          `toml:"password"`
	ConfigFrom          *string          `toml:"config_from"`

	// Deprecated and ignored. Accepted from the command line for backward
	// compatibility, never from files; the request builder warns when set.
	Application []string `toml:"-"`
	Environment []string `toml:"-"`
}

// Clone returns a deep copy. Resolution always patches a copy so the source
// layers, in particular the shared default layer, are never written to.
func (l *Layer) Clone() *Layer {
	clone := &Layer{}
	clone.adoptFrom(l, true)
	if l.Application != nil {
		clone.Application = append([]string(nil), l.Application...)
	}
	if l.Environment != nil {
		clone.Environment = append([]string(nil), l.Environment...)
	}
	return clone
}

// adoptFrom copies every field that is unset in l and explicitly set in
// lower. Adopted values are deep copies, and become "set" in l, so a further
// call with a still-lower layer cannot override them. The identity field is
// only adopted when adoptIdentity is true: the default layer never supplies
// an identity.
func (l *Layer) adoptFrom(lower *Layer, adoptIdentity bool) {
	if adoptIdentity && l.Ident == nil && lower.Ident != nil {
		ident := *lower.Ident
		l.Ident = &ident
	}
	if l.Force == nil && lower.Force != nil {
		force := *lower.Force
		l.Force = &force
	}
	if l.RemoteSup == nil && lower.RemoteSup != nil {
		remoteSup := *lower.RemoteSup
		l.RemoteSup = &remoteSup
	}
	if l.Channel == nil && lower.Channel != nil {
		channel := *lower.Channel
		l.Channel = &channel
	}
	if l.URL == nil && lower.URL != nil {
		url := *lower.URL
		l.URL = &url
	}
	if l.Group == nil && lower.Group != nil {
		group := *lower.Group
		l.Group = &group
	}
	if l.Topology == nil && lower.Topology != nil {
		topology := *lower.Topology
		l.Topology = &topology
	}
	if l.Strategy == nil && lower.Strategy != nil {
		strategy := *lower.Strategy
		l.Strategy = &strategy
	}
	if l.UpdateCondition == nil && lower.UpdateCondition != nil {
		condition := *lower.UpdateCondition
		l.UpdateCondition = &condition
	}
	if l.Bind == nil && lower.Bind != nil {
		binds := make([]ServiceBind, len(*lower.Bind))
		copy(binds, *lower.Bind)
		l.Bind = &binds
	}
	if l.BindingMode == nil && lower.BindingMode != nil {
		mode := *lower.BindingMode
		l.BindingMode = &mode
	}
	if l.HealthCheckInterval == nil && lower.HealthCheckInterval != nil {
		interval := *lower.HealthCheckInterval
		l.HealthCheckInterval = &interval
	}
	if l.ShutdownTimeout == nil && lower.ShutdownTimeout != nil {
		timeout := *lower.ShutdownTimeout
		l.ShutdownTimeout = &timeout
	}
	if l.Password == nil && lower.Password != nil {
		password := *lower.Password
		l.Password = &password
	}
	if l.ConfigFrom == nil && lower.ConfigFrom != nil {
		configFrom := *lower.ConfigFrom
		l.ConfigFrom = &configFrom
	}
}
