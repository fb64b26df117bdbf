package svcspec

import (
	"github.com/core-tools/hsu-svcctl/pkg/errors"
)

// Resolve merges an invocation layer over an optional per-service file layer
// over an optional default file layer into one fully decided specification.
//
// Precedence is strictly invocation > service file > default file > built-in
// default. Merging runs in that order with take semantics: a field adopted
// from the service file counts as set when the default file is considered, so
// the default file can never override it. The identity is exempt from
// default-file inheritance; if neither the invocation nor the service file
// set it, resolution fails with a missing-identity error.
func Resolve(invocation *Layer, serviceFile, defaultFile *Layer) (*ResolvedSpec, error) {
	if invocation == nil {
		invocation = &Layer{}
	}
	merged := invocation.Clone()
	if serviceFile != nil {
		merged.adoptFrom(serviceFile, true)
	}
	if defaultFile != nil {
		merged.adoptFrom(defaultFile, false)
	}

	if merged.Ident == nil {
		return nil, errors.NewMissingIdentityError("no layer supplied the service identity", nil)
	}

	spec := &ResolvedSpec{
		Ident:               *merged.Ident,
		Channel:             DefaultChannel,
		URL:                 merged.URL,
		Group:               DefaultGroup,
		Topology:            DefaultTopology,
		Strategy:            DefaultStrategy,
		UpdateCondition:     DefaultUpdateCondition,
		BindingMode:         DefaultBindingMode,
		HealthCheckInterval: DefaultHealthCheckIntervalSeconds,
		ShutdownTimeout:     merged.ShutdownTimeout,
		Password:            merged.Password,
		ConfigFrom:          merged.ConfigFrom,
		RemoteSup:           merged.RemoteSup,
		Application:         merged.Application,
		Environment:         merged.Environment,
	}
	if merged.Channel != nil {
		spec.Channel = *merged.Channel
	}
	if merged.Group != nil {
		spec.Group = *merged.Group
	}
	if merged.Topology != nil {
		spec.Topology = *merged.Topology
	}
	if merged.Strategy != nil {
		spec.Strategy = *merged.Strategy
	}
	if merged.UpdateCondition != nil {
		spec.UpdateCondition = *merged.UpdateCondition
	}
	if merged.Bind != nil {
		spec.Binds = *merged.Bind
	}
	if merged.BindingMode != nil {
		spec.BindingMode = *merged.BindingMode
	}
	if merged.HealthCheckInterval != nil {
		spec.HealthCheckInterval = *merged.HealthCheckInterval
	}
	if merged.Force != nil {
		spec.Force = *merged.Force
	}

	return spec, nil
}
