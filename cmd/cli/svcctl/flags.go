package main

import (
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"
)

// specFlagOptions is the flag set shared by load and update. Every field is
// a pointer (or a slice) so the invocation layer only contains what the user
// actually typed: go-flags leaves untouched fields nil, which is the
// "unset" provenance the resolver needs.
type specFlagOptions struct {
	Channel             *string                  `long:"channel" description:"release channel to install the service package from"`
	URL                 *string                  `long:"url" description:"package registry endpoint URL"`
	Group               *string                  `long:"group" description:"service group name"`
	Topology            *svcspec.Topology        `long:"topology" description:"service topology: standalone or leader"`
	Strategy            *svcspec.UpdateStrategy  `long:"strategy" description:"update strategy: none, at-once or rolling"`
	UpdateCondition     *svcspec.UpdateCondition `long:"update-condition" description:"update condition: latest or track-channel"`
	Bind                []svcspec.ServiceBind    `long:"bind" description:"bind of the form name:service.group (repeatable)"`
	BindingMode         *svcspec.BindingMode     `long:"binding-mode" description:"binding mode: strict or relaxed"`
	HealthCheckInterval *uint64                  `long:"health-check-interval" description:"health check interval in seconds"`
	ShutdownTimeout     *uint32                  `long:"shutdown-timeout" description:"seconds to wait for shutdown before the service is killed"`
	Password            *string                  `long:"password" description:"service start password (protected on platforms that support it)"`
}

// toLayer converts the parsed flags into an invocation layer
func (o *specFlagOptions) toLayer() *svcspec.Layer {
	layer := &svcspec.Layer{
		Channel:             o.Channel,
		URL:                 o.URL,
		Group:               o.Group,
		Topology:            o.Topology,
		Strategy:            o.Strategy,
		UpdateCondition:     o.UpdateCondition,
		BindingMode:         o.BindingMode,
		HealthCheckInterval: o.HealthCheckInterval,
		ShutdownTimeout:     o.ShutdownTimeout,
		Password:            o.Password,
	}

	// Flags cannot express an explicitly empty bind list, so no binds on
	// the command line means unset, not "clear".
	if len(o.Bind) > 0 {
		binds := make([]svcspec.ServiceBind, len(o.Bind))
		copy(binds, o.Bind)
		layer.Bind = &binds
	}

	return layer
}
