package svcspec

import (
	"strings"

	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"github.com/BurntSushi/toml"
)

// specDocument mirrors the TOML key set of Layer so that generated files
// decode back into an equivalent layer.
type specDocument struct {
	Ident               PackageRef      `toml:"pkg_ident"`
	Channel             string          `toml:"channel"`
	URL                 *string         `toml:"url,omitempty"`
	Group               string          `toml:"group"`
	Topology            Topology        `toml:"topology"`
	Strategy            UpdateStrategy  `toml:"update_strategy"`
	UpdateCondition     UpdateCondition `toml:"update_condition"`
	Bind                []ServiceBind   `toml:"bind,omitempty"`
	BindingMode         BindingMode     `toml:"binding_mode"`
	HealthCheckInterval uint64          `toml:"health_check_interval"`
	ShutdownTimeout     *uint32         `toml:"shutdown_timeout,omitempty"`
	ConfigFrom          *string         `toml:"config_from,omitempty"`
	Password            *string         `toml:"password,omitempty"`
	RemoteSup           *string         `toml:"remote_sup,omitempty"`
	Force               bool            `toml:"force,omitempty"`
}

// GenerateTOML renders a resolved spec as a TOML document suitable for use
// as a per-service spec file. Optional fields without a value are omitted.
func GenerateTOML(spec *ResolvedSpec) (string, error) {
	if spec == nil {
		return "", errors.NewValidationError("spec cannot be nil", nil)
	}

	doc := specDocument{
		Ident:               spec.Ident,
		Channel:             spec.Channel,
		URL:                 spec.URL,
		Group:               spec.Group,
		Topology:            spec.Topology,
		Strategy:            spec.Strategy,
		UpdateCondition:     spec.UpdateCondition,
		Bind:                spec.Binds,
		BindingMode:         spec.BindingMode,
		HealthCheckInterval: spec.HealthCheckInterval,
		ShutdownTimeout:     spec.ShutdownTimeout,
		ConfigFrom:          spec.ConfigFrom,
		Password:            spec.Password,
		RemoteSup:           spec.RemoteSup,
		Force:               spec.Force,
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(doc); err != nil {
		return "", errors.NewInternalError("failed to encode spec as TOML", err)
	}

	return sb.String(), nil
}
