package svcspec

import (
	"fmt"

	"github.com/core-tools/hsu-svcctl/pkg/errors"
)

// Topology represents how instances of a service relate to each other
type Topology string

const (
	// TopologyStandalone runs every instance independently
	TopologyStandalone Topology = "standalone"

	// TopologyLeader elects a leader among the instances
	TopologyLeader Topology = "leader"
)

// ParseTopology validates and converts the textual form of a topology.
func ParseTopology(s string) (Topology, error) {
	switch Topology(s) {
	case TopologyStandalone, TopologyLeader:
		return Topology(s), nil
	}
	return "", errors.NewValidationError(
		fmt.Sprintf("unsupported topology: %s", s), nil,
	).WithContext("supported_values", "standalone, leader")
}

func (t *Topology) UnmarshalText(text []byte) error {
	parsed, err := ParseTopology(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Topology) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// UnmarshalFlag implements the go-flags unmarshaler for command line parsing.
func (t *Topology) UnmarshalFlag(value string) error {
	return t.UnmarshalText([]byte(value))
}

// UpdateStrategy represents how a service applies package updates
type UpdateStrategy string

const (
	// UpdateStrategyNone never updates a running service
	UpdateStrategyNone UpdateStrategy = "none"

	// UpdateStrategyAtOnce updates all instances immediately
	UpdateStrategyAtOnce UpdateStrategy = "at-once"

	// UpdateStrategyRolling updates instances one at a time
	UpdateStrategyRolling UpdateStrategy = "rolling"
)

// ParseUpdateStrategy validates and converts the textual form of an update strategy.
func ParseUpdateStrategy(s string) (UpdateStrategy, error) {
	switch UpdateStrategy(s) {
	case UpdateStrategyNone, UpdateStrategyAtOnce, UpdateStrategyRolling:
		return UpdateStrategy(s), nil
	}
	return "", errors.NewValidationError(
		fmt.Sprintf("unsupported update strategy: %s", s), nil,
	).WithContext("supported_values", "none, at-once, rolling")
}

func (u *UpdateStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseUpdateStrategy(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u UpdateStrategy) MarshalText() ([]byte, error) {
	return []byte(u), nil
}

// UnmarshalFlag implements the go-flags unmarshaler for command line parsing.
func (u *UpdateStrategy) UnmarshalFlag(value string) error {
	return u.UnmarshalText([]byte(value))
}

// UpdateCondition represents the condition dictating when a service updates
type UpdateCondition string

const (
	// UpdateConditionLatest runs the latest package found in the channel and
	// among local packages
	UpdateConditionLatest UpdateCondition = "latest"

	// UpdateConditionTrackChannel always runs what is at the head of the
	// channel, rolling back if the head is demoted
	UpdateConditionTrackChannel UpdateCondition = "track-channel"
)

// ParseUpdateCondition validates and converts the textual form of an update condition.
func ParseUpdateCondition(s string) (UpdateCondition, error) {
	switch UpdateCondition(s) {
	case UpdateConditionLatest, UpdateConditionTrackChannel:
		return UpdateCondition(s), nil
	}
	return "", errors.NewValidationError(
		fmt.Sprintf("unsupported update condition: %s", s), nil,
	).WithContext("supported_values", "latest, track-channel")
}

func (u *UpdateCondition) UnmarshalText(text []byte) error {
	parsed, err := ParseUpdateCondition(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u UpdateCondition) MarshalText() ([]byte, error) {
	return []byte(u), nil
}

// UnmarshalFlag implements the go-flags unmarshaler for command line parsing.
func (u *UpdateCondition) UnmarshalFlag(value string) error {
	return u.UnmarshalText([]byte(value))
}

// BindingMode governs how the presence or absence of binds affects service startup
type BindingMode string

const (
	// BindingModeStrict blocks startup until all binds are present
	BindingModeStrict BindingMode = "strict"

	// BindingModeRelaxed starts the service whether binds are present or not
	BindingModeRelaxed BindingMode = "relaxed"
)

// ParseBindingMode validates and converts the textual form of a binding mode.
func ParseBindingMode(s string) (BindingMode, error) {
	switch BindingMode(s) {
	case BindingModeStrict, BindingModeRelaxed:
		return BindingMode(s), nil
	}
	return "", errors.NewValidationError(
		fmt.Sprintf("unsupported binding mode: %s", s), nil,
	).WithContext("supported_values", "strict, relaxed")
}

func (b *BindingMode) UnmarshalText(text []byte) error {
	parsed, err := ParseBindingMode(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b BindingMode) MarshalText() ([]byte, error) {
	return []byte(b), nil
}

// UnmarshalFlag implements the go-flags unmarshaler for command line parsing.
func (b *BindingMode) UnmarshalFlag(value string) error {
	return b.UnmarshalText([]byte(value))
}
