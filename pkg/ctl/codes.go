package ctl

import (
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"
)

// Wire codes for the spec enumerations. The mapping is versioned: a code is
// never renumbered, only extended, so that requests stay compatible with
// daemons already in the field.
const (
	TopologyCodeStandalone int32 = 0
	TopologyCodeLeader     int32 = 1

	UpdateStrategyCodeNone    int32 = 0
	UpdateStrategyCodeAtOnce  int32 = 1
	UpdateStrategyCodeRolling int32 = 2

	UpdateConditionCodeLatest       int32 = 0
	UpdateConditionCodeTrackChannel int32 = 1

	BindingModeCodeStrict  int32 = 0
	BindingModeCodeRelaxed int32 = 1
)

// TopologyCode maps a topology to its wire code
func TopologyCode(topology svcspec.Topology) int32 {
	switch topology {
	case svcspec.TopologyLeader:
		return TopologyCodeLeader
	default:
		return TopologyCodeStandalone
	}
}

// UpdateStrategyCode maps an update strategy to its wire code
func UpdateStrategyCode(strategy svcspec.UpdateStrategy) int32 {
	switch strategy {
	case svcspec.UpdateStrategyAtOnce:
		return UpdateStrategyCodeAtOnce
	case svcspec.UpdateStrategyRolling:
		return UpdateStrategyCodeRolling
	default:
		return UpdateStrategyCodeNone
	}
}

// UpdateConditionCode maps an update condition to its wire code
func UpdateConditionCode(condition svcspec.UpdateCondition) int32 {
	switch condition {
	case svcspec.UpdateConditionTrackChannel:
		return UpdateConditionCodeTrackChannel
	default:
		return UpdateConditionCodeLatest
	}
}

// BindingModeCode maps a binding mode to its wire code
func BindingModeCode(mode svcspec.BindingMode) int32 {
	switch mode {
	case svcspec.BindingModeRelaxed:
		return BindingModeCodeRelaxed
	default:
		return BindingModeCodeStrict
	}
}
