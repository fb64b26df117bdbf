package svcspec

import (
	"testing"

	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestParseTopology(t *testing.T) {
	tests := []struct {
		input     string
		shouldErr bool
		expected  Topology
	}{
		{"standalone", false, TopologyStandalone},
		{"leader", false, TopologyLeader},
		{"quorum", true, ""},
		{"Standalone", true, ""},
		{"", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topology, err := ParseTopology(tt.input)

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, topology)
			}
		})
	}
}

func TestParseUpdateStrategy(t *testing.T) {
	tests := []struct {
		input     string
		shouldErr bool
		expected  UpdateStrategy
	}{
		{"none", false, UpdateStrategyNone},
		{"at-once", false, UpdateStrategyAtOnce},
		{"rolling", false, UpdateStrategyRolling},
		{"at_once", true, ""},
		{"", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			strategy, err := ParseUpdateStrategy(tt.input)

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, strategy)
			}
		})
	}
}

func TestParseUpdateCondition(t *testing.T) {
	tests := []struct {
		input     string
		shouldErr bool
		expected  UpdateCondition
	}{
		{"latest", false, UpdateConditionLatest},
		{"track-channel", false, UpdateConditionTrackChannel},
		{"track", true, ""},
		{"", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			condition, err := ParseUpdateCondition(tt.input)

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, condition)
			}
		})
	}
}

func TestParseBindingMode(t *testing.T) {
	tests := []struct {
		input     string
		shouldErr bool
		expected  BindingMode
	}{
		{"strict", false, BindingModeStrict},
		{"relaxed", false, BindingModeRelaxed},
		{"loose", true, ""},
		{"", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseBindingMode(tt.input)

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, mode)
			}
		})
	}
}
