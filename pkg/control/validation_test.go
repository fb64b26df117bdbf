package control

import (
	"testing"
	"time"

	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name      string
		port      int
		shouldErr bool
	}{
		{"valid_port", 8080, false},
		{"port_1", 1, false},
		{"port_65535", 65535, false},
		{"port_0", 0, true},
		{"port_negative", -1, true},
		{"port_too_high", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePort(tt.port)

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNetworkAddress(t *testing.T) {
	tests := []struct {
		name      string
		address   string
		shouldErr bool
	}{
		{"valid_localhost", "localhost:8080", false},
		{"valid_ip", "127.0.0.1:9632", false},
		{"valid_hostname", "sup.example.com:9632", false},
		{"empty_address", "", true},
		{"no_port", "localhost", true},
		{"empty_host", ":8080", true},
		{"port_not_numeric", "localhost:abc", true},
		{"port_out_of_range", "localhost:70000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNetworkAddress(tt.address)

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		name      string
		timeout   time.Duration
		shouldErr bool
	}{
		{"valid_timeout", 5 * time.Second, false},
		{"valid_small", time.Millisecond, false},
		{"zero_timeout", 0, true},
		{"negative_timeout", -1 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeout(tt.timeout, "test")

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
