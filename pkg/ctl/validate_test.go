package ctl

import (
	"testing"

	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidateSvcUpdate(t *testing.T) {
	ident := &PackageRef{Origin: stringPtr("core"), Name: stringPtr("redis")}

	tests := []struct {
		name      string
		request   *SvcUpdate
		shouldErr bool
		checkFn   func(error) bool
	}{
		{"nil_request", nil, true, errors.IsValidationError},
		{"identity_only", &SvcUpdate{Ident: ident}, true, errors.IsEmptyUpdateError},
		{"no_fields_at_all", &SvcUpdate{}, true, errors.IsEmptyUpdateError},
		{"one_field", &SvcUpdate{Ident: ident, Group: stringPtr("prod")}, false, nil},
		{"empty_bind_list_counts", &SvcUpdate{Ident: ident, Binds: &ServiceBindList{}}, false, nil},
		{"numeric_field", &SvcUpdate{Ident: ident, ShutdownTimeout: uint32Ptr(0)}, false, nil},
		{"credential_only", &SvcUpdate{Ident: ident, SvcEncryptedPassword: stringPtr("deadbeef")}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSvcUpdate(tt.request)

			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, tt.checkFn(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
