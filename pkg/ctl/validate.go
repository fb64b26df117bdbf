package ctl

import (
	"github.com/core-tools/hsu-svcctl/pkg/errors"
)

// ValidateSvcUpdate enforces that an update changes at least one field:
// identity alone is not an update. This is a purely structural check, it
// consults no external state, and it is the last step before a request is
// considered ready to send.
func ValidateSvcUpdate(request *SvcUpdate) error {
	if request == nil {
		return errors.NewValidationError("update request cannot be nil", nil)
	}

	if request.Binds == nil &&
		request.BindingMode == nil &&
		request.URL == nil &&
		request.Channel == nil &&
		request.Group == nil &&
		request.Topology == nil &&
		request.UpdateStrategy == nil &&
		request.HealthCheckInterval == nil &&
		request.ShutdownTimeout == nil &&
		request.UpdateCondition == nil &&
		request.SvcEncryptedPassword == nil {
		return errors.NewEmptyUpdateError("no fields specified for update", nil)
	}

	return nil
}
