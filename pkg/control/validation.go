package control

import (
	"net"
	"strconv"
	"time"

	"github.com/core-tools/hsu-svcctl/pkg/errors"
)

// ValidatePort validates port number
func ValidatePort(port int) error {
	if port <= 0 || port > 65535 {
		return errors.NewValidationError("port must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateNetworkAddress validates network address format
func ValidateNetworkAddress(address string) error {
	if address == "" {
		return errors.NewValidationError("network address cannot be empty", nil)
	}

	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return errors.NewValidationError("invalid network address format: "+address, err)
	}

	if host == "" {
		return errors.NewValidationError("host cannot be empty in address: "+address, nil)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.NewValidationError("invalid port in address: "+address, err)
	}

	if err := ValidatePort(port); err != nil {
		return errors.NewValidationError("invalid port in address: "+address, err)
	}

	return nil
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout < 0 {
		return errors.NewValidationError(name+" timeout cannot be negative", nil)
	}

	if timeout == 0 {
		return errors.NewValidationError(name+" timeout cannot be zero", nil)
	}

	return nil
}
