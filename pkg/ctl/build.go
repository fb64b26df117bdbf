package ctl

import (
	"os"

	"github.com/core-tools/hsu-svcctl/pkg/errors"
	"github.com/core-tools/hsu-svcctl/pkg/secrets"
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"
	"github.com/core-tools/hsu-svcctl/pkg/ui"
)

// RegistryURLEnvVar names the environment fallback for the package registry
// endpoint, consulted by load requests when no layer set a URL. Update
// requests never consult the environment.
const RegistryURLEnvVar = "HSU_REGISTRY_URL"

// DefaultRegistryURL is the endpoint used when neither a layer nor the
// environment provides one
const DefaultRegistryURL = "https://registry.core-tools.dev"

// BuildOptions carries the request builders' collaborators
type BuildOptions struct {
	// UI receives user-facing diagnostics. Nil discards them.
	UI ui.UI

	// Protector encrypts spec credentials. Nil means the capability is
	// absent on this platform.
	Protector secrets.Protector
}

// BuildSvcLoad converts a fully resolved spec into a load request.
// Resolution failures are caught upstream; the only failure left here is a
// credential the platform protection capability rejects.
func BuildSvcLoad(spec *svcspec.ResolvedSpec, options BuildOptions) (*SvcLoad, error) {
	userInterface := options.UI
	if userInterface == nil {
		userInterface = ui.Discard()
	}

	warnDeprecatedFields(spec.Application, spec.Environment, userInterface)

	load := &SvcLoad{
		Ident:               packageRefMessage(spec.Ident),
		Binds:               bindListMessage(spec.Binds),
		BindingMode:         codePtr(BindingModeCode(spec.BindingMode)),
		URL:                 stringPtr(registryURL(spec.URL)),
		Channel:             stringPtr(spec.Channel),
		Force:               boolPtr(spec.Force),
		Group:               stringPtr(spec.Group),
		Topology:            codePtr(TopologyCode(spec.Topology)),
		UpdateStrategy:      codePtr(UpdateStrategyCode(spec.Strategy)),
		HealthCheckInterval: &HealthCheckInterval{Seconds: uint64Ptr(spec.HealthCheckInterval)},
		UpdateCondition:     codePtr(UpdateConditionCode(spec.UpdateCondition)),
	}

	if spec.ShutdownTimeout != nil {
		load.ShutdownTimeout = uint32Ptr(*spec.ShutdownTimeout)
	}

	if spec.ConfigFrom != nil {
		load.ConfigFrom = stringPtr(*spec.ConfigFrom)
		userInterface.Warn("config_from is a development-time override; the service will not pick up configuration from its package")
	}

	if spec.Password != nil {
		protected, err := protectCredential(*spec.Password, options.Protector, userInterface)
		if err != nil {
			return nil, err
		}
		load.SvcEncryptedPassword = protected
	}

	return load, nil
}

// BuildSvcUpdate converts a sparse layer into an update request. An unset
// field stays absent, meaning "do not change". The request is validated
// before it is returned.
func BuildSvcUpdate(layer *svcspec.Layer, options BuildOptions) (*SvcUpdate, error) {
	if layer == nil || layer.Ident == nil {
		return nil, errors.NewMissingIdentityError("update requires a service identity", nil)
	}

	userInterface := options.UI
	if userInterface == nil {
		userInterface = ui.Discard()
	}

	update := &SvcUpdate{
		Ident: packageRefMessage(*layer.Ident),
	}

	if layer.Bind != nil {
		// Presence is preserved even at length zero: an explicitly empty
		// list tells the daemon to clear all binds.
		list := &ServiceBindList{Binds: make([]*ServiceBind, 0, len(*layer.Bind))}
		for _, bind := range *layer.Bind {
			list.Binds = append(list.Binds, bindMessage(bind))
		}
		update.Binds = list
	}
	if layer.BindingMode != nil {
		update.BindingMode = codePtr(BindingModeCode(*layer.BindingMode))
	}
	if layer.URL != nil {
		update.URL = stringPtr(*layer.URL)
	}
	if layer.Channel != nil {
		update.Channel = stringPtr(*layer.Channel)
	}
	if layer.Group != nil {
		update.Group = stringPtr(*layer.Group)
	}
	if layer.Topology != nil {
		update.Topology = codePtr(TopologyCode(*layer.Topology))
	}
	if layer.Strategy != nil {
		update.UpdateStrategy = codePtr(UpdateStrategyCode(*layer.Strategy))
	}
	if layer.HealthCheckInterval != nil {
		update.HealthCheckInterval = &HealthCheckInterval{Seconds: uint64Ptr(*layer.HealthCheckInterval)}
	}
	if layer.ShutdownTimeout != nil {
		update.ShutdownTimeout = uint32Ptr(*layer.ShutdownTimeout)
	}
	if layer.UpdateCondition != nil {
		update.UpdateCondition = codePtr(UpdateConditionCode(*layer.UpdateCondition))
	}
	if layer.Password != nil {
		protected, err := protectCredential(*layer.Password, options.Protector, userInterface)
		if err != nil {
			return nil, err
		}
		update.SvcEncryptedPassword = protected
	}

	if err := ValidateSvcUpdate(update); err != nil {
		return nil, err
	}
	return update, nil
}

// BuildSvcStart builds a start request for a loaded service
func BuildSvcStart(ident svcspec.PackageRef) *SvcStart {
	return &SvcStart{Ident: packageRefMessage(ident)}
}

// BuildSvcStop builds a stop request. A nil shutdown timeout leaves the
// daemon's own timeout in effect.
func BuildSvcStop(ident svcspec.PackageRef, shutdownTimeout *uint32) *SvcStop {
	stop := &SvcStop{Ident: packageRefMessage(ident)}
	if shutdownTimeout != nil {
		stop.ShutdownTimeout = uint32Ptr(*shutdownTimeout)
	}
	return stop
}

// BuildSvcUnload builds an unload request. A nil shutdown timeout leaves
// the daemon's own timeout in effect.
func BuildSvcUnload(ident svcspec.PackageRef, shutdownTimeout *uint32) *SvcUnload {
	unload := &SvcUnload{Ident: packageRefMessage(ident)}
	if shutdownTimeout != nil {
		unload.ShutdownTimeout = uint32Ptr(*shutdownTimeout)
	}
	return unload
}

// BuildSvcStatus builds a status query. A nil ident queries all services.
func BuildSvcStatus(ident *svcspec.PackageRef) *SvcStatus {
	status := &SvcStatus{}
	if ident != nil {
		status.Ident = packageRefMessage(*ident)
	}
	return status
}

// registryURL applies the load-time endpoint fallback chain: the resolved
// value, then the environment, then the built-in default.
func registryURL(specURL *string) string {
	if specURL != nil {
		return *specURL
	}
	if envURL := os.Getenv(RegistryURLEnvVar); envURL != "" {
		return envURL
	}
	return DefaultRegistryURL
}

// protectCredential returns the protected form of a password, or nil when
// the platform cannot protect credentials, in which case the field travels
// absent and the user is told.
func protectCredential(password string, protector secrets.Protector, userInterface ui.UI) (*string, error) {
	if protector == nil || !protector.Available() {
		userInterface.Warn("credential protection is not available on this platform; the password was not sent")
		return nil, nil
	}

	protected, err := protector.Protect(password)
	if err != nil {
		if errors.IsCryptoError(err) {
			return nil, err
		}
		return nil, errors.NewCryptoError("failed to protect credential", err)
	}
	return &protected, nil
}

// warnDeprecatedFields emits the deprecation diagnostic for the legacy
// application/environment values, which the daemon ignores
func warnDeprecatedFields(application, environment []string, userInterface ui.UI) {
	if len(application) == 0 && len(environment) == 0 {
		return
	}
	userInterface.Warn("--application and --environment are deprecated and ignored")
}

// bindListMessage encodes an empty bind list as absent: load never
// expresses "clear all binds"
func bindListMessage(binds []svcspec.ServiceBind) *ServiceBindList {
	if len(binds) == 0 {
		return nil
	}
	list := &ServiceBindList{Binds: make([]*ServiceBind, 0, len(binds))}
	for _, bind := range binds {
		list.Binds = append(list.Binds, bindMessage(bind))
	}
	return list
}

func bindMessage(bind svcspec.ServiceBind) *ServiceBind {
	return &ServiceBind{
		Name:         stringPtr(bind.Name),
		ServiceGroup: stringPtr(bind.ServiceGroup.String()),
	}
}

func packageRefMessage(ident svcspec.PackageRef) *PackageRef {
	ref := &PackageRef{
		Origin: stringPtr(ident.Origin),
		Name:   stringPtr(ident.Name),
	}
	if ident.Version != "" {
		ref.Version = stringPtr(ident.Version)
	}
	if ident.Release != "" {
		ref.Release = stringPtr(ident.Release)
	}
	return ref
}

func stringPtr(v string) *string { return &v }
func boolPtr(v bool) *bool       { return &v }
func uint32Ptr(v uint32) *uint32 { return &v }
func uint64Ptr(v uint64) *uint64 { return &v }
func codePtr(v int32) *int32     { return &v }
