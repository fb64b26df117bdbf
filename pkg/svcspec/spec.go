package svcspec

// Built-in defaults applied to fields no layer decided
const (
	DefaultChannel = "stable"
	DefaultGroup   = "default"

	// DefaultHealthCheckIntervalSeconds is the interval on which the
	// supervisor runs health checks unless a layer overrides it.
	DefaultHealthCheckIntervalSeconds uint64 = 30

	DefaultTopology        = TopologyStandalone
	DefaultStrategy        = UpdateStrategyNone
	DefaultUpdateCondition = UpdateConditionLatest
	DefaultBindingMode     = BindingModeStrict
)

// ResolvedSpec is the outcome of merging all applicable layers for one
// service: every field is decided, either explicitly, by inheritance, or by
// built-in default. It is constructed by Resolve, never mutated afterwards,
// and consumed exactly once by the request builder.
//
// Pointer fields are the genuinely optional attributes: absence means the
// request will not carry them and the daemon applies its own fallback (for
// the shutdown timeout, the value from the package plan).
type ResolvedSpec struct {
	Ident PackageRef

	Channel             string
	URL                 *string
	Group               string
	Topology            Topology
	Strategy            UpdateStrategy
	UpdateCondition     UpdateCondition
	Binds               []ServiceBind
	BindingMode         BindingMode
	HealthCheckInterval uint64 // seconds
	ShutdownTimeout     *uint32
	Password            *string
	ConfigFrom          *string

	Force     bool
	RemoteSup *string

	// Deprecated invocation values, carried only so the request builder can
	// emit the deprecation diagnostic.
	Application []string
	Environment []string
}
