package main

import (
	"context"
	"fmt"
	"os"

	coreControl "github.com/core-tools/hsu-core/pkg/control"
	coreDomain "github.com/core-tools/hsu-core/pkg/domain"
	coreLogging "github.com/core-tools/hsu-core/pkg/logging"

	"github.com/core-tools/hsu-svcctl/pkg/control"
	"github.com/core-tools/hsu-svcctl/pkg/ctl"
	"github.com/core-tools/hsu-svcctl/pkg/domain"
	"github.com/core-tools/hsu-svcctl/pkg/errors"
	"github.com/core-tools/hsu-svcctl/pkg/logging"
	"github.com/core-tools/hsu-svcctl/pkg/ui"

	flags "github.com/jessevdk/go-flags"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type globalOptions struct {
	ConfigFile string  `long:"config" description:"path to the connection configuration file"`
	RemoteSup  *string `long:"remote-sup" description:"remote supervisor ctl address (host:port)"`
	LogLevel   string  `long:"log-level" description:"override the configured log level (debug, info, warn, error)"`
}

type application struct {
	globals globalOptions
}

func logPrefix(module string) string {
	return fmt.Sprintf("module: %s-client , ", module)
}

// session is the per-command runtime state. It is built inside Execute,
// after the parser has populated the global options.
type session struct {
	app         *application
	config      *control.ConnectionConfig
	logger      logging.Logger
	ui          ui.UI
	connections map[string]grpc.ClientConnInterface
}

func (app *application) newSession() (*session, error) {
	config, err := control.LoadConnectionConfig(app.globals.ConfigFile)
	if err != nil {
		return nil, err
	}

	level := config.LogLevel
	if app.globals.LogLevel != "" {
		if !logging.ValidLogLevel(app.globals.LogLevel) {
			return nil, errors.NewValidationError(
				"invalid log level: "+app.globals.LogLevel, nil,
			).WithContext("valid_levels", "debug, info, warn, error")
		}
		level = app.globals.LogLevel
	}

	if app.globals.RemoteSup != nil {
		if err := control.ValidateNetworkAddress(*app.globals.RemoteSup); err != nil {
			return nil, err
		}
	}

	zapConfig := logging.DefaultZapConfig()
	zapConfig.Level = level
	zapLogger, err := logging.NewZapLogger(zapConfig)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(
		logPrefix("hsu-svcctl"), logging.LogFuncs{
			Debugf: zapLogger.Debugf,
			Infof:  zapLogger.Infof,
			Warnf:  zapLogger.Warnf,
			Errorf: zapLogger.Errorf,
		})

	return &session{
		app:         app,
		config:      config,
		logger:      logger,
		ui:          ui.Default(),
		connections: make(map[string]grpc.ClientConnInterface),
	}, nil
}

// resolveAddress picks the supervisor address: the command line wins, then
// the spec's own remote_sup, then the configuration file. Empty means the
// local supervisor from the connection configuration.
func (s *session) resolveAddress(remoteSup *string) string {
	if s.app.globals.RemoteSup != nil {
		return *s.app.globals.RemoteSup
	}
	if remoteSup != nil {
		return *remoteSup
	}
	return s.config.RemoteAddress
}

// withGateway runs fn against the supervisor gateway for the given spec
// override, reusing connections across calls within one command.
func (s *session) withGateway(remoteSup *string, fn func(ctx context.Context, gateway domain.Contract) error) error {
	address := s.resolveAddress(remoteSup)

	connection, ok := s.connections[address]
	if !ok {
		var err error
		connection, err = s.connect(address)
		if err != nil {
			return err
		}
		s.connections[address] = connection
	}

	gateway := control.NewGRPCClientGateway(connection, s.logger)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.RequestTimeout)
	defer cancel()
	return fn(ctx, gateway)
}

// connect establishes the grpc connection, either by dialing a remote ctl
// address directly or through the core connection bootstrap for a local
// supervisor, and pings it until it answers.
func (s *session) connect(address string) (grpc.ClientConnInterface, error) {
	coreLogger := coreLogging.NewLogger(
		logPrefix("hsu-core"), coreLogging.LogFuncs{
			Debugf: s.logger.Debugf,
			Infof:  s.logger.Infof,
			Warnf:  s.logger.Warnf,
			Errorf: s.logger.Errorf,
		})

	var clientConnection grpc.ClientConnInterface
	if address != "" {
		if err := control.ValidateNetworkAddress(address); err != nil {
			return nil, err
		}
		grpcConnection, err := grpc.Dial(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, errors.NewNetworkError("failed to dial remote supervisor", err).WithContext("address", address)
		}
		clientConnection = grpcConnection
	} else {
		if s.config.ServerPath == "" && s.config.AttachPort == 0 {
			return nil, errors.NewValidationError(
				"no supervisor to talk to: set server_path, attach_port or remote_address in the connection configuration, or pass --remote-sup", nil)
		}
		coreConnectionOptions := coreControl.ConnectionOptions{
			ServerPath: s.config.ServerPath,
			AttachPort: s.config.AttachPort,
		}
		coreConnection, err := coreControl.NewConnection(coreConnectionOptions, coreLogger)
		if err != nil {
			return nil, errors.NewNetworkError("failed to create supervisor connection", err)
		}
		clientConnection = coreConnection.GRPC()
	}

	coreClientGateway := coreControl.NewGRPCClientGateway(clientConnection, coreLogger)
	retryPingOptions := coreDomain.RetryPingOptions{
		RetryAttempts: s.config.RetryAttempts,
		RetryInterval: s.config.RetryInterval,
	}
	if err := coreDomain.RetryPing(context.Background(), coreClientGateway, retryPingOptions, coreLogger); err != nil {
		return nil, errors.NewNetworkError("failed to ping supervisor", err)
	}

	return clientConnection, nil
}

// ackOK turns a daemon rejection into an error
func ackOK(ack *ctl.Ack) error {
	if ack == nil || ack.OK == nil || *ack.OK {
		return nil
	}
	if ack.Message != nil && *ack.Message != "" {
		return fmt.Errorf("supervisor rejected the request: %s", *ack.Message)
	}
	return fmt.Errorf("supervisor rejected the request")
}

func addCommand(parser *flags.Parser, command string, shortDescription string, longDescription string, data interface{}) {
	if _, err := parser.AddCommand(command, shortDescription, longDescription, data); err != nil {
		fmt.Fprintf(os.Stderr, "svcctl: failed to register %s command: %v\n", command, err)
		os.Exit(1)
	}
}

// newParser registers the command set. The parser itself never prints:
// main reports every error exactly once.
func newParser(app *application) *flags.Parser {
	parser := flags.NewParser(&app.globals, flags.HelpFlag|flags.PassDoubleDash)
	parser.LongDescription = "svcctl resolves layered service specifications and sends the resulting control requests to the HSU supervisor."

	addCommand(parser, "load", "Load a service",
		"Resolve a service spec from the command line, the default spec file and built-in defaults, then ask the supervisor to load it.",
		&loadCommand{app: app})
	addCommand(parser, "update", "Update a loaded service",
		"Send the supervisor a sparse spec of fields to change on a loaded service. At least one field besides the identity is required.",
		&updateCommand{app: app})
	addCommand(parser, "bulkload", "Load every service spec found under the spec directories",
		"Discover persisted spec files, resolve each against the shared default spec file, and load them all. One bad file does not stop the pass.",
		&bulkloadCommand{app: app})
	addCommand(parser, "start", "Start a loaded service",
		"Ask the supervisor to start a service that is loaded but not running.",
		&startCommand{app: app})
	addCommand(parser, "stop", "Stop a running service",
		"Ask the supervisor to stop a running service without unloading it.",
		&stopCommand{app: app})
	addCommand(parser, "unload", "Unload a service",
		"Stop a service if needed and remove it from supervision.",
		&unloadCommand{app: app})
	addCommand(parser, "status", "Show service status",
		"Query the status of one service, or of every service the supervisor runs.",
		&statusCommand{app: app})

	return parser
}

func main() {
	parser := newParser(&application{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "svcctl: %v\n", err)
		os.Exit(1)
	}
}
