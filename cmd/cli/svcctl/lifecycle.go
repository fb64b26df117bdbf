package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
	"github.com/core-tools/hsu-svcctl/pkg/domain"
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"
)

type startCommand struct {
	app *application

	Args struct {
		Ident svcspec.PackageRef `positional-arg-name:"pkg_ident" description:"package identifier: origin/name[/version[/release]]"`
	} `positional-args:"yes" required:"yes"`
}

func (c *startCommand) Execute(args []string) error {
	s, err := c.app.newSession()
	if err != nil {
		return err
	}

	request := ctl.BuildSvcStart(c.Args.Ident)
	err = s.withGateway(nil, func(ctx context.Context, gateway domain.Contract) error {
		ack, err := gateway.Start(ctx, request)
		if err != nil {
			return err
		}
		return ackOK(ack)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Started %s\n", c.Args.Ident.String())
	return nil
}

type stopCommand struct {
	app *application

	ShutdownTimeout *uint32 `long:"shutdown-timeout" description:"seconds to wait for shutdown before the service is killed"`

	Args struct {
		Ident svcspec.PackageRef `positional-arg-name:"pkg_ident" description:"package identifier: origin/name[/version[/release]]"`
	} `positional-args:"yes" required:"yes"`
}

func (c *stopCommand) Execute(args []string) error {
	s, err := c.app.newSession()
	if err != nil {
		return err
	}

	request := ctl.BuildSvcStop(c.Args.Ident, c.ShutdownTimeout)
	err = s.withGateway(nil, func(ctx context.Context, gateway domain.Contract) error {
		ack, err := gateway.Stop(ctx, request)
		if err != nil {
			return err
		}
		return ackOK(ack)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Stopped %s\n", c.Args.Ident.String())
	return nil
}

type unloadCommand struct {
	app *application

	ShutdownTimeout *uint32 `long:"shutdown-timeout" description:"seconds to wait for shutdown before the service is killed"`

	Args struct {
		Ident svcspec.PackageRef `positional-arg-name:"pkg_ident" description:"package identifier: origin/name[/version[/release]]"`
	} `positional-args:"yes" required:"yes"`
}

func (c *unloadCommand) Execute(args []string) error {
	s, err := c.app.newSession()
	if err != nil {
		return err
	}

	request := ctl.BuildSvcUnload(c.Args.Ident, c.ShutdownTimeout)
	err = s.withGateway(nil, func(ctx context.Context, gateway domain.Contract) error {
		ack, err := gateway.Unload(ctx, request)
		if err != nil {
			return err
		}
		return ackOK(ack)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Unloaded %s\n", c.Args.Ident.String())
	return nil
}

type statusCommand struct {
	app *application

	Args struct {
		Ident string `positional-arg-name:"pkg_ident" description:"package identifier; omit to list every service"`
	} `positional-args:"yes"`
}

func (c *statusCommand) Execute(args []string) error {
	s, err := c.app.newSession()
	if err != nil {
		return err
	}

	var ident *svcspec.PackageRef
	if c.Args.Ident != "" {
		ref, err := svcspec.ParsePackageRef(c.Args.Ident)
		if err != nil {
			return err
		}
		ident = &ref
	}

	request := ctl.BuildSvcStatus(ident)
	var reply *ctl.StatusReply
	err = s.withGateway(nil, func(ctx context.Context, gateway domain.Contract) error {
		var err error
		reply, err = gateway.Status(ctx, request)
		return err
	})
	if err != nil {
		return err
	}

	if len(reply.Statuses) == 0 {
		fmt.Println("No services loaded")
		return nil
	}

	fmt.Printf("%-48s %-10s %-8s %s\n", "IDENT", "STATE", "PID", "GROUP")
	for _, status := range reply.Statuses {
		fmt.Printf("%-48s %-10s %-8s %s\n",
			status.Ident.String(), stringValue(status.State), pidValue(status.Pid), stringValue(status.ServiceGroup))
	}
	return nil
}

func stringValue(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func pidValue(v *uint32) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatUint(uint64(*v), 10)
}
