package main

import (
	"context"
	"fmt"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
	"github.com/core-tools/hsu-svcctl/pkg/domain"
	"github.com/core-tools/hsu-svcctl/pkg/secrets"
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"
)

type loadCommand struct {
	app *application

	specFlagOptions

	Force          bool     `long:"force" description:"load the service even if it is already loaded"`
	ConfigFrom     *string  `long:"config-from" description:"use this directory as the service configuration source (development only)"`
	Application    []string `long:"application" hidden:"yes"`
	Environment    []string `long:"environment" hidden:"yes"`
	GenerateConfig bool     `long:"generate-config" description:"print the resolved spec as TOML instead of loading it"`

	Args struct {
		Ident svcspec.PackageRef `positional-arg-name:"pkg_ident" description:"package identifier: origin/name[/version[/release]]"`
	} `positional-args:"yes" required:"yes"`
}

func (c *loadCommand) Execute(args []string) error {
	s, err := c.app.newSession()
	if err != nil {
		return err
	}

	invocation := c.toLayer()
	invocation.Ident = &c.Args.Ident
	if c.Force {
		force := true
		invocation.Force = &force
	}
	invocation.ConfigFrom = c.ConfigFrom
	invocation.Application = c.Application
	invocation.Environment = c.Environment

	defaultLayer, err := svcspec.LoadDefaultLayer("")
	if err != nil {
		return err
	}

	spec, err := svcspec.Resolve(invocation, nil, defaultLayer)
	if err != nil {
		return err
	}

	if c.GenerateConfig {
		document, err := svcspec.GenerateTOML(spec)
		if err != nil {
			return err
		}
		fmt.Print(document)
		return nil
	}

	request, err := ctl.BuildSvcLoad(spec, ctl.BuildOptions{
		UI:        s.ui,
		Protector: secrets.NewProtector(),
	})
	if err != nil {
		return err
	}

	err = s.withGateway(spec.RemoteSup, func(ctx context.Context, gateway domain.Contract) error {
		ack, err := gateway.Load(ctx, request)
		if err != nil {
			return err
		}
		return ackOK(ack)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %s\n", spec.Ident.String())
	return nil
}
