package main

import (
	"context"
	"fmt"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
	"github.com/core-tools/hsu-svcctl/pkg/domain"
	"github.com/core-tools/hsu-svcctl/pkg/secrets"
	"github.com/core-tools/hsu-svcctl/pkg/svcspec"
)

type updateCommand struct {
	app *application

	specFlagOptions

	Args struct {
		Ident svcspec.PackageRef `positional-arg-name:"pkg_ident" description:"package identifier: origin/name[/version[/release]]"`
	} `positional-args:"yes" required:"yes"`
}

func (c *updateCommand) Execute(args []string) error {
	s, err := c.app.newSession()
	if err != nil {
		return err
	}

	patch := c.toLayer()
	patch.Ident = &c.Args.Ident

	request, err := ctl.BuildSvcUpdate(patch, ctl.BuildOptions{
		UI:        s.ui,
		Protector: secrets.NewProtector(),
	})
	if err != nil {
		return err
	}

	err = s.withGateway(nil, func(ctx context.Context, gateway domain.Contract) error {
		ack, err := gateway.Update(ctx, request)
		if err != nil {
			return err
		}
		return ackOK(ack)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s\n", c.Args.Ident.String())
	return nil
}
