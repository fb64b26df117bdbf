package main

import (
	"context"
	"fmt"

	"github.com/core-tools/hsu-svcctl/pkg/ctl"
	"github.com/core-tools/hsu-svcctl/pkg/discovery"
	"github.com/core-tools/hsu-svcctl/pkg/domain"
	"github.com/core-tools/hsu-svcctl/pkg/secrets"
)

type bulkloadCommand struct {
	app *application

	SpecDirs      []string `long:"spec-dir" description:"directory to scan for service spec files (repeatable; defaults to the well-known spec directory)"`
	DefaultConfig string   `long:"default-config" description:"path of the shared default spec file"`
}

func (c *bulkloadCommand) Execute(args []string) error {
	s, err := c.app.newSession()
	if err != nil {
		return err
	}

	result, err := discovery.Discover(discovery.Options{
		Roots:       c.SpecDirs,
		DefaultFile: c.DefaultConfig,
	}, s.logger)
	if err != nil {
		return err
	}

	failures := result.Failures
	protector := secrets.NewProtector()

	loaded := 0
	for _, discovered := range result.Specs {
		request, err := ctl.BuildSvcLoad(discovered.Spec, ctl.BuildOptions{
			UI:        s.ui,
			Protector: protector,
		})
		if err != nil {
			s.logger.Warnf("Skipping spec, path: %s, error: %v", discovered.Path, err)
			failures.Add(err)
			continue
		}

		err = s.withGateway(discovered.Spec.RemoteSup, func(ctx context.Context, gateway domain.Contract) error {
			ack, err := gateway.Load(ctx, request)
			if err != nil {
				return err
			}
			return ackOK(ack)
		})
		if err != nil {
			s.logger.Warnf("Failed to load spec, path: %s, error: %v", discovered.Path, err)
			failures.Add(err)
			continue
		}

		fmt.Printf("Loaded %s\n", discovered.Spec.Ident.String())
		loaded++
	}

	fmt.Printf("Loaded %d of %d discovered services\n", loaded, len(result.Specs))
	return failures.ToError()
}
