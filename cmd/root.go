package cmd

import (
	"context"
	"fmt"
	"os"

	"ims/internal/core/config"
	"ims/internal/core/container"
	"ims/internal/core/logger"
	"ims/pkg/security"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type app struct {
	build     func() (*container.Container, error)
	container *container.Container
}

func (a *app) start(*cobra.Command, []string) error {
	if a.container != nil {
		return nil
	}
	c, err := a.build()
	if err != nil {
		return err
	}
	a.container = c
	return nil
}

func (a *app) stop(*cobra.Command, []string) {
	if a.container != nil {
		a.container.Close()
		a.container = nil
	}
}

func newContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return container.NewAppContainer(cfg, security.NewFileStore(cfg.TokenFile), logger.NewLogger(cfg.LogLevel)), nil
}

func NewRootCmd(build func() (*container.Container, error)) *cobra.Command {
	a := &app{build: build}

	rootCmd := &cobra.Command{
		Use:               "ims",
		Short:             "Inventory admin console",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.start,
		PersistentPostRun: a.stop,
	}

	rootCmd.AddCommand(
		newServeCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newResourcesCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newSchemaCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)

	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCmd(newContainer).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
