package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vaerpub/vaerpub/internal/pkg/site"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated page locally",
		Long: `Serve the repository directory over HTTP so the generated page can
be viewed in a browser that blocks fetch() from file:// URLs.

Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			dir := cfg.Serve.Dir
			if dir == "" {
				dir, err = resolveRepoDir(cmd, cfg)
				if err != nil {
					return err
				}
			}

			if addr == "" {
				addr = cfg.Serve.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := site.NewServer(addr, dir)
			fmt.Printf("Serverer %s paa http://%s (Ctrl-C for aa stoppe)\n", dir, addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, localhost:8000)")

	return cmd
}
