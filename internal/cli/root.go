// Package cli implements the roulette command-line tool.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/xtding233/roulette/internal/app"
	"github.com/xtding233/roulette/internal/preset"
	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/rpc"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	presetDir string
	publicURL string
	remote    string
	verbose   bool
	seed      uint64

	logger *slog.Logger
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:           "roulette",
		Short:         "Draw weighted items without replacement and share the setup as a link",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if g.verbose {
				level = slog.LevelDebug
			}
			g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.presetDir, "preset-dir", envOr("PRESET_DIR", "./config"), "Directory containing presets/")
	flags.StringVar(&g.publicURL, "public-url", envOr("PUBLIC_URL", "http://localhost:8080/"), "Page URL used for share links")
	flags.StringVar(&g.remote, "remote", "", "Address of a roulette gRPC server; spin, share and restore run there")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output to stderr")

	addSpinCmd(rootCmd, g)
	addShareCmd(rootCmd, g)
	addRestoreCmd(rootCmd, g)
	addSimulateCmd(rootCmd, g)
	addPresetsCmd(rootCmd, g)
	return rootCmd
}

// Execute runs the tool with os.Args and exits non-zero on error.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		os.Exit(1)
	}
}

func (g *globals) service() *app.RouletteService {
	var rng roulette.RandomSource
	if g.seed != 0 {
		rng = roulette.NewSeededRNG(g.seed)
	}
	return app.NewRouletteService(preset.NewLoader(g.presetDir), nil, app.Options{
		PublicURL: g.publicURL,
		RNG:       rng,
	})
}

// dial connects to --remote. The caller closes the connection.
func (g *globals) dial() (*rpc.Client, func(), error) {
	conn, err := grpc.NewClient(g.remote, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", g.remote, err)
	}
	g.logger.Debug("connected", "remote", g.remote)
	return rpc.NewClient(conn), func() { _ = conn.Close() }, nil
}
