package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/config"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/install"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/operation"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/transport"
)

const version = "0.3.0"

// global flags shared by all subcommands
type rootFlags struct {
	dir     string
	agentID string
	baseURL string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "elydora",
		Short:         "Tamper-evident audit records for AI coding agents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.dir, "dir", "", "agent directory (default ${HOME}/.elydora/<agent-id>)")
	cmd.PersistentFlags().StringVar(&flags.agentID, "agent", "", "agent id used to locate the agent directory")
	cmd.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "override the platform base URL")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newInitCmd(flags),
		newDoctorCmd(flags),
		newRegisterCmd(flags),
		newLoginCmd(flags),
		newAgentCmd(flags),
		newOpCmd(flags),
		newAuditCmd(flags),
		newEpochCmd(flags),
		newExportCmd(flags),
		newJWKSCmd(flags),
	)
	return cmd
}

// agentDir resolves the agent directory from --dir or --agent.
func (f *rootFlags) agentDir() (string, error) {
	if f.dir != "" {
		return f.dir, nil
	}
	if f.agentID != "" {
		return config.Dir(f.agentID)
	}
	return "", fmt.Errorf("either --dir or --agent is required")
}

// loadConfig reads the agent config from the resolved directory.
func (f *rootFlags) loadConfig() (*config.Config, string, error) {
	dir, err := f.agentDir()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

// newClient builds a transport client for the effective base URL and token.
func (f *rootFlags) newClient(cfg *config.Config) *transport.Client {
	base := f.baseURL
	if base == "" {
		base = cfg.ResolveBaseURL()
	}
	opts := []transport.Option{transport.WithLogger(slog.Default())}
	if cfg.Token != "" {
		opts = append(opts, transport.WithToken(cfg.Token))
	}
	return transport.New(base, opts...)
}

// anonymousClient builds a client without an agent directory (register/login).
func (f *rootFlags) anonymousClient() *transport.Client {
	base := f.baseURL
	if base == "" {
		base = os.Getenv(config.EnvBaseURL)
	}
	return transport.New(base, transport.WithLogger(slog.Default()))
}

// newBuilder loads the seed from the agent directory and constructs the
// operation builder.
func newBuilder(cfg *config.Config, dir string) (*operation.Builder, error) {
	seed, err := install.ReadSeed(dir)
	if err != nil {
		return nil, err
	}
	return operation.NewBuilder(operation.BuilderConfig{
		OrgID:       cfg.OrgID,
		AgentID:     cfg.AgentID,
		PrivateSeed: seed,
		KID:         cfg.KID,
	})
}

// printJSON writes v as indented JSON to stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
