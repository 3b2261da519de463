package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/config"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/install"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	var (
		orgID    string
		agentID  string
		name     string
		kid      string
		seed     string
		seedFile string
		baseURL  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the agent directory: config, private key, hook and guard scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			seedB64 := seed
			if seedB64 == "" && seedFile != "" {
				data, err := os.ReadFile(seedFile)
				if err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
				seedB64 = strings.TrimSpace(string(data))
			}
			if seedB64 == "" {
				return fmt.Errorf("one of --seed or --seed-file is required")
			}
			if kid == "" {
				kid = agentID + "-key-v1"
			}

			dir := flags.dir
			if dir == "" {
				var err error
				dir, err = config.Dir(agentID)
				if err != nil {
					return err
				}
			}

			cfg := config.Config{
				OrgID:     orgID,
				AgentID:   agentID,
				KID:       kid,
				BaseURL:   baseURL,
				AgentName: name,
			}
			artifacts, err := install.Install(dir, cfg, seedB64)
			if err != nil {
				return err
			}
			return printJSON(cmd, artifacts)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization id")
	cmd.Flags().StringVar(&agentID, "agent-id", "", "agent id")
	cmd.Flags().StringVar(&name, "name", "", "human-readable agent name")
	cmd.Flags().StringVar(&kid, "kid", "", "key id (default <agent-id>-key-v1)")
	cmd.Flags().StringVar(&seed, "seed", "", "base64url 32-byte Ed25519 seed")
	cmd.Flags().StringVar(&seedFile, "seed-file", "", "file containing the base64url seed")
	cmd.Flags().StringVar(&baseURL, "url", config.DefaultBaseURL, "platform base URL to persist")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("agent-id")
	return cmd
}
