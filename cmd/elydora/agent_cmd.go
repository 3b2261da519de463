package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

func newAgentCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage the registered agent identity",
	}
	cmd.AddCommand(
		newAgentRegisterCmd(flags),
		newAgentShowCmd(flags),
		newAgentFreezeCmd(flags),
		newAgentRevokeKeyCmd(flags),
		newAgentGuardCmd(flags),
	)
	return cmd
}

func newAgentRegisterCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register this agent's name, public key and kid with the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := flags.loadConfig()
			if err != nil {
				return err
			}
			builder, err := newBuilder(cfg, dir)
			if err != nil {
				return err
			}
			client := flags.newClient(cfg)
			resp, err := client.RegisterAgent(cmd.Context(), contracts.RegisterAgentRequest{
				AgentName: cfg.AgentName,
				Pubkey:    builder.PublicKey(),
				KID:       builder.KeyID(),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	return cmd
}

func newAgentShowCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch the agent record and its keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			resp, err := flags.newClient(cfg).GetAgent(cmd.Context(), cfg.AgentID)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	return cmd
}

func newAgentFreezeCmd(flags *rootFlags) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Freeze the agent; subsequent operations are rejected",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.newClient(cfg).FreezeAgent(cmd.Context(), cfg.AgentID, reason); err != nil {
				return err
			}
			cmd.Println("agent frozen")
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "freeze reason")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func newAgentRevokeKeyCmd(flags *rootFlags) *cobra.Command {
	var (
		kid    string
		reason string
	)
	cmd := &cobra.Command{
		Use:   "revoke-key",
		Short: "Revoke one of the agent's signing keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			target := kid
			if target == "" {
				target = cfg.KID
			}
			if err := flags.newClient(cfg).RevokeAgentKey(cmd.Context(), cfg.AgentID, target, reason); err != nil {
				return err
			}
			cmd.Printf("key %s revoked\n", target)
			return nil
		},
	}
	cmd.Flags().StringVar(&kid, "kid", "", "key id (default: the configured kid)")
	cmd.Flags().StringVar(&reason, "reason", "", "revocation reason")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

// newAgentGuardCmd backs the generated guard.js: exit 0 only when the agent
// is active.
func newAgentGuardCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Exit non-zero when the agent is frozen or revoked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			resp, err := flags.newClient(cfg).GetAgent(cmd.Context(), cfg.AgentID)
			if err != nil {
				return err
			}
			if resp.Agent.Status != contracts.AgentStatusActive {
				return fmt.Errorf("agent %s is %s", cfg.AgentID, resp.Agent.Status)
			}
			return nil
		},
	}
	return cmd
}
