package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/auth"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

// doctorReport is the machine-readable health summary printed by doctor.
type doctorReport struct {
	Dir          string `json:"dir"`
	ConfigOK     bool   `json:"config_ok"`
	KeyOK        bool   `json:"key_ok"`
	PublicKey    string `json:"public_key,omitempty"`
	KID          string `json:"kid,omitempty"`
	TokenPresent bool   `json:"token_present"`
	TokenExpired bool   `json:"token_expired,omitempty"`
	TokenExpiry  string `json:"token_expiry,omitempty"`
	ServerOK     bool   `json:"server_ok"`
	AgentStatus  string `json:"agent_status,omitempty"`
	Error        string `json:"error,omitempty"`
}

func newDoctorCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the agent directory, signing key, token and server reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := doctorReport{}

			cfg, dir, err := flags.loadConfig()
			if err != nil {
				report.Error = err.Error()
				_ = printJSON(cmd, report)
				return err
			}
			report.Dir = dir
			report.ConfigOK = true
			report.KID = cfg.KID

			if b, kerr := newBuilder(cfg, dir); kerr != nil {
				report.Error = kerr.Error()
			} else {
				report.KeyOK = true
				report.PublicKey = b.PublicKey()
			}

			if cfg.Token != "" {
				report.TokenPresent = true
				if info, terr := auth.InspectToken(cfg.Token); terr == nil {
					report.TokenExpired = info.Expired
					if !info.ExpiresAt.IsZero() {
						report.TokenExpiry = info.ExpiresAt.UTC().Format(time.RFC3339)
					}
				}
			}

			client := flags.newClient(cfg)
			if resp, aerr := client.GetAgent(cmd.Context(), cfg.AgentID); aerr == nil {
				report.ServerOK = true
				report.AgentStatus = resp.Agent.Status
			} else if apiErr, ok := contracts.AsError(aerr); ok {
				report.Error = apiErr.Error()
			} else {
				report.Error = aerr.Error()
			}

			if perr := printJSON(cmd, report); perr != nil {
				return perr
			}
			if !report.KeyOK || !report.ConfigOK {
				return fmt.Errorf("agent directory is not healthy")
			}
			return nil
		},
	}
	return cmd
}
