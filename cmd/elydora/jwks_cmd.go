package main

import (
	"github.com/spf13/cobra"
)

func newJWKSCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwks",
		Short: "Fetch the platform's receipt verification keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := flags.anonymousClient()
			if cfg, _, err := flags.loadConfig(); err == nil {
				client = flags.newClient(cfg)
			}
			keys, err := client.JWKS(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, keys)
		},
	}
	return cmd
}
