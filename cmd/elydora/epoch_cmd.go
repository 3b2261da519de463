package main

import (
	"github.com/spf13/cobra"
)

func newEpochCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epoch",
		Short: "Inspect sequencing epochs and their anchors",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List epochs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			epochs, err := flags.newClient(cfg).ListEpochs(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, epochs)
		},
	}

	show := &cobra.Command{
		Use:   "show <epoch-id>",
		Short: "Show one epoch and its anchor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			resp, err := flags.newClient(cfg).GetEpoch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
