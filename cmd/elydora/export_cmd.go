package main

import (
	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Create and track verifiable audit exports",
	}

	var req contracts.ExportRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Start an export job",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			exp, err := flags.newClient(cfg).CreateExport(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, exp)
		},
	}
	create.Flags().StringVar(&req.AgentID, "filter-agent", "", "restrict to one agent")
	create.Flags().StringVar(&req.OperationType, "type", "", "restrict to one operation type")
	create.Flags().Int64Var(&req.FromMs, "from", 0, "inclusive lower bound, ms since epoch")
	create.Flags().Int64Var(&req.ToMs, "to", 0, "exclusive upper bound, ms since epoch")
	create.Flags().StringVar(&req.Format, "format", "", "export format")

	list := &cobra.Command{
		Use:   "list",
		Short: "List export jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			exports, err := flags.newClient(cfg).ListExports(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, exports)
		},
	}

	show := &cobra.Command{
		Use:   "show <export-id>",
		Short: "Show an export job and its download URL once ready",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			resp, err := flags.newClient(cfg).GetExport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}

	cmd.AddCommand(create, list, show)
	return cmd
}
