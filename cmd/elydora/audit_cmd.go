package main

import (
	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

func newAuditCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the organization's operation stream",
	}

	var req contracts.AuditQueryRequest
	query := &cobra.Command{
		Use:   "query",
		Short: "Page through operations matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			resp, err := flags.newClient(cfg).QueryAudit(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	query.Flags().StringVar(&req.AgentID, "filter-agent", "", "restrict to one agent")
	query.Flags().StringVar(&req.OperationType, "type", "", "restrict to one operation type")
	query.Flags().Int64Var(&req.FromMs, "from", 0, "inclusive lower bound, ms since epoch")
	query.Flags().Int64Var(&req.ToMs, "to", 0, "exclusive upper bound, ms since epoch")
	query.Flags().StringVar(&req.Cursor, "cursor", "", "continue a previous page")
	query.Flags().IntVar(&req.Limit, "limit", 0, "page size")

	cmd.AddCommand(query)
	return cmd
}
