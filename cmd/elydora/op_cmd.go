package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/operation"
)

func newOpCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "op",
		Short: "Build, submit and inspect operation records",
	}
	cmd.AddCommand(
		newOpSubmitCmd(flags),
		newOpShowCmd(flags),
		newOpVerifyCmd(flags),
	)
	return cmd
}

func newOpSubmitCmd(flags *rootFlags) *cobra.Command {
	var (
		opType      string
		subjectJSON string
		actionJSON  string
		payloadArg  string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Build a signed operation record and submit it",
		Long: `Builds a signed operation record from the agent directory's key and chain
state and posts it to the platform. --payload takes a path to a JSON file or
"-" for stdin; omitted means a null payload.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir, err := flags.loadConfig()
			if err != nil {
				return err
			}
			builder, err := newBuilder(cfg, dir)
			if err != nil {
				return err
			}

			params := operation.BuildParams{OperationType: opType}
			if subjectJSON != "" {
				if err := json.Unmarshal([]byte(subjectJSON), &params.Subject); err != nil {
					return fmt.Errorf("parse --subject: %w", err)
				}
			}
			if actionJSON != "" {
				if err := json.Unmarshal([]byte(actionJSON), &params.Action); err != nil {
					return fmt.Errorf("parse --action: %w", err)
				}
			}
			if payloadArg != "" {
				payload, err := readPayload(payloadArg)
				if err != nil {
					return err
				}
				params.Payload = payload
			}

			rec, err := builder.Build(params)
			if err != nil {
				return err
			}
			if dryRun {
				return printJSON(cmd, rec)
			}

			receipt, err := flags.newClient(cfg).SubmitOperation(cmd.Context(), rec)
			if err != nil {
				return err
			}
			return printJSON(cmd, receipt)
		},
	}

	cmd.Flags().StringVar(&opType, "type", "", "operation type, e.g. file.edit")
	cmd.Flags().StringVar(&subjectJSON, "subject", "", "subject as a JSON object")
	cmd.Flags().StringVar(&actionJSON, "action", "", "action as a JSON object")
	cmd.Flags().StringVar(&payloadArg, "payload", "", `payload JSON file, or "-" for stdin`)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the signed record instead of submitting")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// readPayload parses the payload argument: "-" reads stdin, anything else is
// a file path. An empty document is treated as a null payload.
func readPayload(arg string) (any, error) {
	var data []byte
	var err error
	if arg == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return payload, nil
}

func newOpShowCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <operation-id>",
		Short: "Fetch a stored operation and its receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			resp, err := flags.newClient(cfg).GetOperation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	return cmd
}

func newOpVerifyCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <operation-id>",
		Short: "Ask the server to re-verify a stored operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig()
			if err != nil {
				return err
			}
			resp, err := flags.newClient(cfg).VerifyOperation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := printJSON(cmd, resp); err != nil {
				return err
			}
			if !resp.SignatureValid || !resp.ChainValid {
				return fmt.Errorf("operation %s failed verification", args[0])
			}
			return nil
		},
	}
	return cmd
}
