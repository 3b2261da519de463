package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/config"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

func newRegisterCmd(flags *rootFlags) *cobra.Command {
	var req contracts.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a platform account and organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := flags.anonymousClient()
			resp, err := client.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.DisplayName, "display-name", "", "display name")
	cmd.Flags().StringVar(&req.OrgName, "org-name", "", "organization name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	var (
		req  contracts.LoginRequest
		save bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a bearer token; --save stores it in the agent config",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := flags.anonymousClient()
			resp, err := client.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			if save {
				cfg, dir, cerr := flags.loadConfig()
				if cerr != nil {
					return cerr
				}
				cfg.Token = resp.Token
				if serr := cfg.Save(filepath.Join(dir, config.FileName)); serr != nil {
					return serr
				}
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().BoolVar(&save, "save", false, "store the token in the agent config")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
