package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hijacksecurity/PravdaPlus/internal/config"
	"github.com/hijacksecurity/PravdaPlus/internal/validate"
)

func newSmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Run a quick fail-fast smoke test against the deployment",
		Long: `Establishes tunnels to the deployed services and runs the check
catalogue, stopping at the first failing check. Silent on success apart from
a final banner; exits 1 as soon as any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return runValidation(cmd.Context(), cfg, validate.PolicyFailFast)
		},
	}
}
