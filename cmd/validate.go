package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hijacksecurity/PravdaPlus/internal/config"
	"github.com/hijacksecurity/PravdaPlus/internal/validate"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run the full health check catalogue against the deployment",
		Long: `Establishes tunnels to the deployed services and runs every check in
the catalogue regardless of earlier failures, then prints a per-check report,
a summary block and, on full success, the reachable endpoint addresses.

Exits 0 only when no check failed; warnings do not affect the exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return runValidation(cmd.Context(), cfg, validate.PolicyAggregate)
		},
	}
}
