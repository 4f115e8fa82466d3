package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hijacksecurity/PravdaPlus/pkg/logging"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pravdactl",
	Short: "Deploy and validate the PravdaPlus news application",
	Long: `pravdactl validates a PravdaPlus deployment on Kubernetes: it
establishes local tunnels to the deployed services, probes each one through
its public HTTP interface in dependency order, and reports a single pass/fail
verdict with diagnostic detail.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. failed connections, failing checks)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "pravdactl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newSmokeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
