package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hijacksecurity/PravdaPlus/internal/config"
	"github.com/hijacksecurity/PravdaPlus/internal/kube"
	"github.com/hijacksecurity/PravdaPlus/internal/validate"
)

func newDeployCmd() *cobra.Command {
	var (
		namespace   string
		kubeContext string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Apply the deployment manifests, wait for readiness, then validate",
		Long: `Submits the deployment manifests to the cluster, blocks until every
workload reports ready or the deadline elapses, then establishes tunnels and
runs the full validation catalogue.

Any orchestration failure (rejected manifests, readiness timeout, port
conflict) aborts the run before validation starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if namespace != "" {
				cfg.Cluster.Namespace = namespace
			}
			if kubeContext != "" {
				cfg.Cluster.KubeContext = kubeContext
			}
			if timeout != 0 {
				cfg.Cluster.ReadinessTimeout = timeout
			}

			if err := kube.ApplyManifests(cfg.Cluster.ManifestDir, cfg.Cluster.KubeContext, cfg.Cluster.Namespace); err != nil {
				return err
			}

			clientset, err := kube.GetClientsetForContext(cfg.Cluster.KubeContext)
			if err != nil {
				return err
			}
			if err := kube.AwaitDeploymentsReady(cmd.Context(), clientset, cfg.Cluster.Namespace, cfg.Cluster.ReadinessTimeout); err != nil {
				return err
			}

			return runValidation(cmd.Context(), cfg, validate.PolicyAggregate)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "namespace to deploy into (overrides config)")
	cmd.Flags().StringVar(&kubeContext, "context", "", "kubeconfig context to use (overrides config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "readiness deadline (overrides config)")

	return cmd
}
