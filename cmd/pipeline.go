package cmd

import (
	"context"
	"fmt"
	"os"

	"k8s.io/client-go/kubernetes"

	"github.com/hijacksecurity/PravdaPlus/internal/aggregate"
	"github.com/hijacksecurity/PravdaPlus/internal/config"
	"github.com/hijacksecurity/PravdaPlus/internal/kube"
	"github.com/hijacksecurity/PravdaPlus/internal/report"
	"github.com/hijacksecurity/PravdaPlus/internal/tunnel"
	"github.com/hijacksecurity/PravdaPlus/internal/validate"
)

// establishTunnels acquires every configured tunnel, replacing any stale
// forwarding processes from earlier invocations. Tunnel failures are fatal:
// without tunnels no check can run.
func establishTunnels(cfg config.Config) (*tunnel.Manager, error) {
	manager := tunnel.NewManager(cfg.Cluster.KubeContext)
	for _, def := range cfg.Tunnels {
		if _, err := manager.Acquire(def, cfg.TunnelNamespace(def)); err != nil {
			return nil, fmt.Errorf("failed to establish tunnel %q: %w", def.Name, err)
		}
	}
	return manager, nil
}

// buildCatalogue assembles the ordered check catalogue. The order is a
// dependency order: connectivity first, then content, then cross-service
// checks, then the cluster-level fleet tally.
func buildCatalogue(cfg config.Config, clientset kubernetes.Interface) ([]validate.Check, error) {
	apiDef, ok := cfg.TunnelByName(cfg.Validation.APITunnel)
	if !ok {
		return nil, fmt.Errorf("no tunnel named %q configured for the API service", cfg.Validation.APITunnel)
	}
	frontendDef, ok := cfg.TunnelByName(cfg.Validation.FrontendTunnel)
	if !ok {
		return nil, fmt.Errorf("no tunnel named %q configured for the frontend", cfg.Validation.FrontendTunnel)
	}

	apiBase := fmt.Sprintf("http://localhost:%d", apiDef.LocalPort)
	frontendBase := fmt.Sprintf("http://localhost:%d", frontendDef.LocalPort)

	client := validate.NewClient(cfg.Validation.RequestTimeout)
	v := cfg.Validation

	return []validate.Check{
		validate.NewHealthCheck(client, apiBase),
		validate.NewNewsCheck(client, "news-listing", apiBase, "", v.NewsLimit),
		validate.NewNewsCheck(client, "news-category", apiBase, v.NewsCategory, v.NewsLimit),
		validate.NewProxyCheck(client, frontendBase),
		validate.NewTransformCheck(client, apiBase, v.TransformStyle, v.MinContentLength),
		validate.NewFleetCheck(clientset, cfg.Cluster.Namespace),
	}, nil
}

// runValidation is the shared tail of every entry point: establish tunnels,
// run the catalogue under the given policy, summarize and report. The
// returned error is non-nil exactly when at least one check failed or a
// precondition could not be met.
func runValidation(ctx context.Context, cfg config.Config, policy validate.Policy) error {
	clientset, err := kube.GetClientsetForContext(cfg.Cluster.KubeContext)
	if err != nil {
		return err
	}

	manager, err := establishTunnels(cfg)
	if err != nil {
		return err
	}

	checks, err := buildCatalogue(cfg, clientset)
	if err != nil {
		return err
	}

	run := validate.Execute(ctx, checks, policy)
	verdict := aggregate.Summarize(run)
	reporter := report.NewConsoleReporter(os.Stdout)

	if policy == validate.PolicyFailFast {
		if verdict.ExitCode != 0 {
			reporter.Report(run, verdict, nil)
		}
		reporter.Banner(verdict)
	} else {
		reporter.Report(run, verdict, manager.Endpoints())
	}

	if verdict.ExitCode != 0 {
		return fmt.Errorf("%d of %d checks failed", verdict.FailCount, len(run.Results))
	}
	return nil
}
