package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"k8s.io/client-go/kubernetes"

	"github.com/hijacksecurity/PravdaPlus/internal/kube"
	"github.com/hijacksecurity/PravdaPlus/pkg/logging"
)

// transformTemplate is the fixed payload template for the transform check.
// Fields of the sampled article override it when present.
var transformTemplate = NewsItem{
	Title:       "Test",
	Description: "Test",
	Link:        "http://test.com",
	PubDate:     "2025-08-02T06:00:00",
	Category:    "world",
}

// HealthCheck probes GET /health on the API service. It passes only when the
// endpoint answers 200 with status "healthy".
type HealthCheck struct {
	client  *Client
	baseURL string
}

func NewHealthCheck(client *Client, baseURL string) *HealthCheck {
	return &HealthCheck{client: client, baseURL: baseURL}
}

func (c *HealthCheck) Name() string { return "api-health" }

func (c *HealthCheck) Run(ctx context.Context) CheckResult {
	url := c.baseURL + "/health"
	status, body, err := c.client.get(ctx, url)
	if err != nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: err.Error()}
	}
	if status != http.StatusOK {
		perr := &ProtocolError{URL: url, StatusCode: status, Body: excerpt(body)}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: perr.Error()}
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		cerr := &ContentError{URL: url, Reason: fmt.Sprintf("undecodable body: %v", err)}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: cerr.Error()}
	}
	if health.Status != "healthy" {
		cerr := &ContentError{URL: url, Reason: fmt.Sprintf("status is %q, expected \"healthy\"", health.Status)}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: cerr.Error()}
	}

	logging.Debug("Check-"+c.Name(), "API reported healthy: %s", excerpt(body))
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: excerpt(body)}
}

// NewsCheck probes a news listing endpoint and requires at least one article
// with a title. The article count is recorded as a metric either way.
type NewsCheck struct {
	client *Client
	name   string
	url    string
}

// NewNewsCheck builds a check for GET {baseURL}/news?limit=N. When category
// is non-empty the category-scoped endpoint is probed instead.
func NewNewsCheck(client *Client, name, baseURL, category string, limit int) *NewsCheck {
	url := fmt.Sprintf("%s/news?limit=%d", baseURL, limit)
	if category != "" {
		url = fmt.Sprintf("%s/news/%s?limit=%d", baseURL, category, limit)
	}
	return &NewsCheck{client: client, name: name, url: url}
}

func (c *NewsCheck) Name() string { return c.name }

func (c *NewsCheck) Run(ctx context.Context) CheckResult {
	var items []NewsItem
	if err := c.client.getJSON(ctx, c.url, &items); err != nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: err.Error()}
	}

	count := 0
	for _, item := range items {
		if item.Title != "" {
			count++
		}
	}
	metrics := map[string]float64{"articles": float64(count)}

	if count == 0 {
		cerr := &ContentError{URL: c.url, Reason: "no articles with a title in response"}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: cerr.Error(), Metrics: metrics}
	}

	logging.Debug("Check-"+c.Name(), "%d articles returned from %s", count, c.url)
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d articles returned", count),
		Metrics: metrics,
	}
}

// ProxyCheck probes a path that the frontend must forward internally to the
// API service. It validates routing only, not content.
type ProxyCheck struct {
	client *Client
	url    string
}

func NewProxyCheck(client *Client, frontendBaseURL string) *ProxyCheck {
	return &ProxyCheck{client: client, url: frontendBaseURL + "/api/health"}
}

func (c *ProxyCheck) Name() string { return "frontend-proxy" }

func (c *ProxyCheck) Run(ctx context.Context) CheckResult {
	status, body, err := c.client.get(ctx, c.url)
	if err != nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: err.Error()}
	}
	if status != http.StatusOK {
		perr := &ProtocolError{URL: c.url, StatusCode: status, Body: excerpt(body)}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: perr.Error()}
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: "frontend forwards /api/health to the API service"}
}

// TransformCheck exercises the full transformation path: it samples one
// article from the news listing, merges it into the payload template, POSTs
// it to /transform and validates the shape of the rewritten article. Short
// transformed content downgrades the result to Warn instead of Fail.
type TransformCheck struct {
	client           *Client
	apiBaseURL       string
	style            string
	minContentLength int
}

func NewTransformCheck(client *Client, apiBaseURL, style string, minContentLength int) *TransformCheck {
	return &TransformCheck{
		client:           client,
		apiBaseURL:       apiBaseURL,
		style:            style,
		minContentLength: minContentLength,
	}
}

func (c *TransformCheck) Name() string { return "transform" }

func (c *TransformCheck) Run(ctx context.Context) CheckResult {
	sampleURL := c.apiBaseURL + "/news?limit=1"

	var items []NewsItem
	if err := c.client.getJSON(ctx, sampleURL, &items); err != nil || len(items) == 0 {
		// All remaining sub-steps depend on a sample, so stop here.
		msg := "no sample available"
		if err != nil {
			msg = fmt.Sprintf("no sample available: %v", err)
		}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: msg}
	}

	article := mergeArticle(transformTemplate, items[0])
	payload := TransformRequest{Article: article, Style: c.style}

	url := c.apiBaseURL + "/transform"
	status, body, err := c.client.postJSON(ctx, url, payload)
	if err != nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: err.Error()}
	}
	if status != http.StatusOK {
		perr := &ProtocolError{URL: url, StatusCode: status, Body: excerpt(body)}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: perr.Error()}
	}

	var resp TransformResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		cerr := &ContentError{URL: url, Reason: fmt.Sprintf("undecodable body: %v", err)}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: cerr.Error()}
	}

	if resp.Transformed == nil {
		cerr := &ContentError{URL: url, Reason: "missing \"transformed\" field"}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: cerr.Error()}
	}
	if resp.Transformed.Title == "" {
		cerr := &ContentError{URL: url, Reason: "transformed article has no title"}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: cerr.Error()}
	}
	if resp.Transformed.Content == "" {
		cerr := &ContentError{URL: url, Reason: "transformed article has no content"}
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: cerr.Error()}
	}

	contentLength := len(resp.Transformed.Content)
	metrics := map[string]float64{"content_length": float64(contentLength)}

	if contentLength < c.minContentLength {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("transformed content is suspiciously short: %d bytes (minimum %d)", contentLength, c.minContentLength),
			Metrics: metrics,
		}
	}

	logging.Debug("Check-"+c.Name(), "transformed %q into %q (%d bytes)", article.Title, resp.Transformed.Title, contentLength)
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("article transformed, %d bytes of content", contentLength),
		Metrics: metrics,
	}
}

// mergeArticle overlays the non-empty fields of sample onto the template.
func mergeArticle(template, sample NewsItem) NewsItem {
	merged := template
	if sample.Title != "" {
		merged.Title = sample.Title
	}
	if sample.Description != "" {
		merged.Description = sample.Description
	}
	if sample.Link != "" {
		merged.Link = sample.Link
	}
	if sample.PubDate != "" {
		merged.PubDate = sample.PubDate
	}
	if sample.Category != "" {
		merged.Category = sample.Category
	}
	return merged
}

// FleetCheck queries the cluster for the ratio of running pods to the total
// in the deployment namespace. It never passes vacuously on an empty fleet.
type FleetCheck struct {
	clientset kubernetes.Interface
	namespace string
}

func NewFleetCheck(clientset kubernetes.Interface, namespace string) *FleetCheck {
	return &FleetCheck{clientset: clientset, namespace: namespace}
}

func (c *FleetCheck) Name() string { return "fleet-status" }

func (c *FleetCheck) Run(ctx context.Context) CheckResult {
	running, total, listing, err := kube.FleetStatus(ctx, c.clientset, c.namespace)
	if err != nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: fmt.Sprintf("failed to query pods in %s: %v", c.namespace, err)}
	}

	metrics := map[string]float64{
		"running": float64(running),
		"total":   float64(total),
	}

	if total == 0 {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: fmt.Sprintf("no pods found in namespace %s", c.namespace), Metrics: metrics}
	}
	if running < total {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("only %d/%d pods running in %s: %s", running, total, c.namespace, listing),
			Metrics: metrics,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d/%d pods running in %s", running, total, c.namespace),
		Metrics: metrics,
	}
}
