package validate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
)

func testClient() *Client {
	return NewClient(5 * time.Second)
}

func TestHealthCheck_Healthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer server.Close()

	result := NewHealthCheck(testClient(), server.URL).Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
	// The raw body is part of the pass message for operator diagnosis.
	assert.Contains(t, result.Message, `"status": "healthy"`)
}

func TestHealthCheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	result := NewHealthCheck(testClient(), server.URL).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "500")
}

func TestHealthCheck_WrongStatusValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "degraded"}`))
	}))
	defer server.Close()

	result := NewHealthCheck(testClient(), server.URL).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "degraded")
}

func TestHealthCheck_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	result := NewHealthCheck(testClient(), server.URL).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "failed to reach")
}

func TestNewsCheck_ArticlesPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]NewsItem{
			{Title: "First article"},
			{Title: "Second article"},
		})
	}))
	defer server.Close()

	result := NewNewsCheck(testClient(), "news-listing", server.URL, "", 5).Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, float64(2), result.Metrics["articles"])
}

func TestNewsCheck_EmptyListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	result := NewNewsCheck(testClient(), "news-listing", server.URL, "", 1).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Equal(t, float64(0), result.Metrics["articles"])
}

func TestNewsCheck_CategoryScoped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news/world", r.URL.Path)
		json.NewEncoder(w).Encode([]NewsItem{{Title: "World news"}})
	}))
	defer server.Close()

	result := NewNewsCheck(testClient(), "news-category", server.URL, "world", 3).Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, float64(1), result.Metrics["articles"])
}

func TestNewsCheck_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	result := NewNewsCheck(testClient(), "news-listing", server.URL, "", 1).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "404")
}

func TestProxyCheck(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       Status
	}{
		{"forwarded", http.StatusOK, StatusPass},
		{"bad gateway", http.StatusBadGateway, StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/health", r.URL.Path)
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			result := NewProxyCheck(testClient(), server.URL).Run(context.Background())
			assert.Equal(t, tt.want, result.Status)
		})
	}
}

// transformFixture wires up an API stub that serves one sample article and a
// configurable /transform handler.
func transformFixture(t *testing.T, sample []NewsItem, transform http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sample)
	})
	mux.HandleFunc("/transform", transform)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestTransformCheck_Pass(t *testing.T) {
	sample := []NewsItem{{
		Title:       "Markets rally",
		Description: "Stocks climbed on Friday.",
		Link:        "http://example.com/markets",
		PubDate:     "2025-08-02T06:00:00",
		Category:    "business",
	}}

	var received TransformRequest
	server := transformFixture(t, sample, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(TransformResponse{
			Transformed: &TransformedArticle{
				Title:   "Money Continues to Exist",
				Content: strings.Repeat("Satirical coverage of market events. ", 10),
			},
			Style:  "satirical",
			Status: "success",
		})
	})

	result := NewTransformCheck(testClient(), server.URL, "satirical", 100).Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
	assert.Greater(t, result.Metrics["content_length"], float64(100))

	// The payload is the fixed template merged with the sample's fields.
	assert.Equal(t, "Markets rally", received.Article.Title)
	assert.Equal(t, "business", received.Article.Category)
	assert.Equal(t, "satirical", received.Style)
}

func TestTransformCheck_TemplateFillsMissingFields(t *testing.T) {
	// Sample with only a title: remaining fields come from the template.
	sample := []NewsItem{{Title: "Bare headline"}}

	var received TransformRequest
	server := transformFixture(t, sample, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(TransformResponse{
			Transformed: &TransformedArticle{
				Title:   "ok",
				Content: strings.Repeat("x", 200),
			},
		})
	})

	result := NewTransformCheck(testClient(), server.URL, "satirical", 100).Run(context.Background())

	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "Bare headline", received.Article.Title)
	assert.Equal(t, "Test", received.Article.Description)
	assert.Equal(t, "http://test.com", received.Article.Link)
	assert.Equal(t, "2025-08-02T06:00:00", received.Article.PubDate)
	assert.Equal(t, "world", received.Article.Category)
}

func TestTransformCheck_NoSampleAvailable(t *testing.T) {
	transformCalled := false
	server := transformFixture(t, []NewsItem{}, func(w http.ResponseWriter, r *http.Request) {
		transformCalled = true
	})

	result := NewTransformCheck(testClient(), server.URL, "satirical", 100).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "no sample available")
	// Remaining sub-steps are skipped entirely.
	assert.False(t, transformCalled)
}

func TestTransformCheck_MissingContentField(t *testing.T) {
	server := transformFixture(t, []NewsItem{{Title: "t"}}, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TransformResponse{
			Transformed: &TransformedArticle{Title: "no content here"},
		})
	})

	result := NewTransformCheck(testClient(), server.URL, "satirical", 100).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "no content")
}

func TestTransformCheck_MissingWrapper(t *testing.T) {
	server := transformFixture(t, []NewsItem{{Title: "t"}}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success"}`))
	})

	result := NewTransformCheck(testClient(), server.URL, "satirical", 100).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "transformed")
}

func TestTransformCheck_ShortContentWarns(t *testing.T) {
	server := transformFixture(t, []NewsItem{{Title: "t"}}, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TransformResponse{
			Transformed: &TransformedArticle{Title: "ok", Content: "too short"},
		})
	})

	result := NewTransformCheck(testClient(), server.URL, "satirical", 100).Run(context.Background())

	assert.Equal(t, StatusWarn, result.Status)
	assert.Equal(t, float64(len("too short")), result.Metrics["content_length"])
}

func TestTransformCheck_TransformerError(t *testing.T) {
	server := transformFixture(t, []NewsItem{{Title: "t"}}, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "transformer unavailable", http.StatusServiceUnavailable)
	})

	result := NewTransformCheck(testClient(), server.URL, "satirical", 100).Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "503")
}

func makePod(name string, phase corev1.PodPhase) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "pravdaplus"},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func TestFleetCheck(t *testing.T) {
	tests := []struct {
		name string
		pods []*corev1.Pod
		want Status
	}{
		{
			name: "all running",
			pods: []*corev1.Pod{
				makePod("api-1", corev1.PodRunning),
				makePod("frontend-1", corev1.PodRunning),
				makePod("transformer-1", corev1.PodRunning),
			},
			want: StatusPass,
		},
		{
			name: "one pending",
			pods: []*corev1.Pod{
				makePod("api-1", corev1.PodRunning),
				makePod("frontend-1", corev1.PodRunning),
				makePod("transformer-1", corev1.PodPending),
			},
			want: StatusFail,
		},
		{
			name: "empty namespace never passes vacuously",
			pods: nil,
			want: StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := make([]runtime.Object, 0, len(tt.pods))
			for _, p := range tt.pods {
				objects = append(objects, p)
			}
			clientset := fake.NewSimpleClientset(objects...)

			result := NewFleetCheck(clientset, "pravdaplus").Run(context.Background())
			assert.Equal(t, tt.want, result.Status)
		})
	}
}

func TestFleetCheck_FailureListsPods(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		makePod("api-1", corev1.PodRunning),
		makePod("transformer-1", corev1.PodFailed),
	)

	result := NewFleetCheck(clientset, "pravdaplus").Run(context.Background())

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "transformer-1")
}
