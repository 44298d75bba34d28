package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func getHistogramCount(hv *prometheus.HistogramVec, labels ...string) uint64 {
	o, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := o.(prometheus.Metric).Write(&m); err != nil {
		return 0
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetrics_TVMazeRequestsTotal(t *testing.T) {
	before := getCounterVecValue(TVMazeRequestsTotal, "search", "success")
	TVMazeRequestsTotal.WithLabelValues("search", "success").Inc()
	after := getCounterVecValue(TVMazeRequestsTotal, "search", "success")

	if after != before+1 {
		t.Errorf("Expected success counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_TVMazeRequestDuration(t *testing.T) {
	before := getHistogramCount(TVMazeRequestDuration, "episodes")
	TVMazeRequestDuration.WithLabelValues("episodes").Observe(0.25)
	after := getHistogramCount(TVMazeRequestDuration, "episodes")

	if after != before+1 {
		t.Errorf("Expected histogram sample count to increment by 1, got diff %d", after-before)
	}
}

func TestMetrics_PanelUpdatesTotal(t *testing.T) {
	before := getCounterVecValue(PanelUpdatesTotal, "shows", "stale")
	PanelUpdatesTotal.WithLabelValues("shows", "stale").Inc()
	after := getCounterVecValue(PanelUpdatesTotal, "shows", "stale")

	if after != before+1 {
		t.Errorf("Expected stale counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_HTTPRequestsTotal(t *testing.T) {
	before := getCounterVecValue(HTTPRequestsTotal, "/", "200")
	HTTPRequestsTotal.WithLabelValues("/", "200").Inc()
	after := getCounterVecValue(HTTPRequestsTotal, "/", "200")

	if after != before+1 {
		t.Errorf("Expected http counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 9090)

	if srv.Addr != "localhost:9090" {
		t.Errorf("Expected address 'localhost:9090', got '%s'", srv.Addr)
	}

	if srv.Handler == nil {
		t.Error("Expected handler to be set")
	}
}

func TestMetrics_NewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 0)

	if srv.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected address '0.0.0.0:9090', got '%s'", srv.Addr)
	}
}
