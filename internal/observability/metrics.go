package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "depthlint_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "depthlint_scan_seconds",
		Help:    "Time spent on a full scan.",
		Buckets: prometheus.DefBuckets,
	})

	FilesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depthlint_files_scanned_total",
		Help: "Total number of source files scanned.",
	})

	ParseErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depthlint_parse_errors_total",
		Help: "Total number of files skipped due to parse or read errors.",
	})

	FindingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depthlint_findings_total",
		Help: "Total number of depth violations reported.",
	})

	CurrentFindings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "depthlint_current_findings",
		Help: "Number of violations found by the most recent scan.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depthlint_watcher_events_total",
		Help: "Total number of file system change batches received by the watcher.",
	})

	RescansThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depthlint_rescans_throttled_total",
		Help: "Total number of rescans skipped by the rate limiter.",
	})
)
