package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lineage"

var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "parse_duration_seconds",
		Help:      "Time spent parsing uploaded sources.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	IndividualsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "individuals_parsed_total",
		Help:      "Individuals read from GEDCOM sources.",
	})

	DanglingReferences = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dangling_references_total",
		Help:      "Family references that did not resolve to an individual.",
	})

	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Correlation analyses run, by outcome.",
	}, []string{"outcome"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent correlating matches against a tree.",
		Buckets:   prometheus.DefBuckets,
	})

	ConnectionsFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connections_found_total",
		Help:      "Match pairs found to share ancestry.",
	})

	UnmatchedNames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unmatched_names_total",
		Help:      "DNA match names that resolved to no individual.",
	})

	GraphExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_exports_total",
		Help:      "Tree exports to the graph database, by outcome.",
	}, []string{"outcome"})
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

func Handler() http.Handler {
	return promhttp.Handler()
}
