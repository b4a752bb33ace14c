// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raex",
		Name:      "ingest_total",
		Help:      "Interchange documents processed, by outcome.",
	}, []string{"outcome"})

	IngestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "raex",
		Name:      "ingest_duration_seconds",
		Help:      "Time spent parsing, assembling and persisting one document.",
		Buckets:   prometheus.DefBuckets,
	})

	SearchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raex",
		Name:      "search_total",
		Help:      "Search requests, by whether a term filter was applied.",
	}, []string{"filtered"})
)
