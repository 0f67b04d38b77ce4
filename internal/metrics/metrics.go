// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus collectors for the generation
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generations counts finished generation requests by outcome
	// ("success" or an apierr kind).
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_generations_total",
			Help: "Total number of article generation requests by outcome.",
		},
		[]string{"outcome"},
	)

	// SectionsFiltered counts sections dropped by the content filter.
	SectionsFiltered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blogsmith_sections_filtered_total",
			Help: "Total number of sections dropped by the content filter.",
		},
	)

	// ImageLookups counts image lookups by result (hit, miss, error, skipped).
	ImageLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_image_lookups_total",
			Help: "Total number of section image lookups by result.",
		},
		[]string{"result"},
	)

	// GenerationDuration observes end-to-end generation latency.
	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blogsmith_generation_duration_seconds",
			Help:    "End-to-end article generation latency.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90, 120},
		},
	)
)

func init() {
	prometheus.MustRegister(Generations, SectionsFiltered, ImageLookups, GenerationDuration)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
