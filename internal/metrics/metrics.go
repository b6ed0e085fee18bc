// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the Prometheus collectors the job/worker layer
// and the reduction engine update while a run is in progress.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the collectors exposed by a single engine run.
type Metrics struct {
	TasksStarted      prometheus.Counter
	TasksCancelled    prometheus.Counter
	TasksCompleted    prometheus.Counter
	SolveDuration     prometheus.Histogram
	ReductionHits     *prometheus.CounterVec
	SubInstancesSize  prometheus.Histogram
	FreeRAMPercent    prometheus.Gauge
}

// New registers and returns a Metrics bundle against reg. reg may be nil, in
// which case a private registry is used so repeated New calls (e.g. in
// tests) never collide on collector names.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		TasksStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kemeny",
			Name:      "tasks_started_total",
			Help:      "Number of solver tasks started.",
		}),
		TasksCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kemeny",
			Name:      "tasks_cancelled_total",
			Help:      "Number of solver tasks cancelled by the limiter.",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kemeny",
			Name:      "tasks_completed_total",
			Help:      "Number of solver tasks that returned a consensus.",
		}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kemeny",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of a single sub-instance solve.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		ReductionHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kemeny",
			Name:      "reduction_rule_hits_total",
			Help:      "Number of successful applications per reduction rule.",
		}, []string{"rule"}),
		SubInstancesSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kemeny",
			Name:      "sub_instance_candidates",
			Help:      "Candidate-set size of emitted sub-instances.",
			Buckets:   prometheus.LinearBuckets(1, 2, 16),
		}),
		FreeRAMPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kemeny",
			Name:      "free_ram_percent",
			Help:      "Free RAM percentage last sampled by the limiter.",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.TasksStarted, m.TasksCancelled, m.TasksCompleted,
		m.SolveDuration, m.ReductionHits, m.SubInstancesSize, m.FreeRAMPercent,
	} {
		_ = reg.Register(c)
	}
	return m
}
