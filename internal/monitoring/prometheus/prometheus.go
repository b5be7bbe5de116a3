// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/identity-binder/internal/logging"
)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	authAttempts           *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	o, err := m.responseTime.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}

	o.Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return fmt.Errorf("metric not instantiated")
	}

	g, err := m.dependencyAvailability.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}

	g.Set(value)

	return nil
}

// IncAuthAttemptsMetric counts one authentication attempt, tags must carry
// provider, outcome and step.
func (m *Monitor) IncAuthAttemptsMetric(tags map[string]string) error {
	if m.authAttempts == nil {
		return fmt.Errorf("metric not instantiated")
	}

	c, err := m.authAttempts.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}

	c.Inc()

	return nil
}

func (m *Monitor) labels(tags map[string]string) prometheus.Labels {
	labels := prometheus.Labels{"service": m.service}

	for k, v := range tags {
		labels[k] = v
	}

	return labels
}

func (m *Monitor) registerHistograms() {
	m.responseTime = register(
		prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_response_time_seconds",
				Help: "http_response_time_seconds",
			},
			[]string{"route", "status", "service"},
		),
		m.logger,
	)
}

func (m *Monitor) registerGauges() {
	m.dependencyAvailability = register(
		prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dependency_available",
				Help: "dependency_available",
			},
			[]string{"component", "service"},
		),
		m.logger,
	)
}

func (m *Monitor) registerCounters() {
	m.authAttempts = register(
		prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "authentication attempts by provider, outcome and failing step",
			},
			[]string{"provider", "outcome", "step", "service"},
		),
		m.logger,
	)
}

// register adds c to the default registry, reusing an already registered
// collector of the same shape.
func register[C prometheus.Collector](c C, logger logging.LoggerInterface) C {
	err := prometheus.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}

	logger.Errorf("failed to register metric: %v", err)

	return c
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()
	m.registerCounters()

	return m
}
