// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/identity-binder/internal/logging"
	"github.com/canonical/identity-binder/internal/monitoring"
	"github.com/canonical/identity-binder/internal/tracing"
	"github.com/canonical/identity-binder/internal/version"
)

const okValue = "ok"

// ProviderLister is the view of the provider registry the status endpoint needs.
type ProviderLister interface {
	List() []string
}

type API struct {
	providers ProviderLister

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	providers := a.providers.List()

	available := 1.0
	if len(providers) == 0 {
		available = 0.0
	}

	if err := a.monitor.SetDependencyAvailability(map[string]string{"component": "providers"}, available); err != nil {
		a.logger.Debugf("error setting providers availability: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(Status{Status: okValue, Providers: providers}); err != nil {
		a.logger.Errorf("failed to encode status response: %v", err)
	}
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.version")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(a.buildInfo()); err != nil {
		a.logger.Errorf("failed to encode version response: %v", err)
	}
}

func (a *API) buildInfo() *BuildInfo {
	info := new(BuildInfo)
	info.Version = version.Version

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.Name = buildInfo.Main.Path

	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" {
			info.CommitHash = setting.Value
		}
	}

	return info
}

func NewAPI(providers ProviderLister, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.providers = providers

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
