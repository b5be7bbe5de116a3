// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/identity-binder/internal/logging"
	"github.com/canonical/identity-binder/internal/monitoring"
	"github.com/canonical/identity-binder/internal/tracing"
)

// InvalidResponseMessage is the only failure message end users get to see.
const InvalidResponseMessage = "Authentication error: invalid response from identity provider."

// maxRequestBodySize bounds the token set accepted by the identity endpoint.
const maxRequestBodySize = 64 << 10

type API struct {
	service   ServiceInterface
	providers RegistryInterface
	validator *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/providers", a.listProviders)
	mux.Get("/api/v0/providers/{provider}/configuration", a.configuration)
	mux.Post("/api/v0/providers/{provider}/identity", a.bindIdentity)
}

func (a *API) listProviders(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "identity.API.listProviders")
	defer span.End()

	a.writeResponse(w, http.StatusOK, map[string][]string{"providers": a.providers.List()}, "List of providers")
}

func (a *API) configuration(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "identity.API.configuration")
	defer span.End()

	p, err := a.providers.Get(chi.URLParam(r, "provider"))
	if err != nil {
		a.writeResponse(w, http.StatusNotFound, nil, err.Error())
		return
	}

	a.writeResponse(w, http.StatusOK, p.Configuration(), "Provider configuration")
}

func (a *API) bindIdentity(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "identity.API.bindIdentity")
	defer span.End()

	name := chi.URLParam(r, "provider")

	p, err := a.providers.Get(name)
	if err != nil {
		a.writeResponse(w, http.StatusNotFound, nil, err.Error())
		return
	}

	tokens := new(RawTokenSet)
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(tokens); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.writeResponse(w, http.StatusRequestEntityTooLarge, nil, "request body too large")
			return
		}

		a.writeResponse(w, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	if err := a.validator.Struct(tokens); err != nil {
		a.writeResponse(w, http.StatusBadRequest, nil, "id_token is required")
		return
	}

	result, err := a.service.ProcessAuthResponse(ctx, p.Name, *tokens, p.Config)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			a.logger.Debugf("authentication through %s rejected at %s: %s", p.Name, authErr.Step, authErr.Reason())
			a.writeResponse(w, http.StatusUnauthorized, nil, InvalidResponseMessage)
			return
		}

		a.logger.Errorf("unexpected error binding identity through %s: %v", p.Name, err)
		a.writeResponse(w, http.StatusInternalServerError, nil, InvalidResponseMessage)
		return
	}

	a.writeResponse(w, http.StatusOK, result, "Identity bound")
}

func (a *API) writeResponse(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(
		Response{
			Data:    data,
			Message: message,
			Status:  status,
		},
	); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func NewAPI(
	service ServiceInterface,
	providers RegistryInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.service = service
	a.providers = providers
	a.validator = validator.New(validator.WithRequiredStructEnabled())

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
