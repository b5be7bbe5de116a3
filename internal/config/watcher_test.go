// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/identity-binder/internal/logging"
)

func TestProvidersWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  - name: keycloak\n"), 0o600))

	changes := make(chan []ProviderSpec, 16)

	w, err := NewProvidersWatcher(
		path,
		func(providers []ProviderSpec) error {
			changes <- providers
			return nil
		},
		logging.NewNoopLogger(),
	)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("providers:\n  - name: keycloak\n  - name: google\n    version: v2\n"), 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case providers := <-changes:
			if len(providers) != 2 {
				continue
			}
			assert.Equal(t, "google", providers[1].Name)
			require.NotNil(t, providers[1].Version)
			assert.Equal(t, "v2", *providers[1].Version)
			return
		case <-deadline:
			t.Fatal("providers file change was not picked up")
		}
	}
}

func TestProvidersWatcherMissingDirectory(t *testing.T) {
	_, err := NewProvidersWatcher(
		filepath.Join(t.TempDir(), "missing", "providers.yaml"),
		func([]ProviderSpec) error { return nil },
		logging.NewNoopLogger(),
	)
	assert.Error(t, err)
}
