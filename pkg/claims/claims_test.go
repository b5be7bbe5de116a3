// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package claims

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	c := Claims{"email": "a@b.com", "empty": "", "count": 3, "null": nil}

	v, err := c.GetString("email")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", v)

	v, err = c.GetString("empty")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = c.GetString("missing")
	assert.ErrorIs(t, err, ErrClaimNotFound)

	_, err = c.GetString("null")
	assert.ErrorIs(t, err, ErrClaimNotFound)

	_, err = c.GetString("count")
	assert.ErrorIs(t, err, ErrClaimType)
}

func TestGetStringList(t *testing.T) {
	c := Claims{
		"roles":  []interface{}{"admin", "user"},
		"typed":  []string{"viewer"},
		"mixed":  []interface{}{"admin", 1},
		"scalar": "admin",
	}

	v, err := c.GetStringList("roles")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "user"}, v)

	v, err = c.GetStringList("typed")
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer"}, v)

	_, err = c.GetStringList("mixed")
	assert.ErrorIs(t, err, ErrClaimType)

	_, err = c.GetStringList("scalar")
	assert.ErrorIs(t, err, ErrClaimType)

	_, err = c.GetStringList("missing")
	assert.ErrorIs(t, err, ErrClaimNotFound)
}

func TestGetMap(t *testing.T) {
	c := Claims{
		"resource_access": map[string]interface{}{"api": map[string]interface{}{}},
		"nested":          jwt.MapClaims{"a": "b"},
		"list":            []interface{}{},
	}

	m, err := c.GetMap("resource_access")
	require.NoError(t, err)
	assert.Contains(t, m, "api")

	m, err = c.GetMap("nested")
	require.NoError(t, err)
	assert.Equal(t, "b", m["a"])

	_, err = c.GetMap("list")
	assert.ErrorIs(t, err, ErrClaimType)

	_, err = c.GetMap("missing")
	assert.ErrorIs(t, err, ErrClaimNotFound)
}

func TestAsClaims(t *testing.T) {
	m, err := AsClaims(map[string]interface{}{"roles": []interface{}{"a"}})
	require.NoError(t, err)
	assert.Contains(t, m, "roles")

	_, err = AsClaims("not an object")
	assert.ErrorIs(t, err, ErrClaimType)
}
