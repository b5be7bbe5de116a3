// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package claims

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, c jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	return token
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{
			name:   "empty payload",
			claims: jwt.MapClaims{},
		},
		{
			name: "id token",
			claims: jwt.MapClaims{
				"email": "u@example.com",
				"hd":    "example.com",
				"sub":   "f3b1c2",
			},
		},
		{
			name: "access token",
			claims: jwt.MapClaims{
				"resource_access": map[string]interface{}{
					"api": map[string]interface{}{
						"roles": []interface{}{"admin", "user"},
					},
				},
				"email_verified": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(encode(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, Claims(tt.claims), c)
		})
	}
}

func TestDecodeKeepsNumbers(t *testing.T) {
	c, err := Decode(encode(t, jwt.MapClaims{"exp": 1700000000, "ratio": 0.5}))
	require.NoError(t, err)

	assert.Equal(t, json.Number("1700000000"), c["exp"])
	assert.Equal(t, json.Number("0.5"), c["ratio"])
}

func TestDecodeIgnoresHeaderAndSignature(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"a@b.com"}`))

	c, err := Decode("not-a-header." + payload + ".not-a-signature")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", c["email"])

	// extra separators end up in the signature segment
	c, err = Decode("h." + payload + ".sig.with.dots")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", c["email"])
}

func TestDecodePadding(t *testing.T) {
	raw := []byte(`{"email":"ab@c.io"}`)

	unpadded := base64.RawURLEncoding.EncodeToString(raw)
	padded := base64.URLEncoding.EncodeToString(raw)
	require.NotEqual(t, unpadded, padded)

	c1, err := Decode("h." + unpadded + ".s")
	require.NoError(t, err)

	c2, err := Decode("h." + padded + ".s")
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
}

func TestDecodeTrailingWhitespace(t *testing.T) {
	segment := base64.RawURLEncoding.EncodeToString([]byte("{\"a\":1}\n "))

	c, err := Decode("h." + segment + ".s")
	require.NoError(t, err)
	assert.Equal(t, "1", c["a"].(json.Number).String())
}

func TestDecodeMalformed(t *testing.T) {
	segment := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", "abc." + segment(`{"email":"a@b.com"}`)},
		{"payload not base64", "h.!!!.s"},
		{"payload not json", "h." + segment("not json") + ".s"},
		{"payload is a list", "h." + segment(`[1,2]`) + ".s"},
		{"payload is a string", "h." + segment(`"x"`) + ".s"},
		{"payload is null", "h." + segment(`null`) + ".s"},
		{"trailing data", "h." + segment(`{"a":1}{"b":2}`) + ".s"},
		{"trailing object closer", "h." + segment(`{"a":1}}`) + ".s"},
		{"trailing array closer", "h." + segment(`{"a":1}]`) + ".s"},
		{"trailing closers", "h." + segment(`{"a":1}]]]}`) + ".s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(tt.token)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
