// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package claims

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrClaimNotFound = errors.New("claim not found")
	ErrClaimType     = errors.New("unexpected claim type")
)

// Claims is the untyped payload of a decoded token.
type Claims jwt.MapClaims

// GetString returns the string value of claim key.
func (c Claims) GetString(key string) (string, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrClaimNotFound, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, not a string", ErrClaimType, key, v)
	}

	return s, nil
}

// GetStringList returns claim key as a list of strings, every element must be a string.
func (c Claims) GetStringList(key string) ([]string, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %s", ErrClaimNotFound, key)
	}

	switch list := v.(type) {
	case []string:
		return list, nil
	case []interface{}:
		values := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is %T, not a string", ErrClaimType, key, i, item)
			}
			values = append(values, s)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, not a list", ErrClaimType, key, v)
	}
}

// GetMap returns the nested object stored in claim key.
func (c Claims) GetMap(key string) (Claims, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %s", ErrClaimNotFound, key)
	}

	m, ok := asClaims(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, not an object", ErrClaimType, key, v)
	}

	return m, nil
}

func asClaims(v interface{}) (Claims, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return Claims(m), true
	case Claims:
		return m, true
	case jwt.MapClaims:
		return Claims(m), true
	default:
		return nil, false
	}
}

// AsClaims converts a nested claim value to Claims.
func AsClaims(v interface{}) (Claims, error) {
	m, ok := asClaims(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not an object", ErrClaimType, v)
	}

	return m, nil
}
