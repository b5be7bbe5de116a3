// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"fmt"
	"slices"

	"github.com/canonical/identity-binder/pkg/claims"
)

const resourceAccessClaim = "resource_access"

// ValidateRole checks that some resource in the resource_access claim grants
// requiredRole. An empty requiredRole disables the check.
//
// A resource granting the role is enough to succeed even if other entries are
// malformed; structural problems are only reported when nothing matched.
func ValidateRole(c claims.Claims, requiredRole string) error {
	if requiredRole == "" {
		return nil
	}

	resources, err := c.GetMap(resourceAccessClaim)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAccessToken, err)
	}

	var structErr error

	for name, v := range resources {
		details, err := claims.AsClaims(v)
		if err != nil {
			structErr = fmt.Errorf("%w: %s: %v", ErrInvalidAccessToken, name, err)
			continue
		}

		if _, ok := details["roles"]; !ok {
			continue
		}

		roles, err := details.GetStringList("roles")
		if err != nil {
			structErr = fmt.Errorf("%w: %s: %v", ErrInvalidAccessToken, name, err)
			continue
		}

		if slices.Contains(roles, requiredRole) {
			return nil
		}
	}

	if structErr != nil {
		return structErr
	}

	return fmt.Errorf("%w: %s", ErrMissingRequiredRole, requiredRole)
}
