// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package claims

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns the payload of a compact token (header.payload.signature).
//
// Neither the header nor the signature is looked at: a successful decode says
// nothing about the authenticity of the token, which is expected to have been
// established by the token exchange that produced it.
func Decode(token string) (Claims, error) {
	parts := strings.SplitN(token, ".", 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not base64url: %v", ErrMalformedToken, err)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var c map[string]interface{}
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object: %v", ErrMalformedToken, err)
	}

	// a JSON null decodes into a nil map without error
	if c == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after payload", ErrMalformedToken)
	}

	return Claims(c), nil
}
