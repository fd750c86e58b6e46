// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package token decodes and inspects the bearer tokens issued by the
// teller service.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when a token does not have the expected
// three-segment structure or its payload cannot be decoded.
var ErrMalformed = errors.New("malformed token")

// Payload holds the claims the client cares about. Exp is seconds since
// epoch; zero means the token carried no expiry.
type Payload struct {
	Exp           int64
	Sub           string
	AccountNumber string
}

// Codec checks token expiry against an injectable clock.
type Codec struct {
	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewCodec returns a Codec using the wall clock.
func NewCodec() *Codec {
	return &Codec{Now: time.Now}
}

// Decode parses the payload segment of a bearer token without
// verifying the signature. Returns ErrMalformed (wrapping the parse
// error) when the token has the wrong segment count or an undecodable
// payload. Never panics on hostile input.
func Decode(raw string) (*Payload, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}

	p := &Payload{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.Exp = exp.Unix()
	}
	if sub, err := claims.GetSubject(); err == nil {
		p.Sub = sub
	}
	if acct, ok := claims["account_number"].(string); ok {
		p.AccountNumber = acct
	}
	return p, nil
}

// IsExpired reports whether raw should no longer be sent to the
// service: true when decoding fails, when the payload lacks an expiry,
// or when the expiry is not strictly in the future.
func (c *Codec) IsExpired(raw string) bool {
	p, err := Decode(raw)
	if err != nil || p.Exp == 0 {
		return true
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return !time.Unix(p.Exp, 0).After(now())
}
