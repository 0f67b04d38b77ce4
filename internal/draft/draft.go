// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package draft turns raw text-generator output into a validated article
// draft. The pipeline is Recover (tolerant JSON parsing), Sanitize
// (deterministic backfill of recoverable omissions) and Validate (the
// strict schema check).
package draft

import "blogsmith/internal/models"

// Decode runs the full recovery pipeline over raw generator output.
func Decode(raw string, ctx Context) (*models.Draft, error) {
	candidate, err := Recover(raw)
	if err != nil {
		return nil, err
	}
	return Validate(Sanitize(candidate, ctx))
}
