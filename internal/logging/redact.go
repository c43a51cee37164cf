// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package logging

import "strings"

// Mask keeps the first and last four characters of a secret-ish value such
// as a payment key, replacing the rest with asterisks. Values of eight
// characters or fewer are fully masked.
func Mask(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}

// SanitizeError returns a log-safe error string: newlines are flattened and
// the text is truncated to 512 bytes.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	s := strings.NewReplacer("\n", " ", "\r", " ").Replace(err.Error())
	if len(s) > 512 {
		s = s[:512] + "..."
	}
	return s
}
