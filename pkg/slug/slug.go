// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the public identifiers for categories and genres (e.g.
// "science-fiction"). Clients may supply their own slug; when they don't,
// this package derives one from the resource name.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeAccents strips combining marks after NFD decomposition
// (é → e + combining acute → e).
var removeAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Decomposes accented characters and drops the combining marks.
// 2. Lowercases the result.
// 3. Replaces every non-alphanumeric run with a single hyphen.
// 4. Trims leading/trailing hyphens.
func From(s string) string {
	normalized, _, err := transform.String(removeAccents, s)
	if err != nil {
		normalized = s
	}

	var builder strings.Builder
	builder.Grow(len(normalized))

	lastWasHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(normalized) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			builder.WriteRune(r)
			lastWasHyphen = false
		default:
			if !lastWasHyphen {
				builder.WriteByte('-')
				lastWasHyphen = true
			}
		}
	}

	return strings.TrimRight(builder.String(), "-")
}
