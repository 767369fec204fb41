// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/critiq-app/critiq/pkg/slug"
)

/*
TestFrom verifies the slug derivation pipeline over representative inputs.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Drama", "drama"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Cinéma Vérité", "cinema-verite"},
		{"punctuation_runs", "Rock & Roll!!", "rock-roll"},
		{"leading_trailing", "  --Talk Show--  ", "talk-show"},
		{"digits", "Top 10 of 2024", "top-10-of-2024"},
		{"only_symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
