package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tc := range testCases {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			assert.Equal(t, tc.want, confirm(strings.NewReader(tc.input), "Remove?"))
		})
	}
}
