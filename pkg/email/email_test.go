package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDisplayName(t *testing.T) {
	cases := map[string]string{
		"ana.souza@example.com":  "Ana Souza",
		"jose_m-ribeiro@mail.io": "Jose M Ribeiro",
		"maria@example.com":      "Maria",
		"ana.souza42@mail.io":    "Ana Souza42",
		"12345@example.com":      "Anonymous",
		"":                       "Anonymous",
	}
	for in, want := range cases {
		assert.Equal(t, want, DeriveDisplayName(in), in)
	}
}
