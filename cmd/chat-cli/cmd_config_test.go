package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"koita-chat-api/internal/config"
)

func TestWriteEntries(t *testing.T) {
	entries := []config.Entry{
		{Env: "PORT", Value: "5000", Default: "5000"},
		{Env: "JWT_SECRET", Value: "********", Secret: true},
	}

	tests := []struct {
		format string
		check  func(t *testing.T, out []byte)
	}{
		{"env", func(t *testing.T, out []byte) {
			assert.Equal(t, "PORT=5000\nJWT_SECRET=********\n", string(out))
		}},
		{"json", func(t *testing.T, out []byte) {
			var decoded []config.Entry
			require.NoError(t, json.Unmarshal(out, &decoded))
			assert.Equal(t, entries, decoded)
		}},
		{"yaml", func(t *testing.T, out []byte) {
			var decoded []config.Entry
			require.NoError(t, yaml.Unmarshal(out, &decoded))
			assert.Equal(t, entries, decoded)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeEntries(&buf, entries, tt.format))
			tt.check(t, buf.Bytes())
		})
	}

	require.Error(t, writeEntries(&bytes.Buffer{}, entries, "toml"))
}
