package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "bare expense",
			args:     []string{"50rb", "kopi"},
			contains: []string{"kind: transaction", "direction: expense", "Rp 50.000", "description: kopi"},
		},
		{
			name:     "income prefix",
			args:     []string{"+", "1jt", "gaji"},
			contains: []string{"kind: transaction", "direction: income", "Rp 1.000.000", "description: gaji"},
		},
		{
			name:     "initial balance",
			args:     []string{"saldo", "awal", "500rb"},
			contains: []string{"kind: set_balance", "Rp 500.000"},
		},
		{
			name:     "balance query",
			args:     []string{"saldo"},
			contains: []string{"kind: get_balance"},
		},
		{
			name:     "unrecognized carries a hint",
			args:     []string{"halo", "bot"},
			contains: []string{"kind: unrecognized", "hint:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := parseCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	_, err := parseLogLevel("debug")
	require.NoError(t, err)

	_, err = parseLogLevel("verbose")
	assert.Error(t, err)
}
