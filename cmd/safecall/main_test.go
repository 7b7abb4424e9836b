package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSafeCall(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		absent bool
		want   string
	}{
		{name: "default text", want: "THIS IS NOT NULL\n"},
		{name: "custom text", args: []string{"hello"}, want: "HELLO\n"},
		{name: "absent", absent: true, want: "null\n"},
		{name: "absent wins over text", args: []string{"hello"}, absent: true, want: "null\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runSafeCall(&out, tt.args, tt.absent))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRootCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--absent"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		absentFlag = false
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "null\n", out.String())
}
