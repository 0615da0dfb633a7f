package main

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commitSHA string
		want      string
	}{
		{"Dev", "", "", "dev"},
		{"Release", "1.2.0", "", "1.2.0"},
		{"WithCommit", "1.2.0", "abc1234", "1.2.0 (abc1234)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, CommitSHA = tt.version, tt.commitSHA
			t.Cleanup(func() { Version, CommitSHA = "", "" })
			assert.Equal(t, tt.want, buildVersion())
		})
	}
}
