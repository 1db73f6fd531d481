// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func setVersion(t *testing.T, version, commit, dirty, buildTime string) {
	t.Helper()
	saved := [4]string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
	})
	Version, GitCommit, GitDirty, BuildTime = version, commit, dirty, buildTime
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name  string
		dirty string
		want  string
	}{
		{"clean", "false", "1.2.3 (abc1234, 2026-01-01T00:00:00Z)"},
		{"dirty", "true", "1.2.3 (abc1234-dirty, 2026-01-01T00:00:00Z)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			setVersion(t, "1.2.3", "abc1234", test.dirty, "2026-01-01T00:00:00Z")
			if got := Info(); got != test.want {
				t.Errorf("Info() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q, want prefix %q", full, Info())
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q, missing Go version", full)
	}
}

func TestBuild(t *testing.T) {
	setVersion(t, "1.2.3", "abc1234", "true", "now")

	info := Build()
	if info.Version != "1.2.3" || info.GitCommit != "abc1234" || !info.Dirty || info.BuildTime != "now" {
		t.Errorf("Build() = %+v", info)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}
