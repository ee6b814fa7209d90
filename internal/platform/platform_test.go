package platform

import (
	"runtime"
	"testing"
)

// TestPredefinedPlatforms tests that all expected platforms are defined
func TestPredefinedPlatforms(t *testing.T) {
	platforms := PredefinedPlatforms()

	if got := len(platforms); got != 5 {
		t.Fatalf("PredefinedPlatforms() count = %d, want 5", got)
	}

	for i, p := range platforms {
		if p.OS == "" {
			t.Errorf("Platform[%d].OS is empty", i)
		}
		if p.Arch == "" {
			t.Errorf("Platform[%d].Arch is empty", i)
		}
		if p.FileExt == "" {
			t.Errorf("Platform[%d].FileExt is empty", i)
		}
		if p.DisplayName == "" {
			t.Errorf("Platform[%d].DisplayName is empty", i)
		}
	}

	expected := map[string]string{
		"darwin_amd64":  "macOS (Intel)",
		"darwin_arm64":  "macOS (Apple Silicon)",
		"linux_amd64":   "Linux (x64)",
		"linux_arm64":   "Linux (ARM64)",
		"windows_amd64": "Windows (x64)",
	}
	for _, p := range platforms {
		want, ok := expected[p.Key()]
		if !ok {
			t.Errorf("unexpected platform key %s", p.Key())
			continue
		}
		if p.DisplayName != want {
			t.Errorf("DisplayName for %s = %q, want %q", p.Key(), p.DisplayName, want)
		}
	}
}

func TestDisplayOrder(t *testing.T) {
	want := []string{"darwin_arm64", "darwin_amd64", "linux_amd64", "linux_arm64", "windows_amd64"}
	got := DisplayOrder()
	if len(got) != len(want) {
		t.Fatalf("DisplayOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DisplayOrder()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFindPlatform(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOS   string
		wantArch string
		wantErr  bool
	}{
		{name: "platform key", input: "linux_arm64", wantOS: "linux", wantArch: "arm64"},
		{name: "os-arch form", input: "darwin-amd64", wantOS: "darwin", wantArch: "amd64"},
		{name: "windows", input: "windows_amd64", wantOS: "windows", wantArch: "amd64"},
		{name: "unsupported", input: "windows_arm64", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FindPlatform(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("FindPlatform(%q) expected error, got %+v", tt.input, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindPlatform(%q) unexpected error: %v", tt.input, err)
			}
			if p.OS != tt.wantOS || p.Arch != tt.wantArch {
				t.Errorf("FindPlatform(%q) = %s/%s, want %s/%s", tt.input, p.OS, p.Arch, tt.wantOS, tt.wantArch)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("darwin_arm64"); got != "macOS (Apple Silicon)" {
		t.Errorf("DisplayName(darwin_arm64) = %q", got)
	}
	if got := DisplayName("freebsd_amd64"); got != "freebsd_amd64" {
		t.Errorf("DisplayName(freebsd_amd64) = %q, want raw key", got)
	}
}

func TestCurrentPlatform(t *testing.T) {
	p := CurrentPlatform()
	if p.OS != runtime.GOOS {
		t.Errorf("CurrentPlatform().OS = %s, want %s", p.OS, runtime.GOOS)
	}
	if p.Arch != runtime.GOARCH {
		t.Errorf("CurrentPlatform().Arch = %s, want %s", p.Arch, runtime.GOARCH)
	}
	if p.DisplayName == "" {
		t.Error("CurrentPlatform().DisplayName is empty")
	}
}

func TestBuildPlatform(t *testing.T) {
	p := buildPlatform("windows", "arm64")
	if p.FileExt != "zip" {
		t.Errorf("buildPlatform(windows).FileExt = %s, want zip", p.FileExt)
	}
	if p.DisplayName != "windows_arm64" {
		t.Errorf("buildPlatform(windows).DisplayName = %s, want windows_arm64", p.DisplayName)
	}

	p = buildPlatform("freebsd", "amd64")
	if p.FileExt != "tar.gz" {
		t.Errorf("buildPlatform(freebsd).FileExt = %s, want tar.gz", p.FileExt)
	}
}

func TestResolvePlatforms(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		want    int
		wantErr bool
	}{
		{name: "no flags selects all", flags: nil, want: 5},
		{name: "all", flags: []string{"linux_amd64", "ALL"}, want: 5},
		{name: "explicit", flags: []string{"linux_amd64", "darwin-arm64"}, want: 2},
		{name: "current", flags: []string{"current"}, want: 1},
		{name: "invalid", flags: []string{"plan9_386"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePlatforms(tt.flags)
			if tt.wantErr {
				if err == nil {
					t.Error("ResolvePlatforms() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePlatforms() unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("ResolvePlatforms() returned %d platforms, want %d", len(got), tt.want)
			}
		})
	}
}
