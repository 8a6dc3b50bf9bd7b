package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"128,128", []int{128, 128}, false},
		{" 64, 64 ,64 ", []int{64, 64, 64}, false},
		{"20", []int{20}, false},
		{"", nil, true},
		{"12x12", nil, true},
		{"12,", nil, true},
	}
	for _, tt := range tests {
		got, err := parseShape(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseShape(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "json" {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	if got := parseFormats("json,csv"); len(got) != 2 || got[1] != "csv" {
		t.Errorf("parseFormats = %v", got)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if expected := filepath.Join(custom, appName); dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	c := &CLI{Config: Config{CacheDir: "/tmp/elsewhere"}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/elsewhere" {
		t.Errorf("cacheDir() = %q, want config override", dir)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"generate", "pack", "serve", "cache", "config", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestGenerateAndPackCommands(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	img := filepath.Join(dir, "image.json")

	c := New(io.Discard, LogInfo)

	root := c.RootCommand()
	root.SetArgs([]string{"generate", "solid", "--shape", "20,20", "-o", img})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(img); err != nil {
		t.Fatalf("generated image missing: %v", err)
	}

	out := filepath.Join(dir, "out")
	root = c.RootCommand()
	root.SetArgs([]string{"pack", "--image", img, "--radius", "5", "--formats", "csv", "-o", out, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("pack: %v", err)
	}

	data, err := os.ReadFile(out + ".csv")
	if err != nil {
		t.Fatalf("csv artifact missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "x,y\n") {
		t.Errorf("csv artifact = %q", data)
	}
}

func TestPackCommandRejectsBadRadius(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetErr(io.Discard)
	root.SetOut(io.Discard)
	root.SetArgs([]string{"pack", "--generator", "solid", "--shape", "10,10", "--radius", "0", "--no-cache"})
	if err := root.Execute(); err == nil {
		t.Error("pack with radius 0 should fail")
	}
}
