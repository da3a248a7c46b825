// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/vorbenc/internal/audiotest"
	"github.com/ik5/vorbenc/internal/enginetest"
	"github.com/ik5/vorbenc/ogg"
	"github.com/ik5/vorbenc/session"
)

// runCLI executes the command tree with the fake engine and a config
// path that does not exist unless the test creates it.
func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "missing.toml")
	}
	cmd := newRootCommand(session.WithEngine(enginetest.Factory))
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath, "--log-level", "warn"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, _, err = runCLI(t, target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "Sample rate 48000 Hz, quality 0.40")
	requireContains(t, out, "Configuration valid")

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("config init over an existing file should fail without --overwrite")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateMissingFile(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("quality = 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, path, "config", "validate"); err == nil {
		t.Fatal("expected validation error for quality 3.0")
	}
}

func TestToneToFileAndInspect(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "tone.ogg")
	stdout, _, err := runCLI(t, "", "tone", "-o", out, "--rate", "8000", "--duration", "500ms")
	if err != nil {
		t.Fatalf("tone: %v", err)
	}
	requireContains(t, stdout, "Encoded 500ms of 400 Hz at 8000 Hz")

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	pages, err := ogg.ReadPages(data)
	if err != nil {
		t.Fatalf("ReadPages: %v", err)
	}
	if len(pages) < 4 || !pages[0].IsBOS() || !pages[len(pages)-1].IsEOS() {
		t.Fatalf("unexpected page layout: %d pages", len(pages))
	}

	stdout, _, err = runCLI(t, "", "inspect", out)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, stdout, "Flags")
	requireContains(t, stdout, "bos")
	requireContains(t, stdout, "eos")
	requireContains(t, stdout, "Serial:")
	if strings.Contains(stdout, "Warning") {
		t.Fatalf("complete stream reported as truncated:\n%s", stdout)
	}
}

func TestToneToStdout(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runCLI(t, "", "tone", "--rate", "8000", "--duration", "100ms")
	if err != nil {
		t.Fatalf("tone: %v", err)
	}
	if !strings.HasPrefix(stdout, "OggS") {
		t.Fatalf("stdout does not start with a page: %q", stdout[:min(len(stdout), 8)])
	}
	requireContains(t, stderr, "Encoded 100ms")
}

func TestToneRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{"quality", []string{"tone", "--quality", "2"}},
		{"duration", []string{"tone", "--duration", "0s"}},
		{"capacity", []string{"tone", "--capacity", "-1"}},
		{"args", []string{"tone", "extra"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := runCLI(t, "", tc.args...); err == nil {
				t.Fatalf("expected error for %v", tc.args)
			}
		})
	}
}

func TestEncodeWAV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "take.wav")
	audiotest.WriteWAV(t, in, 8000, 1, 16, audiotest.Ramp(4000, 100))

	stdout, _, err := runCLI(t, "", "encode", in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := filepath.Join(dir, "take.ogg")
	requireContains(t, stdout, "to "+out)

	stdout, _, err = runCLI(t, "", "inspect", "--summary", out)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, stdout, "Pages:")
	if strings.Contains(stdout, "Flags") {
		t.Fatalf("--summary printed the page table:\n%s", stdout)
	}
}

func TestEncodeRejects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unknown := filepath.Join(dir, "take.xyz")
	if err := os.WriteFile(unknown, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, "", "encode", unknown)
	if err == nil {
		t.Fatal("expected unknown format error")
	}
	requireContains(t, err.Error(), "supported: aif, aiff, mp3, oga, ogg, wav")

	same := filepath.Join(dir, "take.ogg")
	if _, _, err := runCLI(t, "", "encode", same); err == nil {
		t.Fatal("expected refusal to overwrite the input")
	}

	if _, _, err := runCLI(t, "", "encode", filepath.Join(dir, "missing.wav")); err == nil {
		t.Fatal("expected open error")
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.ogg")
	if err := os.WriteFile(path, []byte("not an ogg stream"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, "", "inspect", path)
	if !errors.Is(err, ogg.ErrInvalidPage) {
		t.Fatalf("inspect error = %v, want ErrInvalidPage", err)
	}
}

func TestIdentification(t *testing.T) {
	t.Parallel()

	body := []byte("\x01vorbis\x00\x00\x00\x00\x02\x80\xbb\x00\x00")
	ch, rate := identification(body)
	if ch != 2 || rate != 48000 {
		t.Fatalf("identification = %d ch %d Hz, want 2 ch 48000 Hz", ch, rate)
	}
	if ch, rate := identification([]byte("\x01fake")); ch != 0 || rate != 0 {
		t.Fatalf("non-vorbis header parsed as %d ch %d Hz", ch, rate)
	}
}
