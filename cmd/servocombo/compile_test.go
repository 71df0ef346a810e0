package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "action.txt")
	out := filepath.Join(dir, "servo_commands.txt")
	if err := os.WriteFile(in, []byte("AS\n\n???\nA~S\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var mirror bytes.Buffer
	results, err := compileFile(in, out, &mirror, zerolog.Nop())
	if err != nil {
		t.Fatalf("compileFile: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "(0,2,5)(1,2,5)\n(0,-2,5)(1,-2,5)\n\n" +
		"(0,2,5)\n(0,0,1)\n(1,2,5)\n(0,-2,5)(1,-2,5)\n\n"
	if string(data) != want {
		t.Errorf("command file =\n%q\nwant\n%q", data, want)
	}
	if mirror.String() != want {
		t.Errorf("mirror = %q, want %q", mirror.String(), want)
	}

	preview := renderPreview(results)
	for _, s := range []string{"A~S", "(0,0,1)", "(no keys)"} {
		if !strings.Contains(preview, s) {
			t.Errorf("preview missing %q:\n%s", s, preview)
		}
	}
}

func TestCompileFile_MissingScript(t *testing.T) {
	dir := t.TempDir()
	_, err := compileFile(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"), nil, zerolog.Nop())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want not found", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.txt")); statErr == nil {
		t.Error("command file created despite missing script")
	}
}
