package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssemble(t *testing.T) {
	s, err := parseScript(strings.NewReader("const double 2.5\nconst int 7\npop 1\nreturn double\n"))
	if err != nil {
		t.Fatal(err)
	}
	r := assemble(context.Background(), s, options{wasm: true})
	if r.err != nil {
		t.Fatal(r.err)
	}
	if r.wasmErr != nil {
		t.Fatal(r.wasmErr)
	}
	if r.size.Maximal() != 3 || r.size.Impact() != 1 {
		t.Errorf("size = %s, want max 3 net +1", r.size)
	}
	if r.depth != 0 {
		t.Errorf("depth = %d, want 0 after dreturn", r.depth)
	}
	if r.wasm != 2.5 {
		t.Errorf("wasm = %v, want 2.5", r.wasm)
	}

	out := r.render(plainStyles())
	for _, want := range []string{
		"0000: ldc2_w #1 // double 2.5",
		"0003: bipush 7",
		"0005: pop",
		"0006: dreturn",
		"#1 = double 2.5",
		"max stack: 3",
		"net effect: +0",
		"wasm: 2.5 (double)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAssemble_ErrorNamesLine(t *testing.T) {
	s, err := parseScript(strings.NewReader("const int 1\n\npop 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	r := assemble(context.Background(), s, options{})
	if r.err == nil || !strings.HasPrefix(r.err.Error(), "line 3:") {
		t.Fatalf("err = %v, want error on line 3", r.err)
	}
	if len(r.lines) != 1 {
		t.Errorf("listing has %d lines, want 1", len(r.lines))
	}
}

func TestAssemble_WideAndUnlowerable(t *testing.T) {
	s, err := parseScript(strings.NewReader("const string hi\npop 1\nreturn void\n"))
	if err != nil {
		t.Fatal(err)
	}
	r := assemble(context.Background(), s, options{wide: true, wasm: true})
	if r.err != nil {
		t.Fatal(r.err)
	}
	if r.wasmErr == nil {
		t.Error("strings should not lower to wasm")
	}
	out := r.render(plainStyles())
	if !strings.Contains(out, `ldc_w #2 // string "hi"`) {
		t.Errorf("output missing ldc_w:\n%s", out)
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.sg")
	if err := os.WriteFile(path, []byte("const long 5\nreturn J\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run(path, options{wasm: true}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "wasm: 5 (long)") {
		t.Errorf("output:\n%s", out.String())
	}
}
