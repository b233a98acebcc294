package main

import (
	"flag"
	"io"
	"testing"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("verto", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseArgs(t *testing.T) {
	t.Run("path followed by flags", func(t *testing.T) {
		opts, pdfPath, err := parseArgs(newTestFlagSet(), []string{
			"sample.pdf", "-o", "/tmp/out.json", "-m", "pdfcpu", "-no-pretty", "-v",
		})
		if err != nil {
			t.Fatalf("parseArgs failed: %v", err)
		}
		if pdfPath != "sample.pdf" {
			t.Errorf("pdfPath = %q, want sample.pdf", pdfPath)
		}
		if opts.outputPath != "/tmp/out.json" {
			t.Errorf("outputPath = %q, want /tmp/out.json", opts.outputPath)
		}
		if opts.method != "pdfcpu" {
			t.Errorf("method = %q, want pdfcpu", opts.method)
		}
		if !opts.noPretty {
			t.Error("noPretty = false, want true")
		}
		if !opts.verbose {
			t.Error("verbose = false, want true")
		}
	})

	t.Run("flags before the path", func(t *testing.T) {
		opts, pdfPath, err := parseArgs(newTestFlagSet(), []string{"-m", "auto", "sample.pdf"})
		if err != nil {
			t.Fatalf("parseArgs failed: %v", err)
		}
		if pdfPath != "sample.pdf" {
			t.Errorf("pdfPath = %q, want sample.pdf", pdfPath)
		}
		if opts.method != "auto" {
			t.Errorf("method = %q, want auto", opts.method)
		}
	})

	t.Run("serve mode without a path", func(t *testing.T) {
		opts, pdfPath, err := parseArgs(newTestFlagSet(), []string{"-serve", "-p", "9090", "-host", "0.0.0.0"})
		if err != nil {
			t.Fatalf("parseArgs failed: %v", err)
		}
		if pdfPath != "" {
			t.Errorf("pdfPath = %q, want empty", pdfPath)
		}
		if !opts.serveMode {
			t.Error("serveMode = false, want true")
		}
		if opts.port != 9090 {
			t.Errorf("port = %d, want 9090", opts.port)
		}
		if opts.host != "0.0.0.0" {
			t.Errorf("host = %q, want 0.0.0.0", opts.host)
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		opts, pdfPath, err := parseArgs(newTestFlagSet(), nil)
		if err != nil {
			t.Fatalf("parseArgs failed: %v", err)
		}
		if pdfPath != "" || opts.serveMode {
			t.Errorf("Expected empty parse, got path %q serve %v", pdfPath, opts.serveMode)
		}
	})

	t.Run("second positional argument rejected", func(t *testing.T) {
		if _, _, err := parseArgs(newTestFlagSet(), []string{"a.pdf", "b.pdf"}); err == nil {
			t.Error("Expected error for extra positional argument")
		}
	})

	t.Run("trailing positional after flags rejected", func(t *testing.T) {
		if _, _, err := parseArgs(newTestFlagSet(), []string{"a.pdf", "-o", "x.json", "extra"}); err == nil {
			t.Error("Expected error for trailing positional argument")
		}
	})

	t.Run("unknown flag rejected", func(t *testing.T) {
		if _, _, err := parseArgs(newTestFlagSet(), []string{"a.pdf", "-bogus"}); err == nil {
			t.Error("Expected error for unknown flag")
		}
	})
}
