package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ic10min/pkg/utils"
)

const airlockOutput = `alias sensor d0
alias pump d1
l r0 d0 Pressure
brlt r0 101.325 3
s d1 On 0
j 2
s d1 On 1
sb 797794350 On 1
yield
j 2`

// copyTestdata copies a testdata file into a temp dir so output files land
// there.
func copyTestdata(t *testing.T, name string) string {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read testdata: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n")
}

func TestMinifyFile(t *testing.T) {
	path := copyTestdata(t, "airlock.ic10")
	var out bytes.Buffer

	noisy, err := minify(&out, path, &options{})
	if err != nil {
		t.Fatalf("minify failed: %v\n%s", err, out.String())
	}
	if noisy {
		t.Errorf("expected no diagnostics, got:\n%s", out.String())
	}

	if got := readOutput(t, filepath.Join(filepath.Dir(path), "airlock.min.ic10")); got != airlockOutput {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, airlockOutput)
	}

	report := out.String()
	for _, want := range []string{"Assembled airlock.ic10 => airlock.min.ic10", "3 sections totalling 10 lines"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestMinifyOptions(t *testing.T) {
	t.Run("Sections", func(t *testing.T) {
		path := copyTestdata(t, "airlock.ic10")
		outPath := filepath.Join(t.TempDir(), "io.txt")
		var out bytes.Buffer

		o := &options{out: outPath}
		o.IncludeSections = []string{"io"}
		if _, err := minify(&out, path, o); err != nil {
			t.Fatalf("minify failed: %v\n%s", err, out.String())
		}
		if got := readOutput(t, outPath); got != "alias sensor d0\nalias pump d1" {
			t.Errorf("unexpected output %q", got)
		}
		if !strings.Contains(out.String(), "1 sections totalling 2 lines") {
			t.Errorf("unexpected report:\n%s", out.String())
		}
	})

	t.Run("MissingDefaults", func(t *testing.T) {
		path := copyTestdata(t, "airlock.ic10")
		var out bytes.Buffer

		o := &options{}
		o.IncludeSections = []string{"control"}
		_, err := minify(&out, path, o)
		if !errors.Is(err, errFailed) {
			t.Fatalf("expected assembly failure, got %v", err)
		}
		if !strings.Contains(out.String(), "Error: PUMP_OFF not defined in included section at line 14") {
			t.Errorf("unexpected report:\n%s", out.String())
		}
	})

	t.Run("KeepMacrosAndComments", func(t *testing.T) {
		path := copyTestdata(t, "airlock.ic10")
		var out bytes.Buffer

		o := &options{extLen: 5}
		o.KeepMacros = true
		o.IncludeComments = true
		if _, err := minify(&out, path, o); err != nil {
			t.Fatalf("minify failed: %v", err)
		}
		got := readOutput(t, filepath.Join(filepath.Dir(path), "airlock.min.ic10"))
		if !strings.Contains(got, `sb HASH("StructureLightLong") On 1`) {
			t.Errorf("macro should be kept:\n%s", got)
		}
		if !strings.Contains(got, "brlt r0 101.325 3 # top up") {
			t.Errorf("comment should be kept:\n%s", got)
		}
	})

	t.Run("Dump", func(t *testing.T) {
		path := copyTestdata(t, "airlock.ic10")
		var out bytes.Buffer

		if _, err := minify(&out, path, &options{dump: true}); err != nil {
			t.Fatalf("minify failed: %v", err)
		}
		for _, want := range []string{`"control"`, `"label +4"`, `"d1"`} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("dump missing %s:\n%s", want, out.String())
			}
		}
	})

	t.Run("Catalog", func(t *testing.T) {
		path := copyTestdata(t, "unknown.ic10")
		catalog := filepath.Join(t.TempDir(), "isa.json")
		if err := os.WriteFile(catalog, []byte(`{"frob": ["R"]}`), 0o644); err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer

		if _, err := minify(&out, path, &options{isaPath: catalog}); err != nil {
			t.Fatalf("minify failed: %v\n%s", err, out.String())
		}
		if got := readOutput(t, filepath.Join(filepath.Dir(path), "unknown.min.ic10")); got != "move r0 1\nfrob r0" {
			t.Errorf("unexpected output %q", got)
		}
	})
}

func TestMinifyFailures(t *testing.T) {
	t.Run("Parse", func(t *testing.T) {
		path := copyTestdata(t, "broken.ic10")
		var out bytes.Buffer

		noisy, err := minify(&out, path, &options{})
		if !errors.Is(err, errFailed) || !noisy {
			t.Fatalf("expected a noisy failure, got %v", err)
		}
		report := out.String()
		if !strings.Contains(report, "Failed to parse file") ||
			!strings.Contains(report, "Error: Unrecognized formatting or syntax error at line 1") {
			t.Errorf("unexpected report:\n%s", report)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(path), "broken.min.ic10")); !os.IsNotExist(err) {
			t.Errorf("no output should be written on failure")
		}
	})

	t.Run("Assemble", func(t *testing.T) {
		path := copyTestdata(t, "unknown.ic10")
		var out bytes.Buffer

		_, err := minify(&out, path, &options{})
		if !errors.Is(err, errFailed) {
			t.Fatalf("expected failure, got %v", err)
		}
		if !strings.Contains(out.String(), "Error: Unrecognized mnemonic frob at line 1") {
			t.Errorf("unexpected report:\n%s", out.String())
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		var out bytes.Buffer
		_, err := minify(&out, filepath.Join(t.TempDir(), "nope.ic10"), &options{})
		if err == nil || errors.Is(err, errFailed) {
			t.Errorf("expected an I/O error, got %v", err)
		}
	})
}

func TestRootCommand(t *testing.T) {
	path := copyTestdata(t, "airlock.ic10")
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-pause", "-s", "io", "-o", filepath.Join(t.TempDir(), "x.ic10"), path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "=> x.ic10") {
		t.Errorf("unexpected report:\n%s", out.String())
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"NoArgs", []string{}, utils.ExitUsage},
		{"ExtraArgs", []string{"--no-pause", path, path}, utils.ExitUsage},
		{"UnknownFlag", []string{"--no-pause", "--frob", path}, utils.ExitUsage},
		{"BadFlagValue", []string{"--no-pause", "--ext-len", "x", path}, utils.ExitUsage},
		{"MissingFile", []string{"--no-pause", filepath.Join(t.TempDir(), "nope.ic10")}, utils.ExitFailure},
		{"AssembleFailure", []string{"--no-pause", copyTestdata(t, "unknown.ic10")}, utils.ExitFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tc.args)
			if got := utils.ExitCode(cmd.Execute()); got != tc.want {
				t.Errorf("exit code for %v: expected %d, got %d\n%s", tc.args, tc.want, got, out.String())
			}
		})
	}
}
