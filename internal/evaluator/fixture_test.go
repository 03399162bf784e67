package evaluator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AAUP4-Projekt/wrench/internal/parser"
	"github.com/AAUP4-Projekt/wrench/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every whole-program `.wrench` fixture under
// testdata/fixtures through the full front end and the evaluator,
// snapshotting stdout with go-snaps. Grounded on the teacher project's
// internal/interp/fixture_test.go, scaled down to Wrench's much smaller
// surface: one flat fixtures directory instead of dozens of categories,
// and a name-based convention (files starting with "e6"/"e7" are the
// two fixtures from spec.md §8 that are expected to fail) instead of a
// per-category table.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("../../testdata/fixtures/*.wrench")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, path := range paths {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".wrench")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			expectFailure := strings.HasPrefix(name, "e6") || strings.HasPrefix(name, "e7")

			program, err := parser.Parse(string(source))
			if err != nil {
				if expectFailure {
					snaps.MatchSnapshot(t, err.Error())
					return
				}
				t.Fatalf("parse error: %v", err)
			}

			if err := semantic.Analyze(program); err != nil {
				if expectFailure {
					snaps.MatchSnapshot(t, err.Error())
					return
				}
				t.Fatalf("type-check error: %v", err)
			}

			var out bytes.Buffer
			runErr := New(&out).Run(program)
			if expectFailure {
				if runErr == nil {
					t.Fatalf("expected a runtime error for %s, got none", name)
				}
				snaps.MatchSnapshot(t, runErr.Error())
				return
			}
			if runErr != nil {
				t.Fatalf("evaluation error: %v", runErr)
			}
			snaps.MatchSnapshot(t, out.String())
		})
	}
}
