// Package testsupport carries the fixture-loading and diff helpers the
// package tests share.
package testsupport

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// MustReadFixture reads a testdata file, failing the test on error.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// MustDecodeJSON unmarshals a testdata file into out, failing the test on
// error.
func MustDecodeJSON(t *testing.T, path string, out any) {
	t.Helper()

	if err := json.Unmarshal(MustReadFixture(t, path), out); err != nil {
		t.Fatalf("decode fixture %s: %v", path, err)
	}
}

// CompareGolden diffs two values and returns a human-readable report, empty
// when they match.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
