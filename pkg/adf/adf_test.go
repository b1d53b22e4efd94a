package adf_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-deskforms/pkg/adf"
)

func TestNewDocument(t *testing.T) {
	data, err := json.Marshal(adf.NewDocument("the printer is on fire"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"version":1,"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"the printer is on fire"}]}]}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("document (-want +got):\n%s", diff)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		data string
		want bool
	}{
		{"empty document", `{"version":1,"type":"doc","content":[]}`, true},
		{"paragraph document", `{"type":"doc","content":[{"type":"paragraph"}]}`, true},
		{"wrong type", `{"type":"paragraph","content":[]}`, false},
		{"content not an array", `{"type":"doc","content":{"type":"paragraph"}}`, false},
		{"plain text", `hello`, false},
		{"empty input", ``, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := adf.Valid([]byte(tc.data)); got != tc.want {
				t.Errorf("Valid(%s) = %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}

func TestValid_RoundTrip(t *testing.T) {
	data, err := json.Marshal(adf.NewDocument("hello"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !adf.Valid(data) {
		t.Errorf("generated document rejected: %s", data)
	}
}
