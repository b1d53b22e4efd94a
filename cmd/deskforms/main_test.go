package main

import "testing"

func TestCheckCommand(t *testing.T) {
	cases := []struct {
		name    string
		cmd     string
		field   string
		wantErr bool
	}{
		{"fields", "fields", "", false},
		{"fill", "fill", "", false},
		{"submit", "submit", "", false},
		{"values with field", "values", "priority", false},
		{"values without field", "values", "", true},
		{"unknown command", "nope", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkCommand(tc.cmd, tc.field)
			if (err != nil) != tc.wantErr {
				t.Errorf("checkCommand(%q, %q) = %v, wantErr %v", tc.cmd, tc.field, err, tc.wantErr)
			}
		})
	}
}
