package models

import "testing"

func TestNormalizeProductStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "active", want: ProductStatusActive},
		{input: " Inactive ", want: ProductStatusInactive},
		{input: "DISCONTINUED", want: ProductStatusDiscontinued},
		{input: "retired", want: ProductStatusActive},
		{input: "", want: ProductStatusActive},
	}

	for _, tc := range tests {
		if got := NormalizeProductStatus(tc.input); got != tc.want {
			t.Fatalf("NormalizeProductStatus(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
