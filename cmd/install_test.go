package cmd

import (
	"testing"

	"github.com/adalundhe/aw/core/harness"
)

func TestResultMark(t *testing.T) {
	cases := []struct {
		result harness.Result
		want   string
	}{
		{harness.Result{Success: true}, "✓"},
		{harness.Result{Success: true, Skipped: true}, "-"},
		{harness.Result{Success: false}, "✗"},
	}

	for _, tc := range cases {
		if got := resultMark(tc.result); got != tc.want {
			t.Errorf("resultMark(%+v) = %q, want %q", tc.result, got, tc.want)
		}
	}
}
