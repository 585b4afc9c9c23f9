package model

import "testing"

func TestResolution_HasTarget(t *testing.T) {
	cases := []struct {
		status ResolutionStatus
		want   bool
	}{
		{ResolvedFull, true},
		{ResolvedHint, true},
		{Unresolved, false},
		{Undecodable, false},
	}

	for _, tc := range cases {
		r := Resolution{Status: tc.status, Target: "/some/where"}
		if got := r.HasTarget(); got != tc.want {
			t.Errorf("Resolution{%s}.HasTarget() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestLabelCode_String(t *testing.T) {
	cases := map[LabelCode]string{
		LabelNone:     "none",
		LabelGray:     "gray",
		LabelRed:      "red",
		LabelOrange:   "orange",
		LabelCode(99): "unknown",
	}

	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("LabelCode(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestLabelCode_Values(t *testing.T) {
	// The numeric values are the Finder label ordinals and must not drift.
	ordered := []LabelCode{
		LabelNone, LabelGray, LabelGreen, LabelPurple,
		LabelBlue, LabelYellow, LabelRed, LabelOrange,
	}

	for i, code := range ordered {
		if int(code) != i {
			t.Fatalf("label %s has value %d, want %d", code, code, i)
		}
	}
}
