package exam

import "testing"

func TestParseModality_AcceptsAllCodes(t *testing.T) {
	codes := []string{"CR", "CT", "DX", "MG", "MR", "NM", "OT", "PT", "RF", "US", "XA"}
	for _, code := range codes {
		m, err := ParseModality(code)
		if err != nil {
			t.Errorf("ParseModality(%q): %v", code, err)
		}
		if string(m) != code {
			t.Errorf("ParseModality(%q) = %q", code, m)
		}
	}
}

func TestParseModality_RejectsUnknown(t *testing.T) {
	for _, code := range []string{"INVALIDA", "ct", "", "CTX", "MRI"} {
		if _, err := ParseModality(code); err == nil {
			t.Errorf("ParseModality(%q): expected error", code)
		} else if !IsValidation(err) {
			t.Errorf("ParseModality(%q): expected ValidationError, got %T", code, err)
		}
	}
}

func TestNormalizeDescription(t *testing.T) {
	strptr := func(s string) *string { return &s }

	cases := []struct {
		in   *string
		want string
	}{
		{nil, ""},
		{strptr(""), ""},
		{strptr("   "), ""},
		{strptr("Tórax PA"), "tórax pa"},
		{strptr("  CRANIO  "), "cranio"},
		{strptr("x"), "x"},
	}
	for _, tc := range cases {
		if got := NormalizeDescription(tc.in); got != tc.want {
			t.Errorf("NormalizeDescription(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
