package normalization

import "testing"

func TestParsePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+91 99001 12233", "919900112233"},
		{"919900112233", "919900112233"},
		{"  +91-99001-12233 ", "919900112233"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ParsePhone(tc.in); got != tc.want {
			t.Fatalf("ParsePhone(%q): expected %q got %q", tc.in, tc.want, got)
		}
	}
}

func TestParseInputString(t *testing.T) {
	if got := ParseInputString("  Asha  "); got != "Asha" {
		t.Fatalf("expected trimmed string got %q", got)
	}
}
