package utils

import "testing"

func TestNormalizeAddress(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  台北市　信義區   市府路1號 ", "台北市 信義區 市府路1號"},
		{"plain address", "plain address"},
		{"　　", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeAddress(c.in); got != c.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatNTD(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "NT$0"},
		{95, "NT$95"},
		{1250, "NT$1,250"},
		{-54, "-NT$54"},
	}
	for _, c := range cases {
		if got := FormatNTD(c.in); got != c.want {
			t.Errorf("FormatNTD(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
