package util

import (
	"errors"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"resume.pdf", "resume.pdf", false},
		{"my resume.pdf", "my resume.pdf", false},
		{"dir/resume.pdf", "dir_resume.pdf", false},
		{`dir\resume.pdf`, "dir_resume.pdf", false},
		{"resume\x00.pdf", "resume.pdf", false},
		{"resume\r\n.pdf", "resume.pdf", false},
		{"../../etc/passwd", "", true},
		{"..", "", true},
		{"", "", true},
		{"\x01\x02", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Errorf("SanitizeFileName(%q): expected ErrInvalidFileName, got %v (%q)", tc.in, err, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeFileName(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
