package helpers

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := map[string]struct {
		in  string
		out string
	}{
		"already normalized":  {in: "stepwise", out: "stepwise"},
		"upper cased":          {in: "STEPWISE", out: "stepwise"},
		"traversal attempt":    {in: "../../etc/passwd", out: "etcpasswd"},
		"mixed separators":     {in: "Linear-V2.beta", out: "linear-v2beta"},
		"empty string":         {in: "", out: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := NormalizeName(tc.in); got != tc.out {
				t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestInt32Value(t *testing.T) {
	var p *int32
	if got := Int32Value(p, 7); got != 7 {
		t.Errorf("Int32Value(nil, 7) = %d, want 7", got)
	}
	v := PtrInt32(3)
	if got := Int32Value(v, 7); got != 3 {
		t.Errorf("Int32Value(&3, 7) = %d, want 3", got)
	}
}
