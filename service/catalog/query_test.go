package catalog

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Class
	}{
		{"8690123456789", ClassExactCode}, // all digits
		{"42", ClassExactCode},
		{"TSHIRT-XL-BLK", ClassExactCode}, // longer than 8
		{"tişört", ClassFreeText},
		{"mug", ClassFreeText},
		{"  mug  ", ClassFreeText},
		{"", ClassFreeText},
		{"12a", ClassFreeText}, // mixed, short
	}
	for _, tt := range tests {
		if got := Classify(tt.raw); got.Class != tt.want {
			t.Errorf("Classify(%q).Class = %v, want %v", tt.raw, got.Class, tt.want)
		}
	}
}

func TestClassify_Trims(t *testing.T) {
	q := Classify("  8690123456789  ")
	if q.Raw != "8690123456789" || q.Class != ClassExactCode {
		t.Errorf("Classify trimmed = %+v", q)
	}
}
