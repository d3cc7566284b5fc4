package normalize_test

import (
	"testing"

	"jobtrail/ingest-service/internal/normalize"
)

func TestParseSalary(t *testing.T) {
	cases := []struct {
		text     string
		min, max int // -1 means nil expected
	}{
		{"100k - 150k", 100000, 150000},
		{"$90,000", 90000, 90000},
		{"n/a", -1, -1},
		{"", -1, -1},
		{"competitive", -1, -1},
		{"120000", 120000, 120000},
		{"€50 - 60k", 50000, 60000},
		{"£30k–40k", 30000, 40000},
		{"90.000", 90000, 90000},
		{"$80,000 - $95,000 per year", 80000, 95000},
		{"1.5k", 1500, 1500},
	}

	for _, c := range cases {
		min, max := normalize.ParseSalary(c.text)
		if c.min == -1 {
			if min != nil || max != nil {
				t.Errorf("ParseSalary(%q) = (%v, %v), want (nil, nil)", c.text, deref(min), deref(max))
			}
			continue
		}
		if min == nil || max == nil {
			t.Errorf("ParseSalary(%q) returned nil, want (%d, %d)", c.text, c.min, c.max)
			continue
		}
		if *min != c.min || *max != c.max {
			t.Errorf("ParseSalary(%q) = (%d, %d), want (%d, %d)", c.text, *min, *max, c.min, c.max)
		}
	}
}

func deref(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
