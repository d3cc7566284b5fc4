package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// salaryToken matches one numeric amount with an optional thousands suffix,
// e.g. "100k", "120,000", "90.000".
var salaryToken = regexp.MustCompile(`(\d[\d,.]*)\s*([kK])?`)

// thousandsDot matches European thousands notation like "90.000".
var thousandsDot = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// ParseSalary extracts an integer salary range from free-form salary text.
//
//	"100k - 150k" → 100000, 150000
//	"$90,000"     → 90000, 90000
//	"n/a"         → nil, nil
//
// A single amount is treated as both bounds. Unparseable text yields two
// nils, never an error.
func ParseSalary(text string) (min, max *int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	matches := salaryToken.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return nil, nil
	}

	lo, loOK := parseAmount(matches[0][1], matches[0][2] != "")
	if !loOK {
		return nil, nil
	}
	if len(matches) == 1 {
		return &lo, &lo
	}

	hi, hiOK := parseAmount(matches[1][1], matches[1][2] != "")
	if !hiOK {
		return &lo, &lo
	}

	// "50 - 60k" style: the suffix on the upper bound applies to both.
	if matches[1][2] != "" && matches[0][2] == "" && lo < 1000 {
		lo *= 1000
	}

	return &lo, &hi
}

func parseAmount(digits string, thousands bool) (int, bool) {
	digits = strings.ReplaceAll(digits, ",", "")
	if thousandsDot.MatchString(digits) {
		digits = strings.ReplaceAll(digits, ".", "")
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(digits, "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	if thousands {
		v *= 1000
	}
	return int(v), true
}
