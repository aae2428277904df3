package types

import "strconv"

// siPrefixes are checked top to bottom; the first bound the value reaches wins
var siPrefixes = []struct {
	bound  float64
	suffix string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// FormatValue renders a passive value with an SI prefix and three
// significant digits: 4700 -> "4.7k", 100e-9 -> "100n". Values below the
// smallest prefix are printed raw with the same precision.
func FormatValue(v float64) string {
	for _, p := range siPrefixes {
		if v >= p.bound {
			return strconv.FormatFloat(v/p.bound, 'g', 3, 64) + p.suffix
		}
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}
