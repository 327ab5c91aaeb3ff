package pressure

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Channel is one color component as sent to the service. NaN marks an unparsable input
// and is encoded as JSON null.
type Channel float64

// NaN is the channel produced by malformed hex input.
var NaN = Channel(math.NaN())

// IsNaN reports whether c came from malformed input.
func (c Channel) IsNaN() bool {
	return math.IsNaN(float64(c))
}

func (c Channel) MarshalJSON() ([]byte, error) {
	if c.IsNaN() || math.IsInf(float64(c), 0) {
		return []byte("null"), nil
	}
	return []byte(formatNumber(float64(c))), nil
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = NaN
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*c = Channel(v)
	return nil
}

// RGB is a color as three channels.
type RGB struct {
	R Channel `json:"r"`
	G Channel `json:"g"`
	B Channel `json:"b"`
}

// HexToRGB splits h into three two-character channels after removing the first "#".
// Nothing is validated: each channel is read as a base-16 prefix, and a channel without
// one is NaN.
func HexToRGB(h string) RGB {
	c := []rune(strings.Replace(h, "#", "", 1))
	return RGB{
		R: parseHex(substr(c, 0, 2)),
		G: parseHex(substr(c, 2, 2)),
		B: parseHex(substr(c, 4, 2)),
	}
}

func substr(s []rune, start, length int) string {
	if start >= len(s) {
		return ""
	}
	end := min(start+length, len(s))
	return string(s[start:end])
}

// parseHex reads the longest base-16 prefix of s after optional leading space, a sign
// and a 0x marker.
func parseHex(s string) Channel {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}

	end := strings.IndexFunc(s, func(r rune) bool { return !isHexDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return NaN
	}

	v, err := strconv.ParseUint(s[:end], 16, 64)
	if err != nil {
		return NaN
	}
	if v == 0 {
		return 0
	}
	return Channel(sign * float64(v))
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// formatNumber renders v the way the service's clients print numbers: shortest form,
// exponent only for very large or very small magnitudes.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		expSign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + expSign + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
