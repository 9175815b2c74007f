// Package codec decodes the external record formats: treasury fractional
// price strings and the comma-separated input rows, one decoder per record
// type.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yanun0323/errors"
)

var ErrBadPrice = errors.New("malformed fractional price")

// ParsePrice decodes treasury fractional notation III-FFS: III integer
// dollars, FF 32nds (00..31), S 256ths within the 32nd (0..7, '+' means 4).
// Value = III + FF/32 + S/256.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || len(s)-dash-1 != 3 {
		return 0, errors.Wrap(ErrBadPrice, s)
	}

	integer, err := strconv.Atoi(s[:dash])
	if err != nil {
		return 0, errors.Wrap(ErrBadPrice, s)
	}

	frac := s[dash+1:]
	d1, err := strconv.Atoi(frac[:2])
	if err != nil || d1 > 31 {
		return 0, errors.Wrap(ErrBadPrice, s)
	}

	var d2 int
	switch {
	case frac[2] == '+':
		d2 = 4
	case frac[2] >= '0' && frac[2] <= '7':
		d2 = int(frac[2] - '0')
	default:
		return 0, errors.Wrap(ErrBadPrice, s)
	}

	return float64(integer) + float64(d1)/32 + float64(d2)/256, nil
}

// FormatPrice encodes a price in fractional notation, always emitting two
// digits for the 32nds and '+' for a 256ths digit of 4. The input is assumed
// representable on the 1/256 grid.
func FormatPrice(p float64) string {
	integer := int(math.Floor(p))
	ticks := int(math.Round((p - float64(integer)) * 256))
	if ticks == 256 {
		integer++
		ticks = 0
	}
	d1, d2 := ticks/8, ticks%8

	var b strings.Builder
	fmt.Fprintf(&b, "%d-%02d", integer, d1)
	if d2 == 4 {
		b.WriteByte('+')
	} else {
		b.WriteByte(byte('0' + d2))
	}
	return b.String()
}
