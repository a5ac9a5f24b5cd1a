package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Decimal is a money amount. It unmarshals from a JSON number or from a
// numeric string ("1500.50"), which form-driven clients send for amounts.
type Decimal float64

func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := string(data)

	if s == "null" {
		return nil
	}

	s = strings.Trim(s, `"`)

	v, err := strconv.ParseFloat(s, 64)

	if err != nil {
		return fmt.Errorf("invalid decimal %s", string(data))
	}

	*d = Decimal(v)
	return nil
}

func (d Decimal) Float64() float64 {
	return float64(d)
}
