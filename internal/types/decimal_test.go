package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`1500.50`, 1500.50},
		{`"1500.50"`, 1500.50},
		{`"0"`, 0},
		{`200`, 200},
	}

	for _, tc := range cases {
		var d Decimal
		require.NoError(t, json.Unmarshal([]byte(tc.in), &d), tc.in)
		assert.Equal(t, tc.want, d.Float64(), tc.in)
	}
}

func TestDecimalRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{`"a lot"`, `""`, `true`, `[1]`} {
		var d Decimal
		assert.Error(t, json.Unmarshal([]byte(in), &d), in)
	}
}
