package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	type payload struct {
		Fee Amount `json:"fee"`
	}

	cases := []struct {
		name string
		body string
		def  float64
		want float64
	}{
		{"happy: plain number", `{"fee": 15.5}`, 0, 15.5},
		{"happy: quoted decimal string", `{"fee": "50000.00"}`, 0, 50000},
		{"edge: integer string", `{"fee": "16"}`, 0, 16},
		{"edge: missing field falls back", `{}`, 15, 15},
		{"edge: null falls back", `{"fee": null}`, 15, 15},
		{"edge: empty string falls back", `{"fee": ""}`, 15, 15},
		{"bad: garbage string falls back", `{"fee": "abc"}`, 15, 15},
		{"bad: negative value falls back", `{"fee": -3}`, 15, 15},
		{"edge: zero is a real value, not a fallback", `{"fee": 0}`, 15, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.InDelta(t, tc.want, p.Fee.Or(tc.def), 0.001)
		})
	}
}

func TestAmountMarshal(t *testing.T) {
	t.Run("happy: set value serializes as number", func(t *testing.T) {
		b, err := json.Marshal(AmountOf(12.5))
		require.NoError(t, err)
		assert.Equal(t, "12.5", string(b))
	})

	t.Run("edge: unset value serializes as null", func(t *testing.T) {
		b, err := json.Marshal(Amount{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))
	})
}
