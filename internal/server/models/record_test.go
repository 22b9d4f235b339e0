package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		isNumber bool
		wantErr  bool
	}{
		{name: "string", input: `"9.99"`, want: "9.99"},
		{name: "string with currency", input: `"$1,299.00"`, want: "$1,299.00"},
		{name: "integer", input: `12`, want: "12", isNumber: true},
		{name: "float", input: `9.99`, want: "9.99", isNumber: true},
		{name: "negative exponent", input: `-1.5e2`, want: "-1.5e2", isNumber: true},
		{name: "bool", input: `true`, wantErr: true},
		{name: "object", input: `{"amount":1}`, wantErr: true},
		{name: "array", input: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
			assert.Equal(t, tt.isNumber, p.IsNumber())
		})
	}
}

func TestExtractedRecord_JSON(t *testing.T) {
	t.Run("absent fields encode as null", func(t *testing.T) {
		name := "Gadget"
		b, err := json.Marshal(ExtractedRecord{Name: &name})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Gadget","price":null,"description":null}`, string(b))
	})

	t.Run("price keeps its json type", func(t *testing.T) {
		var r ExtractedRecord
		require.NoError(t, json.Unmarshal([]byte(`{"price":12.5}`), &r))
		require.NotNil(t, r.Price)

		b, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":null,"price":12.5,"description":null}`, string(b))
	})

	t.Run("null price stays nil", func(t *testing.T) {
		var r ExtractedRecord
		require.NoError(t, json.Unmarshal([]byte(`{"price":null}`), &r))
		assert.Nil(t, r.Price)
	})
}

func TestPriceConstructors(t *testing.T) {
	assert.Equal(t, "9.99", StringPrice("9.99").String())
	assert.False(t, StringPrice("9.99").IsNumber())
	assert.Equal(t, "42", NumberPrice(json.Number("42")).String())
	assert.True(t, NumberPrice(json.Number("42")).IsNumber())
}
