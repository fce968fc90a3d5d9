package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"both null", Null(), Null(), true},
		{"null vs text", Null(), NewText("x"), false},
		{"int vs int", NewInteger(3), NewInteger(3), true},
		{"int vs float", NewInteger(1), NewFloat(1.0), true},
		{"text vs text", NewText("a"), NewText("a"), true},
		{"text vs int", NewText("1"), NewInteger(1), false},
		{"bool vs bool", NewBoolean(true), NewBoolean(true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equals(tt.b))
		})
	}
}

func TestValueCompare(t *testing.T) {
	c, err := NewInteger(2).Compare(NewFloat(2.5))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = NewText("b").Compare(NewText("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	_, err = NewText("a").Compare(NewInteger(1))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindText, mismatch.Left)
	assert.Equal(t, KindInteger, mismatch.Right)
}

func TestValueJSONRoundTrip(t *testing.T) {
	row := Row{
		"id":     NewInteger(7),
		"score":  NewFloat(1.5),
		"name":   NewText("Alice"),
		"active": NewBoolean(true),
		"note":   Null(),
	}
	data, err := json.Marshal(row)
	require.NoError(t, err)

	var got Row
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, row, got)
}

func TestValueJSONIntegralFloatStaysFloat(t *testing.T) {
	data, err := json.Marshal(NewFloat(100))
	require.NoError(t, err)
	assert.Equal(t, "100.0", string(data))

	var v Value
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, NewFloat(100), v)

	data, err = json.Marshal(NewFloat(1e21))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, NewFloat(1e21), v)
}

func TestValueJSONIntegerStaysInteger(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte("42"), &v))
	assert.Equal(t, NewInteger(42), v)

	require.NoError(t, json.Unmarshal([]byte("42.0"), &v))
	assert.Equal(t, NewFloat(42), v)
}

func TestRowAbsentColumnIsNull(t *testing.T) {
	r := Row{"a": NewInteger(1)}
	assert.True(t, r["missing"].IsNull())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "42", NewInteger(42).String())
	assert.Equal(t, "1.5", NewFloat(1.5).String())
	assert.Equal(t, "hi", NewText("hi").String())
	assert.Equal(t, "true", NewBoolean(true).String())
	assert.Equal(t, "NULL", Null().String())
}
