package recipe

import (
	"math"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(key string, value any) *neo4j.Record {
	return &neo4j.Record{Keys: []string{key}, Values: []any{value}}
}

func TestIntField(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{"int64", int64(1800), 1800, false},
		{"int", 42, 42, false},
		{"int32", int32(7), 7, false},
		{"integral float", float64(300), 300, false},
		{"zero", int64(0), 0, false},
		{"fractional float", 1.5, 0, true},
		{"nan", math.NaN(), 0, true},
		{"nil", nil, 0, true},
		{"string", "1800", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := intField(single("n", tt.value), "n")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringField(t *testing.T) {
	got, err := stringField(single("s", "Easy"), "s")
	require.NoError(t, err)
	assert.Equal(t, "Easy", got)

	got, err = stringField(single("s", nil), "s")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = stringField(single("s", int64(1)), "s")
	assert.Error(t, err)

	_, err = stringField(single("s", "x"), "other")
	assert.Error(t, err)
}

func TestStringsField(t *testing.T) {
	got, err := stringsField(single("l", []any{"salt", nil, "pepper"}), "l")
	require.NoError(t, err)
	assert.Equal(t, []string{"salt", "pepper"}, got)

	got, err = stringsField(single("l", nil), "l")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = stringsField(single("l", []string{"a"}), "l")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	_, err = stringsField(single("l", []any{"a", int64(2)}), "l")
	assert.Error(t, err)

	_, err = stringsField(single("l", "salt"), "l")
	assert.Error(t, err)
}

func TestParseIngredientList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"salt,pepper", []string{"salt", "pepper"}},
		{" salt , pepper ", []string{"salt", "pepper"}},
		{"salt,,pepper,", []string{"salt", "pepper"}},
		{"pepper,salt,pepper", []string{"pepper", "salt"}},
		{"Salt,salt", []string{"Salt", "salt"}},
		{"", []string{}},
		{" , ,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseIngredientList(tt.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
