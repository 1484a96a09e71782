package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = Table{
	"descriptor": nil,
	"timezone":   "default",
	"format":     "R",
	"list":       true,
}

func TestExtractDefaults(t *testing.T) {
	values := Extract(nil, testTable)

	assert.False(t, values.Has("descriptor"))
	tz, err := values.String("timezone")
	require.NoError(t, err)
	assert.Equal(t, "default", tz)
	list, err := values.Bool("list")
	require.NoError(t, err)
	assert.True(t, list)

	_, err = values.String("descriptor")
	assert.ErrorIs(t, err, ErrOptionMissing)
}

func TestExtractDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		want    string
	}{
		{"nil then value", []Option{{"format", nil}, {"format", "T"}}, "T"},
		{"value then nil", []Option{{"format", "T"}, {"format", nil}}, "T"},
		{"later wins", []Option{{"format", "d"}, {"format", "F"}}, "F"},
		{"only nil keeps default", []Option{{"format", nil}}, "R"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.options, testTable).String("format")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractIgnoresUnknown(t *testing.T) {
	values := Extract([]Option{{"colour", "red"}, {"descriptor", "6pm"}}, testTable)

	assert.False(t, values.Has("colour"))
	got, err := values.String("descriptor")
	require.NoError(t, err)
	assert.Equal(t, "6pm", got)
}

func TestTypedAccessors(t *testing.T) {
	values := Values{
		"flag":   "false",
		"count":  float64(3),
		"half":   2.5,
		"text":   "12",
		"number": 7,
		"word":   true,
	}

	b, err := values.Bool("flag")
	require.NoError(t, err)
	assert.False(t, b)

	n, err := values.Int("count")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = values.Int("text")
	require.NoError(t, err)
	assert.EqualValues(t, 12, n)

	n, err = values.Int("number")
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	var typeErr *OptionTypeError
	_, err = values.Int("half")
	assert.ErrorAs(t, err, &typeErr)

	_, err = values.String("word")
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "word", typeErr.Name)
	assert.Equal(t, "string", typeErr.Want)

	_, err = values.Bool("text")
	assert.ErrorAs(t, err, &typeErr)
}
