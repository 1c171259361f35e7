package dates_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/seqtrace/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopDate(t *testing.T) {
	cases := []struct {
		in   string
		days int
		want string
	}{
		{"2020-03-15", 40, "2020-02-04"},
		{"2020", 30, "2019-12-02"},
		{"2020-03", 1, "2020-02-29"},
		{"2021-03-01", 1, "2021-02-28"},
		{" 2020-01-10 ", 0, "2020-01-10"},
		{"2020-01-10", -5, "2020-01-15"},
	}
	for _, tc := range cases {
		got, err := dates.StopDate(tc.in, tc.days)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, "%q - %d days", tc.in, tc.days)
	}
}

func TestCanonical(t *testing.T) {
	got, err := dates.Canonical("2020")
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", got)

	got, err = dates.Canonical("2020-7")
	require.NoError(t, err)
	assert.Equal(t, "2020-07-01", got)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		in    string
		field string
	}{
		{"", "format"},
		{"2020-01-01-01", "format"},
		{"20x0", "year"},
		{"2020-13", "month"},
		{"2020-ab-01", "month"},
		{"2021-02-29", "day"},
		{"2020-04-31", "day"},
		{"2020-04-", "day"},
	}
	for _, tc := range cases {
		_, err := dates.Parse(tc.in)
		require.Error(t, err, tc.in)

		var pe *dates.ParseError
		require.True(t, errors.As(err, &pe), "%q: want *ParseError, got %T", tc.in, err)
		assert.Equal(t, tc.field, pe.Field, tc.in)
		assert.ErrorIs(t, err, dates.ErrMalformedDate)
	}
}

func TestParse_LeapDay(t *testing.T) {
	d, err := dates.Parse("2020-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())
}
