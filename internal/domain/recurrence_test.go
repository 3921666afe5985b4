package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	type args struct {
		base time.Time
		ref  time.Time
	}
	tests := []struct {
		name string
		args args
		want time.Time
	}{
		{
			name: "Should stay in the current year when the date has not passed",
			args: args{base: date(1990, time.June, 15), ref: date(2026, time.March, 1)},
			want: date(2026, time.June, 15),
		},
		{
			name: "Should roll to next year when the date already passed",
			args: args{base: date(1990, time.January, 10), ref: date(2026, time.March, 1)},
			want: date(2027, time.January, 10),
		},
		{
			name: "Should return today when the occurrence is today",
			args: args{base: date(1990, time.March, 1), ref: date(2026, time.March, 1)},
			want: date(2026, time.March, 1),
		},
		{
			name: "Should resolve Feb 29 to Feb 28 in a non-leap year",
			args: args{base: date(1992, time.February, 29), ref: date(2026, time.January, 15)},
			want: date(2026, time.February, 28),
		},
		{
			name: "Should keep Feb 29 in a leap year",
			args: args{base: date(1992, time.February, 29), ref: date(2028, time.January, 15)},
			want: date(2028, time.February, 29),
		},
		{
			name: "Should roll a passed Feb 29 to Feb 28 of the next non-leap year",
			args: args{base: date(1992, time.February, 29), ref: date(2026, time.March, 10)},
			want: date(2027, time.February, 28),
		},
		{
			name: "Should ignore the time of day on the reference",
			args: args{base: date(1990, time.March, 1), ref: time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)},
			want: date(2026, time.March, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.args.base, tt.args.ref)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysUntil(t *testing.T) {
	type args struct {
		base time.Time
		ref  time.Time
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{
			name: "Should return zero on the day itself",
			args: args{base: date(1990, time.March, 1), ref: date(2026, time.March, 1)},
			want: 0,
		},
		{
			name: "Should return one the day before",
			args: args{base: date(1990, time.March, 1), ref: date(2026, time.February, 28)},
			want: 1,
		},
		{
			name: "Should count across a month boundary",
			args: args{base: date(1990, time.March, 4), ref: date(2026, time.February, 26)},
			want: 6,
		},
		{
			name: "Should count across a year boundary",
			args: args{base: date(1990, time.January, 2), ref: date(2026, time.December, 31)},
			want: 2,
		},
		{
			name: "Should count a full year minus one day after the date passed",
			args: args{base: date(1990, time.March, 1), ref: date(2026, time.March, 2)},
			want: 364,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntil(tt.args.base, tt.args.ref)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentAge(t *testing.T) {
	// Intentionally plain year subtraction regardless of whether the birthday
	// already happened this year; reminder text adds one for the age turned.
	assert.Equal(t, 36, CurrentAge(date(1990, time.June, 15), date(2026, time.March, 1)))
	assert.Equal(t, 36, CurrentAge(date(1990, time.January, 1), date(2026, time.December, 31)))
	assert.Equal(t, 0, CurrentAge(date(2026, time.June, 15), date(2026, time.March, 1)))
}
