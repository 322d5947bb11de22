package invoice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
)

func TestAddFrequency(t *testing.T) {
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		date      time.Time
		frequency invoice.Frequency
		want      time.Time
		wantErr   bool
	}

	tests := []testCase{
		{
			name:      "Daily",
			date:      base,
			frequency: invoice.FrequencyDaily,
			want:      time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "Weekly",
			date:      base,
			frequency: invoice.FrequencyWeekly,
			want:      time.Date(2025, 6, 17, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "Biweekly",
			date:      base,
			frequency: invoice.FrequencyBiweekly,
			want:      time.Date(2025, 6, 24, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "Monthly",
			date:      base,
			frequency: invoice.FrequencyMonthly,
			want:      time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			// Jan 31 + 1 month overflows past February and lands on
			// March 3 in a non-leap year. Pinned so a calendar library
			// swap cannot silently clamp to Feb 28.
			name:      "MonthlyOverflowJan31",
			date:      time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			frequency: invoice.FrequencyMonthly,
			want:      time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "UnknownFrequency",
			date:      base,
			frequency: invoice.Frequency("quarterly"),
			wantErr:   true,
		},
		{
			name:      "EmptyFrequency",
			date:      base,
			frequency: invoice.Frequency(""),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoice.AddFrequency(tt.date, tt.frequency)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, invoice.ErrInvalidFrequency)

				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name string
		next time.Time
		want int
	}

	tests := []testCase{
		{name: "SameInstant", next: now, want: 0},
		{name: "OneDayAhead", next: now.AddDate(0, 0, 1), want: 1},
		{name: "OneDayBehind", next: now.AddDate(0, 0, -1), want: -1},
		{
			// A partial day in the future counts as a full day.
			name: "HalfDayAheadRoundsUp",
			next: now.Add(12 * time.Hour),
			want: 1,
		},
		{
			name: "OneMillisecondAheadRoundsUp",
			next: now.Add(time.Millisecond),
			want: 1,
		},
		{
			// Rounding is toward positive infinity, so a partial day in
			// the past truncates instead of counting as a full day.
			name: "HalfDayBehindRoundsTowardZero",
			next: now.Add(-12 * time.Hour),
			want: 0,
		},
		{name: "TenDaysAhead", next: now.AddDate(0, 0, 10), want: 10},
		{name: "NinetyDaysBehind", next: now.AddDate(0, 0, -90), want: -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.DaysRemaining(tt.next, now))
		})
	}
}
