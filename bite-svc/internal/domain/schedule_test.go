package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklySchedule_WithKeepsAllDays(t *testing.T) {
	for d := Monday; d <= Sunday; d++ {
		t.Run(d.String(), func(t *testing.T) {
			s := DefaultSchedule().With(d, DayHours{Start: "10:00", End: "22:00", Closed: true})

			raw, err := json.Marshal(s)
			require.NoError(t, err)

			var days map[string]DayHours
			require.NoError(t, json.Unmarshal(raw, &days))
			assert.Len(t, days, 7)
			for _, name := range weekdayNames {
				assert.Contains(t, days, name)
			}
			assert.True(t, days[d.String()].Closed)
			assert.Equal(t, "10:00", days[d.String()].Start, "closed day keeps its times")
		})
	}
}

func TestWeeklySchedule_UnmarshalFillsMissingDays(t *testing.T) {
	var s WeeklySchedule
	require.NoError(t, json.Unmarshal([]byte(`{"friday":{"start":"12:00","end":"23:00","closed":false}}`), &s))

	assert.Equal(t, DayHours{Start: "12:00", End: "23:00"}, s.Day(Friday))
	assert.Equal(t, DefaultDayHours, s.Day(Monday))
	assert.Equal(t, DefaultDayHours, s.Day(Sunday))
}

func TestWeeklySchedule_UnmarshalUnknownDay(t *testing.T) {
	var s WeeklySchedule
	err := json.Unmarshal([]byte(`{"funday":{"start":"12:00","end":"23:00"}}`), &s)
	assert.Error(t, err)
}

func TestWeeklySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hours   DayHours
		wantErr bool
	}{
		{name: "regular", hours: DayHours{Start: "08:30", End: "17:00"}},
		{name: "cross midnight", hours: DayHours{Start: "18:00", End: "02:00"}, wantErr: true},
		{name: "equal times", hours: DayHours{Start: "12:00", End: "12:00"}, wantErr: true},
		{name: "bad format", hours: DayHours{Start: "9am", End: "17:00"}, wantErr: true},
		{name: "closed with bad times", hours: DayHours{Start: "", End: "", Closed: true}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := DefaultSchedule().With(Wednesday, testCase.hours).Validate()
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeeklySchedule_ScanValue(t *testing.T) {
	s := DefaultSchedule().With(Sunday, DayHours{Start: "09:00", End: "17:00", Closed: true})
	v, err := s.Value()
	require.NoError(t, err)

	var scanned WeeklySchedule
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, s, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, DefaultSchedule(), scanned)
}
