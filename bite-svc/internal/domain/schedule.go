package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// DayHours holds "HH:MM" 24-hour times. Times of a closed day are kept.
type DayHours struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Closed bool   `json:"closed"`
}

var DefaultDayHours = DayHours{Start: "09:00", End: "17:00", Closed: false}

// WeeklySchedule always holds all seven days; it is indexed by Weekday.
type WeeklySchedule [7]DayHours

func DefaultSchedule() WeeklySchedule {
	var s WeeklySchedule
	for i := range s {
		s[i] = DefaultDayHours
	}
	return s
}

func (s WeeklySchedule) Day(d Weekday) DayHours {
	return s[d]
}

// With returns a copy of s with one day replaced.
func (s WeeklySchedule) With(d Weekday, hours DayHours) WeeklySchedule {
	s[d] = hours
	return s
}

// Validate checks the times of every open day. Ranges crossing midnight
// are rejected.
func (s WeeklySchedule) Validate() error {
	for i, h := range s {
		if h.Closed {
			continue
		}
		start, err := time.Parse("15:04", h.Start)
		if err != nil {
			return fmt.Errorf("%s: invalid opening time %q", Weekday(i), h.Start)
		}
		end, err := time.Parse("15:04", h.End)
		if err != nil {
			return fmt.Errorf("%s: invalid closing time %q", Weekday(i), h.End)
		}
		if !start.Before(end) {
			return fmt.Errorf("%s: opening time %s must be before closing time %s", Weekday(i), h.Start, h.End)
		}
	}
	return nil
}

func (s WeeklySchedule) MarshalJSON() ([]byte, error) {
	days := make(map[string]DayHours, len(s))
	for i, h := range s {
		days[weekdayNames[i]] = h
	}
	return json.Marshal(days)
}

// UnmarshalJSON starts from the default schedule, so days missing from the
// input keep their defaults.
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var days map[string]DayHours
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	schedule := DefaultSchedule()
	for name, hours := range days {
		d, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		schedule[d] = hours
	}
	*s = schedule
	return nil
}

func (s WeeklySchedule) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *WeeklySchedule) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = DefaultSchedule()
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("cannot scan %T into WeeklySchedule", src)
}
