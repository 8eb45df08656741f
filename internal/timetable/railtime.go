package timetable

import (
	"fmt"
	"regexp"
)

const daySeconds = 24 * 60 * 60

var time24Pattern = regexp.MustCompile(`^\d{4}.?$`)

// RailTime is a clock time represented as seconds since 00:00, modulo
// 24 hours. The zero value is midnight.
type RailTime struct {
	secs uint32
}

// NewRailTime builds a RailTime from an hours/minutes pair, wrapping
// at 24 hours.
func NewRailTime(hours, mins uint32) RailTime {
	return RailTime{secs: (hours*3600 + mins*60) % daySeconds}
}

// RailTimeFromSeconds builds a RailTime directly from a seconds-since-
// midnight value, wrapping at 24 hours.
func RailTimeFromSeconds(secs uint32) RailTime {
	return RailTime{secs: secs % daySeconds}
}

// From24h parses a 4-digit 24-hour clock string ("HHMM"), tolerating a
// single trailing character (CIF scheduled times carry a fifth
// half-minute character, as in "1211H"; it is ignored). Returns false
// if timestr isn't of that shape.
func From24h(timestr string) (RailTime, bool) {
	if !time24Pattern.MatchString(timestr) {
		return RailTime{}, false
	}
	hrs := uint32(timestr[0]-'0')*10 + uint32(timestr[1]-'0')
	mins := uint32(timestr[2]-'0')*10 + uint32(timestr[3]-'0')
	return RailTime{secs: hrs*3600 + mins*60}, true
}

// To24h renders the time as 4 digits "HHMM".
func (t RailTime) To24h() string {
	hrs := t.secs / 3600
	mins := (t.secs % 3600) / 60
	return fmt.Sprintf("%02d%02d", hrs, mins)
}

// TimeTil returns the non-negative number of seconds from t until
// other, wrapping to the next day if other is before t (equal times
// give 0).
func (t RailTime) TimeTil(other RailTime) uint32 {
	if t.secs > other.secs {
		return other.secs + daySeconds - t.secs
	}
	return other.secs - t.secs
}

// Add returns t advanced by secs, wrapping at 24 hours.
func (t RailTime) Add(secs uint32) RailTime {
	return RailTime{secs: (t.secs + secs) % daySeconds}
}

// Sub returns t moved back by secs, wrapping to the previous day.
func (t RailTime) Sub(secs uint32) RailTime {
	if secs > t.secs {
		return RailTime{secs: t.secs + daySeconds - secs}
	}
	return RailTime{secs: t.secs - secs}
}

// Seconds returns the raw seconds-since-midnight value.
func (t RailTime) Seconds() uint32 { return t.secs }

func (t RailTime) String() string { return t.To24h() }
