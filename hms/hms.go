// Package hms converts between time.Duration and an hour:minute:second.tenth
// decomposition used for display and for parsing user supplied durations.
package hms

import (
	"strconv"
	"time"
)

// HMS is a duration split into hour, minute, second and tenth of a second.
// Values produced by FromDuration and Parse always satisfy
// Minute < 60, Second < 60 and Tenth < 10.
type HMS struct {
	Hour   uint64
	Minute uint8
	Second uint8
	Tenth  uint8
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * 60
	tenth            = 100 * time.Millisecond
)

// FromDuration truncates d to tenths of a second. Negative input is treated as zero.
func FromDuration(d time.Duration) HMS {
	if d < 0 {
		d = 0
	}
	total := uint64(d / time.Second)
	hour := total / secondsPerHour
	total -= hour * secondsPerHour
	minute := total / secondsPerMinute
	second := total - minute*secondsPerMinute
	return HMS{
		Hour:   hour,
		Minute: uint8(minute),
		Second: uint8(second),
		Tenth:  uint8((d % time.Second) / tenth),
	}
}

// Duration converts h back to a time.Duration. Exact for every HMS returned by
// Parse or FromDuration.
func (h HMS) Duration() time.Duration {
	secs := h.Hour*secondsPerHour + uint64(h.Minute)*secondsPerMinute + uint64(h.Second)
	return time.Duration(secs)*time.Second + time.Duration(h.Tenth)*tenth
}

// IsZero reports whether every field is zero
func (h HMS) IsZero() bool {
	return h == HMS{}
}

// AppendFormat appends the "H:MM:SS.T" form of h to dst
func (h HMS) AppendFormat(dst []byte) []byte {
	dst = strconv.AppendUint(dst, h.Hour, 10)
	dst = append(dst, ':')
	dst = appendTwoDigits(dst, h.Minute)
	dst = append(dst, ':')
	dst = appendTwoDigits(dst, h.Second)
	dst = append(dst, '.')
	return append(dst, '0'+h.Tenth%10)
}

// String formats h as "H:MM:SS.T", hour unpadded
func (h HMS) String() string {
	var buf [32]byte
	return string(h.AppendFormat(buf[:0]))
}

func appendTwoDigits(dst []byte, v uint8) []byte {
	if v >= 100 {
		return strconv.AppendUint(dst, uint64(v), 10)
	}
	return append(dst, '0'+v/10, '0'+v%10)
}
