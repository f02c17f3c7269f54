package hms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Separator splits hour, minute and second fields
const Separator = ":"

// maxFields is hour:minute:second
const maxFields = 3

// maxSeconds keeps a parsed value, plus a tenth, representable as a time.Duration
const maxSeconds = uint64(math.MaxInt64/int64(time.Second)) - 1

// Kind classifies a ParseError
type Kind uint8

const (
	NonNumeric Kind = iota + 1
	TooManyFields
	OutOfRange
)

func (k Kind) String() string {
	switch k {
	case NonNumeric:
		return "non-numeric"
	case TooManyFields:
		return "too many fields"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// Sentinels matched by ParseError.Is
var (
	ErrNonNumeric    = errors.New("non-numeric field")
	ErrTooManyFields = errors.New("too many fields")
	ErrOutOfRange    = errors.New("field out of range")
)

// ParseError describes why a duration string was rejected.
// Field and Value identify the offending field; Fields is the field count.
type ParseError struct {
	Kind   Kind
	Input  string
	Field  string
	Value  string
	Fields int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NonNumeric:
		return fmt.Sprintf("non-numeric %s %q in %q", e.Field, e.Value, e.Input)
	case TooManyFields:
		return fmt.Sprintf("%q has %d fields, want [[hour:]minute:]second", e.Input, e.Fields)
	case OutOfRange:
		if e.Field == "hour" {
			return fmt.Sprintf("hour %s in %q is too large", e.Value, e.Input)
		}
		return fmt.Sprintf("%s %s in %q must be < 60", e.Field, e.Value, e.Input)
	default:
		return fmt.Sprintf("invalid duration %q", e.Input)
	}
}

// Is maps each Kind onto its sentinel
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrNonNumeric:
		return e.Kind == NonNumeric
	case ErrTooManyFields:
		return e.Kind == TooManyFields
	case ErrOutOfRange:
		return e.Kind == OutOfRange
	}
	return false
}

// fieldNames is indexed right to left: a bare number is seconds
var fieldNames = [maxFields]string{"second", "minute", "hour"}

// Parse reads "[[hour:]minute:]second". Tenth is always zero.
func Parse(text string) (HMS, error) {
	parts := strings.Split(text, Separator)

	var values [maxFields]uint64
	for i := range parts {
		// Walk right to left so index 0 is always seconds
		idx := len(parts) - 1 - i
		raw := parts[idx]
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			name := "field"
			if i < maxFields {
				name = fieldNames[i]
			}
			return HMS{}, &ParseError{Kind: NonNumeric, Input: text, Field: name, Value: raw, Fields: len(parts)}
		}
		if i < maxFields {
			values[i] = v
		}
	}

	if len(parts) > maxFields {
		return HMS{}, &ParseError{Kind: TooManyFields, Input: text, Fields: len(parts)}
	}

	sec, minute, hour := values[0], values[1], values[2]
	if minute >= secondsPerMinute {
		return HMS{}, outOfRange(text, "minute", minute, len(parts))
	}
	if sec >= secondsPerMinute {
		return HMS{}, outOfRange(text, "second", sec, len(parts))
	}
	if hour > maxSeconds/secondsPerHour || hour*secondsPerHour+minute*secondsPerMinute+sec > maxSeconds {
		return HMS{}, outOfRange(text, "hour", hour, len(parts))
	}

	return HMS{Hour: hour, Minute: uint8(minute), Second: uint8(sec)}, nil
}

func outOfRange(text, field string, v uint64, fields int) *ParseError {
	return &ParseError{
		Kind:   OutOfRange,
		Input:  text,
		Field:  field,
		Value:  strconv.FormatUint(v, 10),
		Fields: fields,
	}
}
