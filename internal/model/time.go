package model

import (
	"fmt"
	"strconv"
	"time"
)

// LocalDate 以 "YYYY-MM-DD" 格式输出日期。
type LocalDate time.Time

const dateFormat = "2006-01-02"

// MarshalJSON implements the json.Marshaler interface.
func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(d).Format(dateFormat))), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", b, err)
	}
	t, err := time.ParseInLocation(dateFormat, s, time.Local)
	if err != nil {
		return err
	}
	*d = LocalDate(t)
	return nil
}

// String 返回格式化后的日期。
func (d LocalDate) String() string {
	return time.Time(d).Format(dateFormat)
}
