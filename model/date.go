// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"fmt"
	"time"
)

// dateLayout は日付のシリアライズ形式です（日単位の粒度）。
const dateLayout = "2006-01-02"

// Date は日単位の粒度を持つカレンダー日付の値オブジェクトです。
// JSONでは "YYYY-MM-DD" 形式でシリアライズされます。
type Date struct {
	value time.Time
}

// NewDate は "YYYY-MM-DD" 形式の文字列からDateを作成します。
func NewDate(s string) (Date, error) {
	if s == "" {
		return Date{}, fmt.Errorf("date is required")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date format. Use YYYY-MM-DD")
	}
	return Date{value: t}, nil
}

// DateOf は時刻を日単位に切り捨ててDateを作成します。
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{value: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Time は日付の開始時刻（00:00:00 UTC）を返します。
func (d Date) Time() time.Time {
	return d.value
}

// IsZero は日付が未設定かどうかを返します。
func (d Date) IsZero() bool {
	return d.value.IsZero()
}

// AddDays は指定日数後の日付を返します。
func (d Date) AddDays(days int) Date {
	return Date{value: d.value.AddDate(0, 0, days)}
}

// Before は d が other より前かどうかを返します。
func (d Date) Before(other Date) bool {
	return d.value.Before(other.value)
}

// After は d が other より後かどうかを返します。
func (d Date) After(other Date) bool {
	return d.value.After(other.value)
}

// Equal は2つの日付が同じ日かどうかを返します。
func (d Date) Equal(other Date) bool {
	return d.value.Equal(other.value)
}

// String は "YYYY-MM-DD" 形式の文字列を返します。
func (d Date) String() string {
	if d.value.IsZero() {
		return ""
	}
	return d.value.Format(dateLayout)
}

// MarshalJSON はDateをJSON文字列にエンコードします。
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON はJSON文字列からDateをデコードします。
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date format. Use YYYY-MM-DD")
	}
	parsed, err := NewDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
