// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"time"
)

// CycleDays は1サイクルの日数です（12週間 × 7日）。
// 開始日と終了日の両方を含むため、終了日は開始日の83日後になります。
const CycleDays = 12 * 7

// Cycle は12週間の計画サイクルを表すモデルです。
type Cycle struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`      // サイクル名
	StartDate Date      `json:"startDate"` // 開始日
	EndDate   Date      `json:"endDate"`   // 終了日（開始日から導出、単独では編集不可）
	CreatedAt time.Time `json:"createdAt"` // 作成日時
}

// NewCycle は新しいCycleインスタンスを作成します。
// IDはデータベース側で自動生成されるため、0のままにします。
// 終了日は開始日から自動的に計算されます。
func NewCycle(name string, startDate Date) (*Cycle, error) {
	c := &Cycle{
		Name:      name,
		StartDate: startDate,
		CreatedAt: time.Now(),
	}
	c.RecomputeEndDate()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCycle は既存のCycleインスタンスを作成します。
func LoadCycle(id int64, name string, startDate, endDate Date, createdAt time.Time) (*Cycle, error) {
	// LoadCycleはDBから読み込んだレコード用なので、IDは必須
	if id <= 0 {
		return nil, errors.New("id is required for loaded cycle")
	}
	c := &Cycle{
		ID:        id,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: createdAt,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// RecomputeEndDate は開始日から終了日を再計算します。
// 開始日を変更した後は必ず呼び出す必要があります。
func (c *Cycle) RecomputeEndDate() {
	c.EndDate = c.StartDate.AddDays(CycleDays - 1)
}

// Contains は指定日がサイクルの期間内（両端を含む）にあるかどうかを返します。
func (c *Cycle) Contains(d Date) bool {
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}

// Validate はサイクルのデータバリデーションを行います。
func (c *Cycle) Validate() error {
	if c.Name == "" {
		return NewValidationError("name is required")
	}
	if c.StartDate.IsZero() {
		return NewValidationError("startDate is required")
	}
	// 終了日は常に開始日の83日後でなければならない
	if !c.EndDate.Equal(c.StartDate.AddDays(CycleDays - 1)) {
		return NewValidationError("endDate must be exactly 83 days after startDate")
	}
	if c.CreatedAt.IsZero() {
		return NewValidationError("createdAt is required")
	}
	return nil
}
