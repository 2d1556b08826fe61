// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"time"
)

// Goal はサイクル内の目標を表すモデルです。
type Goal struct {
	ID          int64     `json:"id"`
	CycleID     int64     `json:"cycleId"`     // 所属するサイクルのID
	Name        string    `json:"name"`        // 目標名
	Description string    `json:"description"` // 目標の説明
	Target      string    `json:"target"`      // 達成基準
	Completed   bool      `json:"completed"`   // 完了フラグ（参考情報、集計では使用しない）
	Progress    float64   `json:"progress"`    // 進捗率 0-100（通常はタスクから導出）
	CreatedAt   time.Time `json:"createdAt"`   // 作成日時
}

// NewGoal は新しいGoalインスタンスを作成します。
// IDはデータベース側で自動生成されるため、0のままにします。
func NewGoal(cycleID int64, name, description, target string) (*Goal, error) {
	g := &Goal{
		CycleID:     cycleID,
		Name:        name,
		Description: description,
		Target:      target,
		Completed:   false,
		Progress:    0,
		CreatedAt:   time.Now(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadGoal は既存のGoalインスタンスを作成します。
func LoadGoal(id, cycleID int64, name, description, target string, completed bool, progress float64, createdAt time.Time) (*Goal, error) {
	// LoadGoalはDBから読み込んだレコード用なので、IDは必須
	if id <= 0 {
		return nil, errors.New("id is required for loaded goal")
	}
	g := &Goal{
		ID:          id,
		CycleID:     cycleID,
		Name:        name,
		Description: description,
		Target:      target,
		Completed:   completed,
		Progress:    progress,
		CreatedAt:   createdAt,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate は目標のデータバリデーションを行います。
// 外部キーの実在確認は呼び出し側の責任です。
func (g *Goal) Validate() error {
	if g.CycleID <= 0 {
		return NewValidationError("cycleId is required")
	}
	if g.Name == "" {
		return NewValidationError("name is required")
	}
	if g.Target == "" {
		return NewValidationError("target is required")
	}
	if g.Progress < 0 || g.Progress > 100 {
		return NewValidationError("progress must be between 0 and 100")
	}
	if g.CreatedAt.IsZero() {
		return NewValidationError("createdAt is required")
	}
	return nil
}
