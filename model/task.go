// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"time"
)

// Task は目標内のタスクを表すモデルです。
type Task struct {
	ID        int64     `json:"id"`
	GoalID    int64     `json:"goalId"`    // 所属する目標のID
	Name      string    `json:"name"`      // タスク名
	DueDate   *Date     `json:"dueDate"`   // 期限（任意）
	Completed bool      `json:"completed"` // 完了フラグ
	CreatedAt time.Time `json:"createdAt"` // 作成日時
}

// NewTask は新しいTaskインスタンスを作成します。
// IDはデータベース側で自動生成されるため、0のままにします。
func NewTask(goalID int64, name string, dueDate *Date) (*Task, error) {
	t := &Task{
		GoalID:    goalID,
		Name:      name,
		DueDate:   dueDate,
		Completed: false,
		CreatedAt: time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTask は既存のTaskインスタンスを作成します。
func LoadTask(id, goalID int64, name string, dueDate *Date, completed bool, createdAt time.Time) (*Task, error) {
	// LoadTaskはDBから読み込んだレコード用なので、IDは必須
	if id <= 0 {
		return nil, errors.New("id is required for loaded task")
	}
	t := &Task{
		ID:        id,
		GoalID:    goalID,
		Name:      name,
		DueDate:   dueDate,
		Completed: completed,
		CreatedAt: createdAt,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate はタスクのデータバリデーションを行います。
// 外部キーの実在確認は呼び出し側の責任です。
func (t *Task) Validate() error {
	if t.GoalID <= 0 {
		return NewValidationError("goalId is required")
	}
	if t.Name == "" {
		return NewValidationError("name is required")
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		return NewValidationError("dueDate must be a valid date when set")
	}
	if t.CreatedAt.IsZero() {
		return NewValidationError("createdAt is required")
	}
	return nil
}
