// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import "errors"

// センチネルエラー - リソースが見つからない場合
var (
	ErrCycleNotFound = errors.New("cycle not found")
	ErrGoalNotFound  = errors.New("goal not found")
	ErrTaskNotFound  = errors.New("task not found")
)

// ErrInvalidBackup はインポートデータの構造が不正な場合のエラーです。
var ErrInvalidBackup = errors.New("backup data must contain cycles, goals and tasks")

// ValidationError はバリデーションエラーを表す型
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
