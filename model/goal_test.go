package model

import (
	"testing"
	"time"
)

// TestNewGoal tests the NewGoal constructor
func TestNewGoal(t *testing.T) {
	goal, err := NewGoal(1, "Run a marathon", "Train three times a week", "Finish under 4 hours")
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	// IDは未保存なので0のまま
	if goal.ID != 0 {
		t.Errorf("Expected ID 0 for new goal, got %d", goal.ID)
	}

	// 初期状態の確認
	if goal.Completed {
		t.Error("Expected new goal to be incomplete")
	}
	if goal.Progress != 0 {
		t.Errorf("Expected initial progress 0, got %f", goal.Progress)
	}
	if goal.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

// TestNewGoalValidation tests required fields of NewGoal
func TestNewGoalValidation(t *testing.T) {
	// 名前なし
	if _, err := NewGoal(1, "", "desc", "target"); err == nil {
		t.Error("Expected error for empty name, got nil")
	}

	// 達成基準なし
	if _, err := NewGoal(1, "name", "desc", ""); err == nil {
		t.Error("Expected error for empty target, got nil")
	}

	// サイクルIDなし
	if _, err := NewGoal(0, "name", "desc", "target"); err == nil {
		t.Error("Expected error for missing cycleId, got nil")
	}
}

// TestGoalProgressBounds tests progress range validation
func TestGoalProgressBounds(t *testing.T) {
	goal, err := NewGoal(1, "name", "desc", "target")
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	goal.Progress = 101
	if err := goal.Validate(); err == nil {
		t.Error("Expected error for progress above 100, got nil")
	}

	goal.Progress = -1
	if err := goal.Validate(); err == nil {
		t.Error("Expected error for negative progress, got nil")
	}

	// 小数の進捗率は有効（3タスク中1完了 = 33.33...）
	goal.Progress = 100.0 / 3.0
	if err := goal.Validate(); err != nil {
		t.Errorf("Expected fractional progress to be valid, got %v", err)
	}
}

// TestLoadGoal tests the LoadGoal constructor
func TestLoadGoal(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	goal, err := LoadGoal(7, 3, "name", "desc", "target", true, 50, createdAt)
	if err != nil {
		t.Fatalf("Failed to load goal: %v", err)
	}

	if goal.ID != 7 {
		t.Errorf("Expected ID 7, got %d", goal.ID)
	}
	if goal.CycleID != 3 {
		t.Errorf("Expected CycleID 3, got %d", goal.CycleID)
	}
	if !goal.Completed {
		t.Error("Expected loaded goal to keep completed flag")
	}
	if !goal.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected CreatedAt %v, got %v", createdAt, goal.CreatedAt)
	}

	// IDなしでの読み込みは失敗
	if _, err := LoadGoal(0, 3, "name", "desc", "target", false, 0, createdAt); err == nil {
		t.Error("Expected error when loading goal without id, got nil")
	}
}
