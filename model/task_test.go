package model

import (
	"testing"
	"time"
)

// TestNewTask tests the NewTask constructor
func TestNewTask(t *testing.T) {
	due := mustDate(t, "2024-01-15")
	task, err := NewTask(1, "Write training plan", &due)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	// IDは未保存なので0のまま
	if task.ID != 0 {
		t.Errorf("Expected ID 0 for new task, got %d", task.ID)
	}
	if task.Completed {
		t.Error("Expected new task to be incomplete")
	}
	if task.DueDate == nil || task.DueDate.String() != "2024-01-15" {
		t.Errorf("Expected due date 2024-01-15, got %v", task.DueDate)
	}
	if task.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

// TestNewTaskWithoutDueDate tests that the due date is optional
func TestNewTaskWithoutDueDate(t *testing.T) {
	task, err := NewTask(1, "Read a chapter", nil)
	if err != nil {
		t.Fatalf("Failed to create task without due date: %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("Expected nil due date, got %v", task.DueDate)
	}
}

// TestNewTaskValidation tests required fields of NewTask
func TestNewTaskValidation(t *testing.T) {
	// 名前なし
	if _, err := NewTask(1, "", nil); err == nil {
		t.Error("Expected error for empty name, got nil")
	}

	// 目標IDなし
	if _, err := NewTask(0, "name", nil); err == nil {
		t.Error("Expected error for missing goalId, got nil")
	}

	// ゼロ値の期限は不正（未設定ならnilを使う）
	var zero Date
	if _, err := NewTask(1, "name", &zero); err == nil {
		t.Error("Expected error for zero due date, got nil")
	}
}

// TestLoadTask tests the LoadTask constructor
func TestLoadTask(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	task, err := LoadTask(5, 2, "name", nil, true, createdAt)
	if err != nil {
		t.Fatalf("Failed to load task: %v", err)
	}
	if task.ID != 5 {
		t.Errorf("Expected ID 5, got %d", task.ID)
	}
	if !task.Completed {
		t.Error("Expected loaded task to keep completed flag")
	}

	// IDなしでの読み込みは失敗
	if _, err := LoadTask(0, 2, "name", nil, false, createdAt); err == nil {
		t.Error("Expected error when loading task without id, got nil")
	}
}
