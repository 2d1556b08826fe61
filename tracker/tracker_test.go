package tracker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/garciajrealtor77/proyecto-12semanas/db"
	"github.com/garciajrealtor77/proyecto-12semanas/model"
	"github.com/garciajrealtor77/proyecto-12semanas/store"
)

// setupTestService は固定時刻のServiceと実ストアを初期化します。
func setupTestService(t *testing.T, today string) (*Service, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "semanas-tracker-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	st, err := store.NewSQLiteStore(tempDir, db.Migrate)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to create test store: %v", err)
	}

	svc := NewService(st)
	// テストでは現在時刻を固定する
	now, err := time.Parse("2006-01-02", today)
	if err != nil {
		st.Close()
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to parse today %q: %v", today, err)
	}
	svc.now = func() time.Time { return now }

	cleanup := func() {
		st.Close()
		os.RemoveAll(tempDir)
	}
	return svc, cleanup
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.NewDate(s)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", s, err)
	}
	return d
}

func datePtr(t *testing.T, s string) *model.Date {
	t.Helper()
	d := mustDate(t, s)
	return &d
}

func createCycle(t *testing.T, svc *Service, name, startDate string) *model.Cycle {
	t.Helper()
	cycle, err := svc.CreateCycle(context.Background(), name, mustDate(t, startDate))
	if err != nil {
		t.Fatalf("Failed to create cycle: %v", err)
	}
	return cycle
}

func createGoal(t *testing.T, svc *Service, cycleID int64, name string) *model.Goal {
	t.Helper()
	goal, err := svc.CreateGoal(context.Background(), cycleID, name, "", "done")
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}
	return goal
}

func createTask(t *testing.T, svc *Service, goalID int64, name string, dueDate *model.Date) *model.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), goalID, name, dueDate)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return task
}

func TestGoalProgressDerivation(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")

	// タスクがない場合の進捗は0
	goals, err := svc.ListGoalsForCycle(context.Background(), cycle.ID)
	if err != nil {
		t.Fatalf("Failed to list goals: %v", err)
	}
	if goals[0].Progress != 0 {
		t.Errorf("Expected progress 0 with no tasks, got %v", goals[0].Progress)
	}

	// 3タスク中2タスク完了で進捗は200/3
	task1 := createTask(t, svc, goal.ID, "t1", nil)
	task2 := createTask(t, svc, goal.ID, "t2", nil)
	createTask(t, svc, goal.ID, "t3", nil)
	if _, err := svc.ToggleTaskCompleted(context.Background(), task1.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}
	if _, err := svc.ToggleTaskCompleted(context.Background(), task2.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}

	goals, err = svc.ListGoalsForCycle(context.Background(), cycle.ID)
	if err != nil {
		t.Fatalf("Failed to list goals: %v", err)
	}
	expected := 100 * 2.0 / 3.0
	if goals[0].Progress != expected {
		t.Errorf("Expected progress %v, got %v", expected, goals[0].Progress)
	}
	if goals[0].TasksCount != 3 {
		t.Errorf("Expected 3 tasks, got %d", goals[0].TasksCount)
	}
	if goals[0].CycleName != "Q1" {
		t.Errorf("Expected cycle name Q1, got %s", goals[0].CycleName)
	}
}

func TestGoalProgressWriteThrough(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")
	task := createTask(t, svc, goal.ID, "t1", nil)

	if _, err := svc.ToggleTaskCompleted(context.Background(), task.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}

	// 再計算された進捗がストアに書き戻されていることを確認
	stored, err := svc.store.GetGoal(context.Background(), goal.ID)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if stored.Progress != 100 {
		t.Errorf("Expected stored progress 100, got %v", stored.Progress)
	}
}

func TestDashboardNoActiveCycle(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-06-01")
	defer cleanup()

	// 今日を含まないサイクルのみ
	createCycle(t, svc, "past", "2024-01-01")

	snapshot, err := svc.DashboardSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}
	if snapshot.ActiveCycle != nil {
		t.Errorf("Expected no active cycle, got %v", snapshot.ActiveCycle)
	}
	if snapshot.Progress != 0 {
		t.Errorf("Expected progress 0, got %v", snapshot.Progress)
	}
	if len(snapshot.Upcoming) != 0 {
		t.Errorf("Expected empty upcoming feed, got %d items", len(snapshot.Upcoming))
	}
}

func TestDashboardActiveCycleBoundaries(t *testing.T) {
	// サイクルの初日と最終日は期間内
	for _, today := range []string{"2024-01-01", "2024-03-24"} {
		svc, cleanup := setupTestService(t, today)
		cycle := createCycle(t, svc, "Q1", "2024-01-01")

		snapshot, err := svc.DashboardSnapshot(context.Background())
		if err != nil {
			t.Fatalf("Failed to get dashboard: %v", err)
		}
		if snapshot.ActiveCycle == nil || snapshot.ActiveCycle.ID != cycle.ID {
			t.Errorf("today=%s: expected cycle %d to be active", today, cycle.ID)
		}
		cleanup()
	}

	// 最終日の翌日は期間外
	svc, cleanup := setupTestService(t, "2024-03-25")
	defer cleanup()
	createCycle(t, svc, "Q1", "2024-01-01")
	snapshot, err := svc.DashboardSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}
	if snapshot.ActiveCycle != nil {
		t.Error("Expected no active cycle on day after end date")
	}
}

func TestDashboardActiveCycleTieBreak(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	// 期間の重なる2つのサイクル。先に作成したものが優先される
	first := createCycle(t, svc, "first", "2024-01-01")
	createCycle(t, svc, "second", "2024-01-15")

	snapshot, err := svc.DashboardSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}
	if snapshot.ActiveCycle == nil || snapshot.ActiveCycle.ID != first.ID {
		t.Errorf("Expected first-created cycle to win the tie-break")
	}
}

func TestDashboardCycleProgressMean(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")

	// ゴール1: 1/1タスク完了 → 100
	goal1 := createGoal(t, svc, cycle.ID, "g1")
	task := createTask(t, svc, goal1.ID, "t", nil)
	if _, err := svc.ToggleTaskCompleted(context.Background(), task.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}

	// ゴール2: タスクなし → 0
	createGoal(t, svc, cycle.ID, "g2")

	snapshot, err := svc.DashboardSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}
	if snapshot.Progress != 50 {
		t.Errorf("Expected cycle progress 50, got %v", snapshot.Progress)
	}
}

func TestDashboardUpcomingFeed(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-01-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "reading")

	// 期間内: 今日、3日後、ウィンドウ最終日（14日後）
	createTask(t, svc, goal.ID, "due-today", datePtr(t, "2024-01-01"))
	createTask(t, svc, goal.ID, "due-soon", datePtr(t, "2024-01-04"))
	createTask(t, svc, goal.ID, "due-window-edge", datePtr(t, "2024-01-15"))

	// 期間外: 15日後、過去
	createTask(t, svc, goal.ID, "too-far", datePtr(t, "2024-01-16"))

	// 完了済みタスクと期日なしタスクはフィードに出ない
	done := createTask(t, svc, goal.ID, "done", datePtr(t, "2024-01-02"))
	if _, err := svc.ToggleTaskCompleted(context.Background(), done.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}
	createTask(t, svc, goal.ID, "no-due-date", nil)

	snapshot, err := svc.DashboardSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}

	expected := []string{"due-today", "due-soon", "due-window-edge"}
	if len(snapshot.Upcoming) != len(expected) {
		t.Fatalf("Expected %d upcoming items, got %d", len(expected), len(snapshot.Upcoming))
	}
	for i, name := range expected {
		item := snapshot.Upcoming[i]
		if item.Name != name {
			t.Errorf("Expected item %d to be %s, got %s", i, name, item.Name)
		}
		if item.Type != "task" {
			t.Errorf("Expected item type task, got %s", item.Type)
		}
		if item.ParentName != "reading" {
			t.Errorf("Expected parent name reading, got %s", item.ParentName)
		}
	}
}

func TestDashboardUpcomingGoalsNearCycleEnd(t *testing.T) {
	// サイクルの終了日（2024-03-24）が14日以内に入る日
	svc, cleanup := setupTestService(t, "2024-03-20")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")

	// 未達のゴールはフィードに出る
	createGoal(t, svc, cycle.ID, "unfinished")

	// 達成済みのゴールは出ない
	finishedGoal := createGoal(t, svc, cycle.ID, "finished")
	task := createTask(t, svc, finishedGoal.ID, "t", nil)
	if _, err := svc.ToggleTaskCompleted(context.Background(), task.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}

	snapshot, err := svc.DashboardSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}

	if len(snapshot.Upcoming) != 1 {
		t.Fatalf("Expected 1 upcoming item, got %d", len(snapshot.Upcoming))
	}
	item := snapshot.Upcoming[0]
	if item.Type != "goal" {
		t.Errorf("Expected item type goal, got %s", item.Type)
	}
	if item.Name != "unfinished" {
		t.Errorf("Expected item name unfinished, got %s", item.Name)
	}
	if item.ParentName != "Q1" {
		t.Errorf("Expected parent name Q1, got %s", item.ParentName)
	}
	if item.DueDate == nil || item.DueDate.String() != "2024-03-24" {
		t.Errorf("Expected goal due date to be the cycle end 2024-03-24, got %v", item.DueDate)
	}
}

func TestDashboardUpcomingTruncation(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-01-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")

	// 期間内に7件のタスクを作成
	for i := 0; i < 7; i++ {
		due := mustDate(t, "2024-01-02").AddDays(i)
		createTask(t, svc, goal.ID, "task", &due)
	}

	snapshot, err := svc.DashboardSnapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}
	if len(snapshot.Upcoming) != 5 {
		t.Errorf("Expected upcoming feed truncated to 5, got %d", len(snapshot.Upcoming))
	}

	// 締め切りの近い順に残っていること
	for i := 1; i < len(snapshot.Upcoming); i++ {
		prev, cur := snapshot.Upcoming[i-1].DueDate, snapshot.Upcoming[i].DueDate
		if prev == nil || cur == nil {
			t.Fatal("Expected all truncated items to carry due dates")
		}
		if cur.Before(*prev) {
			t.Error("Expected upcoming items in ascending due date order")
		}
	}
}

func TestUpdateCycleMergePreservesFields(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "original", "2024-01-01")
	originalCreatedAt := cycle.CreatedAt

	// 開始日のみ変更。名前は保持され、終了日は再計算される
	updated, err := svc.UpdateCycle(context.Background(), cycle.ID, CycleUpdate{
		StartDate: datePtr(t, "2024-02-01"),
	})
	if err != nil {
		t.Fatalf("Failed to update cycle: %v", err)
	}

	if updated.Name != "original" {
		t.Errorf("Expected name preserved, got %s", updated.Name)
	}
	if updated.StartDate.String() != "2024-02-01" {
		t.Errorf("Expected start date 2024-02-01, got %s", updated.StartDate)
	}
	if updated.EndDate.String() != "2024-04-24" {
		t.Errorf("Expected end date recomputed to 2024-04-24, got %s", updated.EndDate)
	}
	if !updated.CreatedAt.Equal(originalCreatedAt) {
		t.Error("Expected createdAt preserved")
	}
	if updated.ID != cycle.ID {
		t.Errorf("Expected ID preserved, got %d", updated.ID)
	}
}

func TestUpdateNonExistentCycle(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	name := "ghost"
	_, err := svc.UpdateCycle(context.Background(), 99999, CycleUpdate{Name: &name})
	if !errors.Is(err, model.ErrCycleNotFound) {
		t.Errorf("Expected ErrCycleNotFound, got %v", err)
	}
}

func TestUpdateGoalMergeDoesNotTouchProgress(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")

	// 進捗を直接設定してから名前だけ編集
	if _, err := svc.SetGoalProgress(context.Background(), goal.ID, 40); err != nil {
		t.Fatalf("Failed to set progress: %v", err)
	}

	name := "renamed"
	updated, err := svc.UpdateGoal(context.Background(), goal.ID, GoalUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Failed to update goal: %v", err)
	}

	if updated.Name != "renamed" {
		t.Errorf("Expected name renamed, got %s", updated.Name)
	}
	if updated.Progress != 40 {
		t.Errorf("Expected progress preserved at 40, got %v", updated.Progress)
	}
	if updated.Target != "done" {
		t.Errorf("Expected target preserved, got %s", updated.Target)
	}
}

func TestSetGoalProgressValidation(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")

	for _, invalid := range []float64{-1, 100.5} {
		_, err := svc.SetGoalProgress(context.Background(), goal.ID, invalid)
		var validationErr *model.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Expected ValidationError for progress %v, got %v", invalid, err)
		}
	}

	// 小数の進捗は有効
	updated, err := svc.SetGoalProgress(context.Background(), goal.ID, 33.5)
	if err != nil {
		t.Fatalf("Failed to set fractional progress: %v", err)
	}
	if updated.Progress != 33.5 {
		t.Errorf("Expected progress 33.5, got %v", updated.Progress)
	}
}

func TestCreateGoalRequiresCycle(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	_, err := svc.CreateGoal(context.Background(), 99999, "orphan", "", "done")
	if !errors.Is(err, model.ErrCycleNotFound) {
		t.Errorf("Expected ErrCycleNotFound, got %v", err)
	}
}

func TestCreateTaskRequiresGoal(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	_, err := svc.CreateTask(context.Background(), 99999, "orphan", nil)
	if !errors.Is(err, model.ErrGoalNotFound) {
		t.Errorf("Expected ErrGoalNotFound, got %v", err)
	}
}

func TestDeleteGoalCascade(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")
	task1 := createTask(t, svc, goal.ID, "t1", nil)
	task2 := createTask(t, svc, goal.ID, "t2", nil)

	if err := svc.DeleteGoalCascade(context.Background(), goal.ID); err != nil {
		t.Fatalf("Failed to delete goal cascade: %v", err)
	}

	// ゴールとタスクが残っていないことを確認
	if _, err := svc.store.GetGoal(context.Background(), goal.ID); !errors.Is(err, model.ErrGoalNotFound) {
		t.Errorf("Expected goal to be deleted, got %v", err)
	}
	for _, id := range []int64{task1.ID, task2.ID} {
		if _, err := svc.store.GetTask(context.Background(), id); !errors.Is(err, model.ErrTaskNotFound) {
			t.Errorf("Expected task %d to be deleted, got %v", id, err)
		}
	}

	// サイクルは残っている
	if _, err := svc.store.GetCycle(context.Background(), cycle.ID); err != nil {
		t.Errorf("Expected cycle to survive goal cascade, got %v", err)
	}
}

func TestDeleteCycleCascade(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal1 := createGoal(t, svc, cycle.ID, "g1")
	goal2 := createGoal(t, svc, cycle.ID, "g2")
	task := createTask(t, svc, goal1.ID, "t", nil)

	// 別サイクルのデータは影響を受けない
	other := createCycle(t, svc, "other", "2024-04-01")
	otherGoal := createGoal(t, svc, other.ID, "other-goal")

	if err := svc.DeleteCycleCascade(context.Background(), cycle.ID); err != nil {
		t.Fatalf("Failed to delete cycle cascade: %v", err)
	}

	if _, err := svc.store.GetCycle(context.Background(), cycle.ID); !errors.Is(err, model.ErrCycleNotFound) {
		t.Errorf("Expected cycle to be deleted, got %v", err)
	}
	for _, id := range []int64{goal1.ID, goal2.ID} {
		if _, err := svc.store.GetGoal(context.Background(), id); !errors.Is(err, model.ErrGoalNotFound) {
			t.Errorf("Expected goal %d to be deleted, got %v", id, err)
		}
	}
	if _, err := svc.store.GetTask(context.Background(), task.ID); !errors.Is(err, model.ErrTaskNotFound) {
		t.Errorf("Expected task to be deleted, got %v", err)
	}

	if _, err := svc.store.GetCycle(context.Background(), other.ID); err != nil {
		t.Errorf("Expected other cycle to survive, got %v", err)
	}
	if _, err := svc.store.GetGoal(context.Background(), otherGoal.ID); err != nil {
		t.Errorf("Expected other goal to survive, got %v", err)
	}
}

func TestDeleteTaskIdempotent(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")
	task := createTask(t, svc, goal.ID, "t", nil)

	if err := svc.DeleteTask(context.Background(), task.ID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}
	// 既に存在しないタスクの削除もエラーにならない
	if err := svc.DeleteTask(context.Background(), task.ID); err != nil {
		t.Errorf("Expected no error deleting already-deleted task, got %v", err)
	}
}

func TestDeleteTaskRefreshesGoalProgress(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")

	done := createTask(t, svc, goal.ID, "done", nil)
	if _, err := svc.ToggleTaskCompleted(context.Background(), done.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}
	createTask(t, svc, goal.ID, "open", nil)

	// 50% → 完了タスクを消すと0%
	if err := svc.DeleteTask(context.Background(), done.ID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}

	stored, err := svc.store.GetGoal(context.Background(), goal.ID)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if stored.Progress != 0 {
		t.Errorf("Expected progress 0 after deleting the completed task, got %v", stored.Progress)
	}
}

func TestUpdateTaskClearDueDate(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")
	task := createTask(t, svc, goal.ID, "t", datePtr(t, "2024-02-10"))

	updated, err := svc.UpdateTask(context.Background(), task.ID, TaskUpdate{ClearDueDate: true})
	if err != nil {
		t.Fatalf("Failed to update task: %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("Expected due date cleared, got %v", updated.DueDate)
	}
	if updated.Name != "t" {
		t.Errorf("Expected name preserved, got %s", updated.Name)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	cycle := createCycle(t, svc, "Q1", "2024-01-01")
	goal := createGoal(t, svc, cycle.ID, "goal")
	task := createTask(t, svc, goal.ID, "t", datePtr(t, "2024-02-10"))
	if _, err := svc.ToggleTaskCompleted(context.Background(), task.ID); err != nil {
		t.Fatalf("Failed to toggle task: %v", err)
	}

	backup, err := svc.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	if len(backup.Cycles) != 1 || len(backup.Goals) != 1 || len(backup.Tasks) != 1 {
		t.Fatalf("Unexpected backup sizes: %d cycles, %d goals, %d tasks",
			len(backup.Cycles), len(backup.Goals), len(backup.Tasks))
	}

	// 取り込み直してIDと関係が保持されていることを確認
	if err := svc.ImportAll(context.Background(), backup); err != nil {
		t.Fatalf("Failed to import: %v", err)
	}

	restoredCycle, err := svc.store.GetCycle(context.Background(), cycle.ID)
	if err != nil {
		t.Fatalf("Failed to get restored cycle: %v", err)
	}
	if restoredCycle.Name != "Q1" {
		t.Errorf("Expected cycle name Q1, got %s", restoredCycle.Name)
	}

	restoredGoal, err := svc.store.GetGoal(context.Background(), goal.ID)
	if err != nil {
		t.Fatalf("Failed to get restored goal: %v", err)
	}
	if restoredGoal.CycleID != cycle.ID {
		t.Errorf("Expected goal to keep cycle ID %d, got %d", cycle.ID, restoredGoal.CycleID)
	}

	restoredTask, err := svc.store.GetTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("Failed to get restored task: %v", err)
	}
	if !restoredTask.Completed {
		t.Error("Expected restored task to be completed")
	}
	if restoredTask.DueDate == nil || restoredTask.DueDate.String() != "2024-02-10" {
		t.Errorf("Expected restored due date 2024-02-10, got %v", restoredTask.DueDate)
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	// 既存データ
	old := createCycle(t, svc, "old", "2024-01-01")

	// 空のバックアップを取り込むと全消去になる
	empty := &model.Backup{
		Cycles: []*model.Cycle{},
		Goals:  []*model.Goal{},
		Tasks:  []*model.Task{},
	}
	if err := svc.ImportAll(context.Background(), empty); err != nil {
		t.Fatalf("Failed to import empty backup: %v", err)
	}

	if _, err := svc.store.GetCycle(context.Background(), old.ID); !errors.Is(err, model.ErrCycleNotFound) {
		t.Errorf("Expected existing data to be replaced, got %v", err)
	}
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	svc, cleanup := setupTestService(t, "2024-02-01")
	defer cleanup()

	existing := createCycle(t, svc, "keep", "2024-01-01")

	// 構造が不正なバックアップは取り込み前に拒否され、既存データは残る
	invalid := &model.Backup{Cycles: []*model.Cycle{}, Goals: []*model.Goal{}}
	err := svc.ImportAll(context.Background(), invalid)
	if !errors.Is(err, model.ErrInvalidBackup) {
		t.Errorf("Expected ErrInvalidBackup, got %v", err)
	}

	if _, err := svc.store.GetCycle(context.Background(), existing.ID); err != nil {
		t.Errorf("Expected existing data to survive a rejected import, got %v", err)
	}
}
