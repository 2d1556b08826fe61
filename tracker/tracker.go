// Package tracker は、サイクル・ゴール・タスクに対する集計とユースケースを提供します。
package tracker

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/garciajrealtor77/proyecto-12semanas/model"
	"github.com/garciajrealtor77/proyecto-12semanas/store"
)

const (
	// upcomingWindowDays は直近フィードの対象期間（今日を含む日数）です。
	upcomingWindowDays = 14
	// upcomingLimit は直近フィードの最大件数です。
	upcomingLimit = 5
)

// Service はストアをラップしてアプリケーションのユースケースを実装します。
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService は新しいServiceを作成します。
func NewService(s store.Store) *Service {
	return &Service{
		store: s,
		now:   time.Now,
	}
}

// UpcomingItem は直近フィードの1項目です。タスクまたはゴールを指します。
type UpcomingItem struct {
	Type       string      `json:"type"` // "task" または "goal"
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	ParentName string      `json:"parentName"` // タスクならゴール名、ゴールならサイクル名
	DueDate    *model.Date `json:"dueDate"`
}

// DashboardSnapshot はダッシュボード表示に必要な情報の集約です。
type DashboardSnapshot struct {
	ActiveCycle *model.Cycle    `json:"activeCycle"`
	Progress    float64         `json:"progress"` // サイクル全体の進捗率 0-100
	Upcoming    []*UpcomingItem `json:"upcoming"`
}

// GoalWithMeta は一覧表示用に付帯情報を加えたゴールです。
type GoalWithMeta struct {
	model.Goal
	TasksCount int    `json:"tasksCount"`
	CycleName  string `json:"cycleName"`
}

// taskProgress はタスク一覧から進捗率を計算します。タスクがない場合は0です。
func taskProgress(tasks []*model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(tasks))
}

// refreshGoalProgress はゴールの進捗率をタスクから再計算します。
// 保存済みの値と異なる場合のみ書き戻します。
func (s *Service) refreshGoalProgress(ctx context.Context, goal *model.Goal) error {
	tasks, err := s.store.ListTasksByGoal(ctx, goal.ID)
	if err != nil {
		return err
	}
	progress := taskProgress(tasks)
	if progress == goal.Progress {
		return nil
	}
	goal.Progress = progress
	return s.store.UpdateGoal(ctx, goal)
}

// today は現在時刻を日単位に正規化して返します。
func (s *Service) today() model.Date {
	return model.DateOf(s.now())
}

// activeCycle は今日を期間内に含む最初のサイクルを返します。
// 複数該当する場合は作成が最も古いものを採用します。該当なしはnilです。
func (s *Service) activeCycle(ctx context.Context, today model.Date) (*model.Cycle, error) {
	cycles, err := s.store.ListCycles(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cycles {
		if c.Contains(today) {
			return c, nil
		}
	}
	return nil, nil
}

// DashboardSnapshot はアクティブなサイクルの進捗と直近フィードを集計します。
// アクティブなサイクルがない場合は空のスナップショットを返します。
func (s *Service) DashboardSnapshot(ctx context.Context) (*DashboardSnapshot, error) {
	today := s.today()
	cycle, err := s.activeCycle(ctx, today)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return &DashboardSnapshot{Upcoming: []*UpcomingItem{}}, nil
	}

	goals, err := s.store.ListGoalsByCycle(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}

	windowEnd := today.AddDays(upcomingWindowDays)
	var items []*UpcomingItem

	// ゴールごとに進捗を再計算しつつ、期限が近い未完了タスクを集める
	total := 0.0
	for _, goal := range goals {
		tasks, err := s.store.ListTasksByGoal(ctx, goal.ID)
		if err != nil {
			return nil, err
		}

		progress := taskProgress(tasks)
		if progress != goal.Progress {
			goal.Progress = progress
			if err := s.store.UpdateGoal(ctx, goal); err != nil {
				return nil, err
			}
		}
		total += progress

		for _, task := range tasks {
			if task.Completed || task.DueDate == nil {
				continue
			}
			if task.DueDate.Before(today) || task.DueDate.After(windowEnd) {
				continue
			}
			items = append(items, &UpcomingItem{
				Type:       "task",
				ID:         task.ID,
				Name:       task.Name,
				ParentName: goal.Name,
				DueDate:    task.DueDate,
			})
		}
	}

	// サイクルの終了が近い場合、未達のゴールもフィードに載せる
	if !cycle.EndDate.Before(today) && !cycle.EndDate.After(windowEnd) {
		for _, goal := range goals {
			if goal.Progress >= 100 {
				continue
			}
			dueDate := cycle.EndDate
			items = append(items, &UpcomingItem{
				Type:       "goal",
				ID:         goal.ID,
				Name:       goal.Name,
				ParentName: cycle.Name,
				DueDate:    &dueDate,
			})
		}
	}

	// 期日の昇順に並べ、期日なしは末尾に回す
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].DueDate, items[j].DueDate
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return di.Before(*dj)
	})
	if len(items) > upcomingLimit {
		items = items[:upcomingLimit]
	}
	if items == nil {
		items = []*UpcomingItem{}
	}

	progress := 0.0
	if len(goals) > 0 {
		progress = total / float64(len(goals))
	}

	return &DashboardSnapshot{
		ActiveCycle: cycle,
		Progress:    progress,
		Upcoming:    items,
	}, nil
}

// ListCycles はすべてのサイクルを作成順で返します。
func (s *Service) ListCycles(ctx context.Context) ([]*model.Cycle, error) {
	cycles, err := s.store.ListCycles(ctx)
	if err != nil {
		return nil, err
	}
	if cycles == nil {
		cycles = []*model.Cycle{}
	}
	return cycles, nil
}

// GetCycle は指定されたIDのサイクルを返します。
func (s *Service) GetCycle(ctx context.Context, id int64) (*model.Cycle, error) {
	return s.store.GetCycle(ctx, id)
}

// CreateCycle は新しいサイクルを作成します。終了日は開始日から導出されます。
func (s *Service) CreateCycle(ctx context.Context, name string, startDate model.Date) (*model.Cycle, error) {
	cycle, err := model.NewCycle(name, startDate)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateCycle(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

// CycleUpdate はサイクル編集で指定可能なフィールドです。nilのフィールドは変更されません。
type CycleUpdate struct {
	Name      *string
	StartDate *model.Date
}

// UpdateCycle は既存のサイクルに編集内容をマージして保存します。
// 開始日が変わった場合は終了日を再計算します。
func (s *Service) UpdateCycle(ctx context.Context, id int64, upd CycleUpdate) (*model.Cycle, error) {
	cycle, err := s.store.GetCycle(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		cycle.Name = *upd.Name
	}
	if upd.StartDate != nil {
		cycle.StartDate = *upd.StartDate
	}
	cycle.RecomputeEndDate()

	if err := s.store.UpdateCycle(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

// DeleteCycleCascade はサイクルとその配下のゴール・タスクをすべて削除します。
// 子孫から順に削除する独立した呼び出しの列であり、単一トランザクションではありません。
func (s *Service) DeleteCycleCascade(ctx context.Context, id int64) error {
	goals, err := s.store.ListGoalsByCycle(ctx, id)
	if err != nil {
		return err
	}
	for _, goal := range goals {
		if err := s.DeleteGoalCascade(ctx, goal.ID); err != nil {
			return err
		}
	}
	return s.store.DeleteCycle(ctx, id)
}

// ListGoalsForCycle はサイクル配下のゴールを付帯情報つきで返します。
// 各ゴールの進捗はタスクから再計算されます。
func (s *Service) ListGoalsForCycle(ctx context.Context, cycleID int64) ([]*GoalWithMeta, error) {
	cycle, err := s.store.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	goals, err := s.store.ListGoalsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	result := []*GoalWithMeta{}
	for _, goal := range goals {
		if err := s.refreshGoalProgress(ctx, goal); err != nil {
			return nil, err
		}
		count, err := s.store.CountTasksByGoal(ctx, goal.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &GoalWithMeta{
			Goal:       *goal,
			TasksCount: count,
			CycleName:  cycle.Name,
		})
	}

	return result, nil
}

// CreateGoal は新しいゴールを作成します。所属サイクルの実在を確認します。
func (s *Service) CreateGoal(ctx context.Context, cycleID int64, name, description, target string) (*model.Goal, error) {
	if _, err := s.store.GetCycle(ctx, cycleID); err != nil {
		return nil, err
	}

	goal, err := model.NewGoal(cycleID, name, description, target)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// GoalUpdate はゴール編集で指定可能なフィールドです。nilのフィールドは変更されません。
type GoalUpdate struct {
	Name        *string
	Description *string
	Target      *string
	Completed   *bool
}

// UpdateGoal は既存のゴールに編集内容をマージして保存します。
// 進捗は編集対象外です（SetGoalProgressまたはタスクからの導出で変わります）。
func (s *Service) UpdateGoal(ctx context.Context, id int64, upd GoalUpdate) (*model.Goal, error) {
	goal, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		goal.Name = *upd.Name
	}
	if upd.Description != nil {
		goal.Description = *upd.Description
	}
	if upd.Target != nil {
		goal.Target = *upd.Target
	}
	if upd.Completed != nil {
		goal.Completed = *upd.Completed
	}

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoalCascade はゴールとその配下のタスクをすべて削除します。
// タスクを先に削除する独立した呼び出しの列であり、単一トランザクションではありません。
func (s *Service) DeleteGoalCascade(ctx context.Context, id int64) error {
	tasks, err := s.store.ListTasksByGoal(ctx, id)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if err := s.store.DeleteTask(ctx, task.ID); err != nil {
			return err
		}
	}
	return s.store.DeleteGoal(ctx, id)
}

// SetGoalProgress はゴールの進捗率を直接設定します。
func (s *Service) SetGoalProgress(ctx context.Context, id int64, progress float64) (*model.Goal, error) {
	if progress < 0 || progress > 100 {
		return nil, model.NewValidationError("progress must be between 0 and 100")
	}

	goal, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	goal.Progress = progress
	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// ListTasksForGoal はゴール配下のタスクを作成順で返します。
func (s *Service) ListTasksForGoal(ctx context.Context, goalID int64) ([]*model.Task, error) {
	if _, err := s.store.GetGoal(ctx, goalID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListTasksByGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}
	return tasks, nil
}

// CreateTask は新しいタスクを作成します。所属ゴールの実在を確認します。
func (s *Service) CreateTask(ctx context.Context, goalID int64, name string, dueDate *model.Date) (*model.Task, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	task, err := model.NewTask(goalID, name, dueDate)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	// タスク構成が変わったのでゴールの進捗を追従させる
	if err := s.refreshGoalProgress(ctx, goal); err != nil {
		return nil, err
	}
	return task, nil
}

// TaskUpdate はタスク編集で指定可能なフィールドです。nilのフィールドは変更されません。
// 期日を消す場合はClearDueDateを立てます。
type TaskUpdate struct {
	Name         *string
	DueDate      *model.Date
	ClearDueDate bool
	Completed    *bool
}

// UpdateTask は既存のタスクに編集内容をマージして保存します。
func (s *Service) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		task.Name = *upd.Name
	}
	if upd.ClearDueDate {
		task.DueDate = nil
	} else if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	// 完了状態が変わった可能性があるのでゴールの進捗を追従させる
	goal, err := s.store.GetGoal(ctx, task.GoalID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshGoalProgress(ctx, goal); err != nil {
		return nil, err
	}

	return task, nil
}

// ToggleTaskCompleted はタスクの完了状態を反転します。
func (s *Service) ToggleTaskCompleted(ctx context.Context, id int64) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	// 進捗を追従させる
	goal, err := s.store.GetGoal(ctx, task.GoalID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshGoalProgress(ctx, goal); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask は指定されたIDのタスクを削除します。既に存在しない場合は何もしません。
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	task, err := s.store.GetTask(ctx, id)
	if errors.Is(err, model.ErrTaskNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}

	// 進捗を追従させる
	goal, err := s.store.GetGoal(ctx, task.GoalID)
	if err != nil {
		return err
	}
	return s.refreshGoalProgress(ctx, goal)
}

// ExportAll はすべてのデータをバックアップ形式で書き出します。
func (s *Service) ExportAll(ctx context.Context) (*model.Backup, error) {
	cycles, err := s.store.ListCycles(ctx)
	if err != nil {
		return nil, err
	}

	backup := &model.Backup{
		Cycles: []*model.Cycle{},
		Goals:  []*model.Goal{},
		Tasks:  []*model.Task{},
	}

	for _, cycle := range cycles {
		backup.Cycles = append(backup.Cycles, cycle)
		goals, err := s.store.ListGoalsByCycle(ctx, cycle.ID)
		if err != nil {
			return nil, err
		}
		for _, goal := range goals {
			backup.Goals = append(backup.Goals, goal)
			tasks, err := s.store.ListTasksByGoal(ctx, goal.ID)
			if err != nil {
				return nil, err
			}
			backup.Tasks = append(backup.Tasks, tasks...)
		}
	}

	return backup, nil
}

// ImportAll はバックアップを取り込んで全データを置き換えます。
// 既存データは単一トランザクションで消去されますが、その後の挿入は
// 独立した呼び出しの列です。IDは保持されます。
func (s *Service) ImportAll(ctx context.Context, backup *model.Backup) error {
	if backup == nil || backup.Cycles == nil || backup.Goals == nil || backup.Tasks == nil {
		return model.ErrInvalidBackup
	}

	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}

	// 親から順に挿入する
	for _, cycle := range backup.Cycles {
		if err := s.store.InsertCycle(ctx, cycle); err != nil {
			return err
		}
	}
	for _, goal := range backup.Goals {
		if err := s.store.InsertGoal(ctx, goal); err != nil {
			return err
		}
	}
	for _, task := range backup.Tasks {
		if err := s.store.InsertTask(ctx, task); err != nil {
			return err
		}
	}

	return nil
}
