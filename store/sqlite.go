// Package store は、データの永続化機能を提供します。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/garciajrealtor77/proyecto-12semanas/db"
	"github.com/garciajrealtor77/proyecto-12semanas/model"
	_ "github.com/mattn/go-sqlite3"
)

// CycleStore はサイクルの保存と取得を行うインターフェースです。
type CycleStore interface {
	// CreateCycle は新しいサイクルを作成し、採番されたIDを書き戻します。
	CreateCycle(ctx context.Context, cycle *model.Cycle) error
	// GetCycle は指定されたIDのサイクルを取得します。
	GetCycle(ctx context.Context, id int64) (*model.Cycle, error)
	// ListCycles はすべてのサイクルを作成順で取得します。
	ListCycles(ctx context.Context) ([]*model.Cycle, error)
	// UpdateCycle は指定されたサイクルを更新します。
	UpdateCycle(ctx context.Context, cycle *model.Cycle) error
	// DeleteCycle は指定されたIDのサイクルを削除します。存在しない場合もエラーにはなりません。
	DeleteCycle(ctx context.Context, id int64) error
}

// GoalStore はゴールの保存と取得を行うインターフェースです。
type GoalStore interface {
	// CreateGoal は新しいゴールを作成し、採番されたIDを書き戻します。
	CreateGoal(ctx context.Context, goal *model.Goal) error
	// GetGoal は指定されたIDのゴールを取得します。
	GetGoal(ctx context.Context, id int64) (*model.Goal, error)
	// ListGoalsByCycle は指定されたサイクルのゴールを作成順で取得します。
	ListGoalsByCycle(ctx context.Context, cycleID int64) ([]*model.Goal, error)
	// UpdateGoal は指定されたゴールを更新します。
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	// DeleteGoal は指定されたIDのゴールを削除します。存在しない場合もエラーにはなりません。
	DeleteGoal(ctx context.Context, id int64) error
}

// TaskStore はタスクの保存と取得を行うインターフェースです。
type TaskStore interface {
	// CreateTask は新しいタスクを作成し、採番されたIDを書き戻します。
	CreateTask(ctx context.Context, task *model.Task) error
	// GetTask は指定されたIDのタスクを取得します。
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	// ListTasksByGoal は指定されたゴールのタスクを作成順で取得します。
	ListTasksByGoal(ctx context.Context, goalID int64) ([]*model.Task, error)
	// CountTasksByGoal は指定されたゴールのタスク数を取得します。
	CountTasksByGoal(ctx context.Context, goalID int64) (int, error)
	// UpdateTask は指定されたタスクを更新します。
	UpdateTask(ctx context.Context, task *model.Task) error
	// DeleteTask は指定されたIDのタスクを削除します。存在しない場合もエラーにはなりません。
	DeleteTask(ctx context.Context, id int64) error
}

// BackupStore はバックアップの書き出しと復元に使う一括操作のインターフェースです。
type BackupStore interface {
	// ClearAll はすべてのデータを単一トランザクションで削除します。
	ClearAll(ctx context.Context) error
	// InsertCycle はIDを保持したままサイクルを挿入します。
	InsertCycle(ctx context.Context, cycle *model.Cycle) error
	// InsertGoal はIDを保持したままゴールを挿入します。
	InsertGoal(ctx context.Context, goal *model.Goal) error
	// InsertTask はIDを保持したままタスクを挿入します。
	InsertTask(ctx context.Context, task *model.Task) error
}

// Store は永続化層の全機能をまとめたインターフェースです。
type Store interface {
	CycleStore
	GoalStore
	TaskStore
	BackupStore
	// Close はストアの接続を閉じます。
	Close() error
}

// SQLiteStore はSQLiteを使用したStoreの実装です。
type SQLiteStore struct {
	conn    *sql.DB
	queries *db.Queries
}

// NewSQLiteStore は新しいSQLiteStoreを作成します。
func NewSQLiteStore(dataDir string, migrate func(*sql.DB) error) (*SQLiteStore, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// SQLiteデータベースファイルのパス
	dbPath := filepath.Join(dataDir, "semanas.db")

	// SQLiteデータベースへの接続
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	// マイグレーションの実行
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{
		conn:    conn,
		queries: db.New(conn),
	}, nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// dueDateToNullString は任意入力の期日をDB表現に変換します。
func dueDateToNullString(d *model.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

// nullStringToDueDate はDB表現の期日をモデル表現に変換します。
func nullStringToDueDate(ns sql.NullString) (*model.Date, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := model.NewDate(ns.String)
	if err != nil {
		return nil, fmt.Errorf("invalid due date in database: %w", err)
	}
	return &d, nil
}

// cycleFromRow はDBの行をモデルに変換します。
func cycleFromRow(row db.Cycle) (*model.Cycle, error) {
	startDate, err := model.NewDate(row.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cycle start date: %w", err)
	}
	endDate, err := model.NewDate(row.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cycle end date: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cycle created_at: %w", err)
	}
	return model.LoadCycle(row.ID, row.Name, startDate, endDate, createdAt)
}

// goalFromRow はDBの行をモデルに変換します。
func goalFromRow(row db.Goal) (*model.Goal, error) {
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse goal created_at: %w", err)
	}
	return model.LoadGoal(row.ID, row.CycleID, row.Name, row.Description, row.Target, row.Completed, row.Progress, createdAt)
}

// taskFromRow はDBの行をモデルに変換します。
func taskFromRow(row db.Task) (*model.Task, error) {
	dueDate, err := nullStringToDueDate(row.DueDate)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse task created_at: %w", err)
	}
	return model.LoadTask(row.ID, row.GoalID, row.Name, dueDate, row.Completed, createdAt)
}

// CreateCycle は新しいサイクルをデータベースに保存します。
func (s *SQLiteStore) CreateCycle(ctx context.Context, cycle *model.Cycle) error {
	// バリデーション
	if err := cycle.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	result, err := s.queries.CreateCycle(ctx, db.CreateCycleParams{
		Name:      cycle.Name,
		StartDate: cycle.StartDate.String(),
		EndDate:   cycle.EndDate.String(),
		CreatedAt: cycle.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to create cycle: %w", err)
	}

	// 採番されたIDを書き戻す
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get cycle id: %w", err)
	}
	cycle.ID = id

	return nil
}

// GetCycle は指定されたIDのサイクルを取得します。
func (s *SQLiteStore) GetCycle(ctx context.Context, id int64) (*model.Cycle, error) {
	// sqlcで生成されたクエリを使用
	row, err := s.queries.GetCycle(ctx, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCycleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle: %w", err)
	}

	return cycleFromRow(row)
}

// ListCycles はすべてのサイクルを作成順で取得します。
func (s *SQLiteStore) ListCycles(ctx context.Context) ([]*model.Cycle, error) {
	// sqlcで生成されたクエリを使用
	rows, err := s.queries.ListCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}

	// 結果の変換
	var cycles []*model.Cycle
	for _, row := range rows {
		cycle, err := cycleFromRow(row)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}

	return cycles, nil
}

// UpdateCycle は指定されたサイクルを更新します。
func (s *SQLiteStore) UpdateCycle(ctx context.Context, cycle *model.Cycle) error {
	// バリデーション
	if err := cycle.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	result, err := s.queries.UpdateCycle(ctx, db.UpdateCycleParams{
		Name:      cycle.Name,
		StartDate: cycle.StartDate.String(),
		EndDate:   cycle.EndDate.String(),
		ID:        cycle.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update cycle: %w", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// サイクルが見つからない場合
	if rowsAffected == 0 {
		return model.ErrCycleNotFound
	}

	return nil
}

// DeleteCycle は指定されたIDのサイクルを削除します。
// 既に存在しないサイクルの削除はエラーにしません。
func (s *SQLiteStore) DeleteCycle(ctx context.Context, id int64) error {
	if err := s.queries.DeleteCycle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cycle: %w", err)
	}
	return nil
}

// CreateGoal は新しいゴールをデータベースに保存します。
func (s *SQLiteStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	// バリデーション
	if err := goal.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	result, err := s.queries.CreateGoal(ctx, db.CreateGoalParams{
		CycleID:     goal.CycleID,
		Name:        goal.Name,
		Description: goal.Description,
		Target:      goal.Target,
		Completed:   goal.Completed,
		Progress:    goal.Progress,
		CreatedAt:   goal.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	// 採番されたIDを書き戻す
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get goal id: %w", err)
	}
	goal.ID = id

	return nil
}

// GetGoal は指定されたIDのゴールを取得します。
func (s *SQLiteStore) GetGoal(ctx context.Context, id int64) (*model.Goal, error) {
	// sqlcで生成されたクエリを使用
	row, err := s.queries.GetGoal(ctx, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goalFromRow(row)
}

// ListGoalsByCycle は指定されたサイクルのゴールを作成順で取得します。
func (s *SQLiteStore) ListGoalsByCycle(ctx context.Context, cycleID int64) ([]*model.Goal, error) {
	// sqlcで生成されたクエリを使用
	rows, err := s.queries.ListGoalsByCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	// 結果の変換
	var goals []*model.Goal
	for _, row := range rows {
		goal, err := goalFromRow(row)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, nil
}

// UpdateGoal は指定されたゴールを更新します。
func (s *SQLiteStore) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	// バリデーション
	if err := goal.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	result, err := s.queries.UpdateGoal(ctx, db.UpdateGoalParams{
		CycleID:     goal.CycleID,
		Name:        goal.Name,
		Description: goal.Description,
		Target:      goal.Target,
		Completed:   goal.Completed,
		Progress:    goal.Progress,
		ID:          goal.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// ゴールが見つからない場合
	if rowsAffected == 0 {
		return model.ErrGoalNotFound
	}

	return nil
}

// DeleteGoal は指定されたIDのゴールを削除します。
// 既に存在しないゴールの削除はエラーにしません。
func (s *SQLiteStore) DeleteGoal(ctx context.Context, id int64) error {
	if err := s.queries.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// CreateTask は新しいタスクをデータベースに保存します。
func (s *SQLiteStore) CreateTask(ctx context.Context, task *model.Task) error {
	// バリデーション
	if err := task.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	result, err := s.queries.CreateTask(ctx, db.CreateTaskParams{
		GoalID:    task.GoalID,
		Name:      task.Name,
		DueDate:   dueDateToNullString(task.DueDate),
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	// 採番されたIDを書き戻す
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get task id: %w", err)
	}
	task.ID = id

	return nil
}

// GetTask は指定されたIDのタスクを取得します。
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	// sqlcで生成されたクエリを使用
	row, err := s.queries.GetTask(ctx, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return taskFromRow(row)
}

// ListTasksByGoal は指定されたゴールのタスクを作成順で取得します。
func (s *SQLiteStore) ListTasksByGoal(ctx context.Context, goalID int64) ([]*model.Task, error) {
	// sqlcで生成されたクエリを使用
	rows, err := s.queries.ListTasksByGoal(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	// 結果の変換
	var tasks []*model.Task
	for _, row := range rows {
		task, err := taskFromRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// CountTasksByGoal は指定されたゴールのタスク数を取得します。
func (s *SQLiteStore) CountTasksByGoal(ctx context.Context, goalID int64) (int, error) {
	count, err := s.queries.CountTasksByGoal(ctx, goalID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return int(count), nil
}

// UpdateTask は指定されたタスクを更新します。
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *model.Task) error {
	// バリデーション
	if err := task.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	result, err := s.queries.UpdateTask(ctx, db.UpdateTaskParams{
		GoalID:    task.GoalID,
		Name:      task.Name,
		DueDate:   dueDateToNullString(task.DueDate),
		Completed: task.Completed,
		ID:        task.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// タスクが見つからない場合
	if rowsAffected == 0 {
		return model.ErrTaskNotFound
	}

	return nil
}

// DeleteTask は指定されたIDのタスクを削除します。
// 既に存在しないタスクの削除はエラーにしません。
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	if err := s.queries.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ClearAll はすべてのサイクル・ゴール・タスクを単一トランザクションで削除します。
func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	// トランザクションの開始
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// トランザクションをロールバックするための遅延関数
	defer func() {
		if tx != nil {
			tx.Rollback() // 成功した場合は既にnilになっているためエラーは無視
		}
	}()

	// sqlcで生成されたクエリを使用（トランザクション内で）
	queriesWithTx := s.queries.WithTx(tx)

	// 子から順に削除
	if err := queriesWithTx.DeleteAllTasks(ctx); err != nil {
		return fmt.Errorf("failed to delete all tasks: %w", err)
	}
	if err := queriesWithTx.DeleteAllGoals(ctx); err != nil {
		return fmt.Errorf("failed to delete all goals: %w", err)
	}
	if err := queriesWithTx.DeleteAllCycles(ctx); err != nil {
		return fmt.Errorf("failed to delete all cycles: %w", err)
	}

	// トランザクションのコミット
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil // コミットが成功したのでnilにして遅延関数でのロールバックを防ぐ

	return nil
}

// InsertCycle はIDを保持したままサイクルを挿入します。
func (s *SQLiteStore) InsertCycle(ctx context.Context, cycle *model.Cycle) error {
	// バリデーション
	if err := cycle.Validate(); err != nil {
		return err
	}

	err := s.queries.InsertCycle(ctx, db.InsertCycleParams{
		ID:        cycle.ID,
		Name:      cycle.Name,
		StartDate: cycle.StartDate.String(),
		EndDate:   cycle.EndDate.String(),
		CreatedAt: cycle.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to insert cycle: %w", err)
	}

	return nil
}

// InsertGoal はIDを保持したままゴールを挿入します。
func (s *SQLiteStore) InsertGoal(ctx context.Context, goal *model.Goal) error {
	// バリデーション
	if err := goal.Validate(); err != nil {
		return err
	}

	err := s.queries.InsertGoal(ctx, db.InsertGoalParams{
		ID:          goal.ID,
		CycleID:     goal.CycleID,
		Name:        goal.Name,
		Description: goal.Description,
		Target:      goal.Target,
		Completed:   goal.Completed,
		Progress:    goal.Progress,
		CreatedAt:   goal.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	return nil
}

// InsertTask はIDを保持したままタスクを挿入します。
func (s *SQLiteStore) InsertTask(ctx context.Context, task *model.Task) error {
	// バリデーション
	if err := task.Validate(); err != nil {
		return err
	}

	err := s.queries.InsertTask(ctx, db.InsertTaskParams{
		ID:        task.ID,
		GoalID:    task.GoalID,
		Name:      task.Name,
		DueDate:   dueDateToNullString(task.DueDate),
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}
