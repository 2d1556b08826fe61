// Package api はAPIサーバー実装を提供します。
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/garciajrealtor77/proyecto-12semanas/chart"
	"github.com/garciajrealtor77/proyecto-12semanas/config"
	"github.com/garciajrealtor77/proyecto-12semanas/model"
	"github.com/garciajrealtor77/proyecto-12semanas/tracker"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router  *http.ServeMux
	handler http.Handler
	tracker *tracker.Service
	config  *config.Config
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Error: message,
		Code:  statusCode,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

// writeJSON はJSON形式でレスポンスを返却します。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(tracker *tracker.Service, config *config.Config) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		tracker: tracker,
		config:  config,
	}
	s.routes()
	s.handler = loggingMiddleware(s.router)
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// ヘルスチェックエンドポイントは認証不要
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)

	// すべての保護されたエンドポイントをまずセキュアなルータに登録
	securedHandler := http.NewServeMux()

	// Dashboard endpoint
	securedHandler.HandleFunc("GET /api/v0/dashboard", s.handleGetDashboard)

	// Cycle endpoints
	securedHandler.HandleFunc("GET /api/v0/c", s.handleListCycles)
	securedHandler.HandleFunc("POST /api/v0/c", s.handleCreateCycle)
	securedHandler.HandleFunc("GET /api/v0/c/{cycle_id}", s.handleGetCycle)
	securedHandler.HandleFunc("PUT /api/v0/c/{cycle_id}", s.handleUpdateCycle)
	securedHandler.HandleFunc("DELETE /api/v0/c/{cycle_id}", s.handleDeleteCycle)
	securedHandler.HandleFunc("GET /api/v0/c/{cycle_id}/g", s.handleListGoals)

	// Goal endpoints
	securedHandler.HandleFunc("POST /api/v0/g", s.handleCreateGoal)
	securedHandler.HandleFunc("PUT /api/v0/g/{goal_id}", s.handleUpdateGoal)
	securedHandler.HandleFunc("DELETE /api/v0/g/{goal_id}", s.handleDeleteGoal)
	securedHandler.HandleFunc("PUT /api/v0/g/{goal_id}/progress", s.handleSetGoalProgress)
	securedHandler.HandleFunc("GET /api/v0/g/{goal_id}/t", s.handleListTasks)

	// Task endpoints
	securedHandler.HandleFunc("POST /api/v0/t", s.handleCreateTask)
	securedHandler.HandleFunc("PUT /api/v0/t/{task_id}", s.handleUpdateTask)
	securedHandler.HandleFunc("POST /api/v0/t/{task_id}/toggle", s.handleToggleTask)
	securedHandler.HandleFunc("DELETE /api/v0/t/{task_id}", s.handleDeleteTask)

	// Backup endpoints
	securedHandler.HandleFunc("GET /api/v0/export", s.handleExport)
	securedHandler.HandleFunc("POST /api/v0/import", s.handleImport)

	// 認証ミドルウェアを適用し、メインルータにマウント
	s.router.Handle("/api/", s.authMiddleware(securedHandler))

	// Chart endpoints - support both with and without .svg extension
	s.router.HandleFunc("GET /c/{cycle_id}/chart.svg", s.handleGetChart)
	s.router.HandleFunc("GET /c/{cycle_id}/chart", s.handleGetChart)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parsePathID はパスパラメータからエンティティIDを取得します。
func parsePathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

// handleGetDashboard はダッシュボードのスナップショットを返すハンドラーです。
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.tracker.DashboardSnapshot(r.Context())
	if err != nil {
		log.Printf("Error building dashboard: %v", err)
		writeJSONError(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// handleListCycles はサイクル一覧を取得するハンドラーです。
func (s *Server) handleListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := s.tracker.ListCycles(r.Context())
	if err != nil {
		log.Printf("Error listing cycles: %v", err)
		writeJSONError(w, "Failed to retrieve cycles", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cycles)
}

// CreateCycleParams represents parameters for creating a cycle.
type CreateCycleParams struct {
	Name      string
	StartDate model.Date
}

// NewCreateCycleParams creates parameters for cycle creation from HTTP request.
func NewCreateCycleParams(r *http.Request) (*CreateCycleParams, error) {
	var requestBody struct {
		Name      string     `json:"name"`
		StartDate model.Date `json:"startDate"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if requestBody.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if requestBody.StartDate.IsZero() {
		return nil, fmt.Errorf("startDate is required")
	}

	return &CreateCycleParams{
		Name:      requestBody.Name,
		StartDate: requestBody.StartDate,
	}, nil
}

// handleCreateCycle はサイクル作成エンドポイントのハンドラーです。
func (s *Server) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewCreateCycleParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cycle, err := s.tracker.CreateCycle(r.Context(), params.Name, params.StartDate)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
		} else {
			log.Printf("Error creating cycle: %v", err)
			writeJSONError(w, "Failed to create cycle", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, cycle)
}

// handleGetCycle は特定のIDのサイクルを取得するハンドラーです。
func (s *Server) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, err := parsePathID(r, "cycle_id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cycle, err := s.tracker.GetCycle(r.Context(), cycleID)
	if err != nil {
		if errors.Is(err, model.ErrCycleNotFound) {
			writeJSONError(w, "Cycle not found", http.StatusNotFound)
		} else {
			log.Printf("Error retrieving cycle: %v", err)
			writeJSONError(w, "Failed to retrieve cycle", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, cycle)
}

// UpdateCycleParams represents parameters for updating a cycle.
type UpdateCycleParams struct {
	CycleID int64
	Update  tracker.CycleUpdate
}

// NewUpdateCycleParams creates parameters for cycle update from HTTP request.
func NewUpdateCycleParams(r *http.Request) (*UpdateCycleParams, error) {
	cycleID, err := parsePathID(r, "cycle_id")
	if err != nil {
		return nil, err
	}

	// 部分更新をサポートするためポインタ型を使用
	var requestBody struct {
		Name      *string     `json:"name"`
		StartDate *model.Date `json:"startDate"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	return &UpdateCycleParams{
		CycleID: cycleID,
		Update: tracker.CycleUpdate{
			Name:      requestBody.Name,
			StartDate: requestBody.StartDate,
		},
	}, nil
}

// handleUpdateCycle は特定のIDのサイクルを更新するハンドラーです。
// 開始日を変更した場合、終了日は自動的に再計算されます。
func (s *Server) handleUpdateCycle(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewUpdateCycleParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cycle, err := s.tracker.UpdateCycle(r.Context(), params.CycleID, params.Update)
	if err != nil {
		if errors.Is(err, model.ErrCycleNotFound) {
			writeJSONError(w, "Cycle not found", http.StatusNotFound)
		} else {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				writeJSONError(w, err.Error(), http.StatusBadRequest)
			} else {
				log.Printf("Error updating cycle: %v", err)
				writeJSONError(w, "Failed to update cycle", http.StatusInternalServerError)
			}
		}
		return
	}

	writeJSON(w, http.StatusOK, cycle)
}

// handleDeleteCycle はサイクルと配下のゴール・タスクを削除するハンドラーです。
// 削除確認のUIはクライアントの責任で、このエンドポイントは確認後の呼び出しです。
func (s *Server) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, err := parsePathID(r, "cycle_id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.tracker.DeleteCycleCascade(r.Context(), cycleID); err != nil {
		log.Printf("Error deleting cycle: %v", err)
		writeJSONError(w, "Failed to delete cycle", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListGoals はサイクル配下のゴール一覧を取得するハンドラーです。
// 各ゴールにはタスク数とサイクル名が付帯します。
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	cycleID, err := parsePathID(r, "cycle_id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	goals, err := s.tracker.ListGoalsForCycle(r.Context(), cycleID)
	if err != nil {
		if errors.Is(err, model.ErrCycleNotFound) {
			writeJSONError(w, "Cycle not found", http.StatusNotFound)
		} else {
			log.Printf("Error listing goals: %v", err)
			writeJSONError(w, "Failed to retrieve goals", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

// CreateGoalParams represents parameters for creating a goal.
type CreateGoalParams struct {
	CycleID     int64
	Name        string
	Description string
	Target      string
}

// NewCreateGoalParams creates parameters for goal creation from HTTP request.
func NewCreateGoalParams(r *http.Request) (*CreateGoalParams, error) {
	var requestBody struct {
		CycleID     int64  `json:"cycleId"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Target      string `json:"target"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if requestBody.CycleID <= 0 {
		return nil, fmt.Errorf("cycleId is required")
	}

	return &CreateGoalParams{
		CycleID:     requestBody.CycleID,
		Name:        requestBody.Name,
		Description: requestBody.Description,
		Target:      requestBody.Target,
	}, nil
}

// handleCreateGoal はゴール作成エンドポイントのハンドラーです。
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewCreateGoalParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := s.tracker.CreateGoal(r.Context(), params.CycleID, params.Name, params.Description, params.Target)
	if err != nil {
		if errors.Is(err, model.ErrCycleNotFound) {
			writeJSONError(w, "Cycle not found", http.StatusNotFound)
		} else {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				writeJSONError(w, err.Error(), http.StatusBadRequest)
			} else {
				log.Printf("Error creating goal: %v", err)
				writeJSONError(w, "Failed to create goal", http.StatusInternalServerError)
			}
		}
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

// UpdateGoalParams represents parameters for updating a goal.
type UpdateGoalParams struct {
	GoalID int64
	Update tracker.GoalUpdate
}

// NewUpdateGoalParams creates parameters for goal update from HTTP request.
func NewUpdateGoalParams(r *http.Request) (*UpdateGoalParams, error) {
	goalID, err := parsePathID(r, "goal_id")
	if err != nil {
		return nil, err
	}

	// 部分更新をサポートするためポインタ型を使用
	var requestBody struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Target      *string `json:"target"`
		Completed   *bool   `json:"completed"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	return &UpdateGoalParams{
		GoalID: goalID,
		Update: tracker.GoalUpdate{
			Name:        requestBody.Name,
			Description: requestBody.Description,
			Target:      requestBody.Target,
			Completed:   requestBody.Completed,
		},
	}, nil
}

// handleUpdateGoal は特定のIDのゴールを更新するハンドラーです。
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewUpdateGoalParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := s.tracker.UpdateGoal(r.Context(), params.GoalID, params.Update)
	if err != nil {
		if errors.Is(err, model.ErrGoalNotFound) {
			writeJSONError(w, "Goal not found", http.StatusNotFound)
		} else {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				writeJSONError(w, err.Error(), http.StatusBadRequest)
			} else {
				log.Printf("Error updating goal: %v", err)
				writeJSONError(w, "Failed to update goal", http.StatusInternalServerError)
			}
		}
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// handleDeleteGoal はゴールと配下のタスクを削除するハンドラーです。
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := parsePathID(r, "goal_id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.tracker.DeleteGoalCascade(r.Context(), goalID); err != nil {
		log.Printf("Error deleting goal: %v", err)
		writeJSONError(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetGoalProgressParams represents parameters for setting goal progress.
type SetGoalProgressParams struct {
	GoalID   int64
	Progress float64
}

// NewSetGoalProgressParams creates parameters for progress setting from HTTP request.
func NewSetGoalProgressParams(r *http.Request) (*SetGoalProgressParams, error) {
	goalID, err := parsePathID(r, "goal_id")
	if err != nil {
		return nil, err
	}

	var requestBody struct {
		Progress *float64 `json:"progress"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if requestBody.Progress == nil {
		return nil, fmt.Errorf("progress is required")
	}

	return &SetGoalProgressParams{
		GoalID:   goalID,
		Progress: *requestBody.Progress,
	}, nil
}

// handleSetGoalProgress はゴールの進捗率を直接設定するハンドラーです。
func (s *Server) handleSetGoalProgress(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewSetGoalProgressParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := s.tracker.SetGoalProgress(r.Context(), params.GoalID, params.Progress)
	if err != nil {
		if errors.Is(err, model.ErrGoalNotFound) {
			writeJSONError(w, "Goal not found", http.StatusNotFound)
		} else {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				writeJSONError(w, err.Error(), http.StatusBadRequest)
			} else {
				log.Printf("Error setting goal progress: %v", err)
				writeJSONError(w, "Failed to set goal progress", http.StatusInternalServerError)
			}
		}
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// handleListTasks はゴール配下のタスク一覧を取得するハンドラーです。
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	goalID, err := parsePathID(r, "goal_id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	tasks, err := s.tracker.ListTasksForGoal(r.Context(), goalID)
	if err != nil {
		if errors.Is(err, model.ErrGoalNotFound) {
			writeJSONError(w, "Goal not found", http.StatusNotFound)
		} else {
			log.Printf("Error listing tasks: %v", err)
			writeJSONError(w, "Failed to retrieve tasks", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// CreateTaskParams represents parameters for creating a task.
type CreateTaskParams struct {
	GoalID  int64
	Name    string
	DueDate *model.Date
}

// NewCreateTaskParams creates parameters for task creation from HTTP request.
func NewCreateTaskParams(r *http.Request) (*CreateTaskParams, error) {
	var requestBody struct {
		GoalID  int64       `json:"goalId"`
		Name    string      `json:"name"`
		DueDate *model.Date `json:"dueDate"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if requestBody.GoalID <= 0 {
		return nil, fmt.Errorf("goalId is required")
	}

	return &CreateTaskParams{
		GoalID:  requestBody.GoalID,
		Name:    requestBody.Name,
		DueDate: requestBody.DueDate,
	}, nil
}

// handleCreateTask はタスク作成エンドポイントのハンドラーです。
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewCreateTaskParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := s.tracker.CreateTask(r.Context(), params.GoalID, params.Name, params.DueDate)
	if err != nil {
		if errors.Is(err, model.ErrGoalNotFound) {
			writeJSONError(w, "Goal not found", http.StatusNotFound)
		} else {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				writeJSONError(w, err.Error(), http.StatusBadRequest)
			} else {
				log.Printf("Error creating task: %v", err)
				writeJSONError(w, "Failed to create task", http.StatusInternalServerError)
			}
		}
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// UpdateTaskParams represents parameters for updating a task.
type UpdateTaskParams struct {
	TaskID int64
	Update tracker.TaskUpdate
}

// NewUpdateTaskParams creates parameters for task update from HTTP request.
func NewUpdateTaskParams(r *http.Request) (*UpdateTaskParams, error) {
	taskID, err := parsePathID(r, "task_id")
	if err != nil {
		return nil, err
	}

	// dueDateは「キーなし=保持」「null=クリア」「日付=設定」を区別するため
	// RawMessageで受け取る
	var requestBody struct {
		Name      *string         `json:"name"`
		DueDate   json.RawMessage `json:"dueDate"`
		Completed *bool           `json:"completed"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	update := tracker.TaskUpdate{
		Name:      requestBody.Name,
		Completed: requestBody.Completed,
	}

	if requestBody.DueDate != nil {
		if string(requestBody.DueDate) == "null" {
			update.ClearDueDate = true
		} else {
			var dueDate model.Date
			if err := json.Unmarshal(requestBody.DueDate, &dueDate); err != nil {
				return nil, err
			}
			if dueDate.IsZero() {
				update.ClearDueDate = true
			} else {
				update.DueDate = &dueDate
			}
		}
	}

	return &UpdateTaskParams{
		TaskID: taskID,
		Update: update,
	}, nil
}

// handleUpdateTask は特定のIDのタスクを更新するハンドラーです。
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewUpdateTaskParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := s.tracker.UpdateTask(r.Context(), params.TaskID, params.Update)
	if err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			writeJSONError(w, "Task not found", http.StatusNotFound)
		} else {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				writeJSONError(w, err.Error(), http.StatusBadRequest)
			} else {
				log.Printf("Error updating task: %v", err)
				writeJSONError(w, "Failed to update task", http.StatusInternalServerError)
			}
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// handleToggleTask はタスクの完了状態を反転するハンドラーです。
func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := parsePathID(r, "task_id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	task, err := s.tracker.ToggleTaskCompleted(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, model.ErrTaskNotFound) {
			writeJSONError(w, "Task not found", http.StatusNotFound)
		} else {
			log.Printf("Error toggling task: %v", err)
			writeJSONError(w, "Failed to toggle task", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// handleDeleteTask は特定のIDのタスクを削除するハンドラーです。
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := parsePathID(r, "task_id")
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// べき等性：既に存在しない場合もエラーにしない
	if err := s.tracker.DeleteTask(r.Context(), taskID); err != nil {
		log.Printf("Error deleting task: %v", err)
		writeJSONError(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExport は全データをバックアップ形式で書き出すハンドラーです。
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	backup, err := s.tracker.ExportAll(r.Context())
	if err != nil {
		log.Printf("Error exporting data: %v", err)
		writeJSONError(w, "Failed to export data", http.StatusInternalServerError)
		return
	}

	// クライアントがそのままファイル保存できるようファイル名を添える
	filename := model.BackupFilename(model.DateOf(time.Now()))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	writeJSON(w, http.StatusOK, backup)
}

// handleImport はバックアップを取り込んで全データを置き換えるハンドラーです。
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	// リクエストボディの読み取り
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	// 構造の検証はストアに触れる前に行う
	backup, err := model.ParseBackup(body)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.tracker.ImportAll(r.Context(), backup); err != nil {
		if errors.Is(err, model.ErrInvalidBackup) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error importing data: %v", err)
		writeJSONError(w, "Failed to import data", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetChart は指定サイクルのゴール進捗チャートを生成・返却するハンドラーです。
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	cycleID, err := parsePathID(r, "cycle_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// サイクルを取得（チャートのタイトル用）
	cycle, err := s.tracker.GetCycle(r.Context(), cycleID)
	if err != nil {
		if errors.Is(err, model.ErrCycleNotFound) {
			http.Error(w, "Cycle not found", http.StatusNotFound)
		} else {
			log.Printf("Error retrieving cycle: %v", err)
			http.Error(w, "Failed to retrieve cycle", http.StatusInternalServerError)
		}
		return
	}

	// ゴールを進捗つきで取得
	goals, err := s.tracker.ListGoalsForCycle(r.Context(), cycleID)
	if err != nil {
		log.Printf("Error listing goals: %v", err)
		http.Error(w, "Failed to retrieve goals", http.StatusInternalServerError)
		return
	}

	var bars []chart.Bar
	for _, goal := range goals {
		bars = append(bars, chart.Bar{
			Label:    goal.Name,
			Progress: goal.Progress,
		})
	}

	opts := &chart.Options{
		Title: cycle.Name,
	}
	svg := chart.GenerateProgressChartSVG(bars, opts)

	// レスポンスの返却
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}

// Run はサーバーを指定されたアドレスで起動します。
func (s *Server) Run(addr string) error {
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s)
}
