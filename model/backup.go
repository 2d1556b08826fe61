// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"encoding/json"
	"fmt"
)

// Backup はエクスポート/インポートで使用するデータ一式です。
// 各レコードは元のIDを保持するため、外部キーはラウンドトリップ後も有効です。
type Backup struct {
	Cycles []*Cycle `json:"cycles"`
	Goals  []*Goal  `json:"goals"`
	Tasks  []*Task  `json:"tasks"`
}

// BackupFilename はエクスポートファイルの命名規約に従ったファイル名を返します。
func BackupFilename(date Date) string {
	return fmt.Sprintf("mi-ano-12-semanas-backup-%s.json", date)
}

// ParseBackup はJSONバイト列からBackupを構築します。
// 3つのトップレベルキー（cycles, goals, tasks）がすべて配列として
// 存在しない場合は、ストアを変更する前にErrInvalidBackupで失敗します。
func ParseBackup(data []byte) (*Backup, error) {
	// キーの欠落と空配列を区別するためポインタ型で受け取る
	var raw struct {
		Cycles *[]*Cycle `json:"cycles"`
		Goals  *[]*Goal  `json:"goals"`
		Tasks  *[]*Task  `json:"tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid backup JSON: %w", err)
	}
	if raw.Cycles == nil || raw.Goals == nil || raw.Tasks == nil {
		return nil, ErrInvalidBackup
	}
	return &Backup{
		Cycles: *raw.Cycles,
		Goals:  *raw.Goals,
		Tasks:  *raw.Tasks,
	}, nil
}
