// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"log"

	"github.com/garciajrealtor77/proyecto-12semanas/api"
	"github.com/garciajrealtor77/proyecto-12semanas/config"
	"github.com/garciajrealtor77/proyecto-12semanas/db"
	"github.com/garciajrealtor77/proyecto-12semanas/store"
	"github.com/garciajrealtor77/proyecto-12semanas/tracker"
)

func main() {
	// 設定の読み込み
	cfg := config.NewConfig()

	// SQLiteストアの初期化（マイグレーション関数を渡す）
	sqliteStore, err := store.NewSQLiteStore(cfg.DataDir, db.Migrate)
	if err != nil {
		log.Fatalf("Failed to initialize SQLite store: %v", err)
	}
	defer sqliteStore.Close()

	// サーバーインスタンスの作成
	server := api.NewServer(tracker.NewService(sqliteStore), cfg)

	// サーバーの起動
	log.Fatal(server.Run(":" + cfg.Port))
}
