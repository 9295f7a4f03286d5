package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Version アプリケーションのバージョン（ビルド時に -ldflags で上書き）
var Version = "dev"

// HealthStatus ヘルスチェックの結果
type HealthStatus struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Database  string `json:"database"`
}

// HealthService ヘルスチェックに関するサービスインターフェース
type HealthService interface {
	GetStatus(ctx context.Context) HealthStatus
}

// healthService HealthServiceの実装
type healthService struct {
	db        *gorm.DB
	startTime time.Time
}

// NewHealthService HealthServiceを作成
func NewHealthService(db *gorm.DB) HealthService {
	return &healthService{
		db:        db,
		startTime: time.Now(),
	}
}

// GetStatus サービスのステータスを取得
func (s *healthService) GetStatus(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   Version,
		Database:  "ok",
	}

	if err := s.pingDB(ctx); err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
	}

	return status
}

func (s *healthService) pingDB(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
