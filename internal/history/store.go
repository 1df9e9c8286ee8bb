// Package history 指标历史序列的本地落盘，sqlite单文件
package history

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"btcpulse/internal/model"
	"btcpulse/pkg/errors"
	"btcpulse/pkg/errors/ecode"
)

// Record 指标某一天的取值，(name,date)唯一，重复写入覆盖
type Record struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;not null;uniqueIndex:idx_name_date"`
	Date      string `gorm:"size:10;not null;uniqueIndex:idx_name_date"`
	Value     float64
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "indicator_history"
}

type Store struct {
	db *gorm.DB
}

// Open 打开（必要时创建）sqlite库并迁移表结构
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(ecode.HistoryUnavailableErr, "", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, errors.Wrap(ecode.HistoryUnavailableErr, "", err)
	}
	return &Store{db: db}, nil
}

// Append 批量写入一个指标的历史点，同一(name,date)后写覆盖先写
func (s *Store) Append(name string, points []model.HistoryPoint) error {
	if len(points) == 0 {
		return nil
	}
	records := make([]Record, len(points))
	for i, p := range points {
		records[i] = Record{Name: name, Date: p.Date, Value: p.Value}
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).CreateInBatches(records, 200).Error
	if err != nil {
		return errors.Wrap(ecode.HistoryUnavailableErr, "", err)
	}
	return nil
}

// Query 取指标最近days天的历史，按日期升序。没有数据返回空切片
func (s *Store) Query(name string, days int) ([]model.HistoryPoint, error) {
	var records []Record
	err := s.db.Where("name = ?", name).
		Order("date DESC").
		Limit(days).
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(ecode.HistoryUnavailableErr, "", err)
	}
	points := make([]model.HistoryPoint, len(records))
	for i, r := range records {
		points[len(records)-1-i] = model.HistoryPoint{Date: r.Date, Value: r.Value}
	}
	return points, nil
}
