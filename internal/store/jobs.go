package store

import (
	"context"

	"gorm.io/gorm"

	"workhub/internal/database"
)

// JobStore 负责职位记录的读写。
type JobStore struct {
	db *gorm.DB
}

// NewJobStore 构造 JobStore。
func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{db: db}
}

// Create 写入新职位。
func (s *JobStore) Create(ctx context.Context, job *database.JobPosting) error {
	return s.db.WithContext(ctx).Create(job).Error
}

// FindByID 按 ID 查找职位。未找到时返回 gorm.ErrRecordNotFound。
func (s *JobStore) FindByID(ctx context.Context, id uint) (*database.JobPosting, error) {
	var job database.JobPosting
	if err := s.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListAll 返回全部职位，最新发布的在前。不分页。
func (s *JobStore) ListAll(ctx context.Context) ([]database.JobPosting, error) {
	var jobs []database.JobPosting
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListByPoster 返回指定企业发布的全部职位。
func (s *JobStore) ListByPoster(ctx context.Context, postedBy string) ([]database.JobPosting, error) {
	var jobs []database.JobPosting
	if err := s.db.WithContext(ctx).
		Where("posted_by = ?", postedBy).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
