package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workhub/internal/database"
)

// ApplicationStore 负责申请记录的读写。
type ApplicationStore struct {
	db *gorm.DB
}

// NewApplicationStore 构造 ApplicationStore。
func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Create 写入新申请。(job, applicant) 联合唯一索引冲突转换为 ErrDuplicate。
func (s *ApplicationStore) Create(ctx context.Context, app *database.Application) error {
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Exists 报告指定求职者是否已经申请过指定职位。
func (s *ApplicationStore) Exists(ctx context.Context, jobID uint, applicant string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&database.Application{}).
		Where("job_posting_id = ? AND applicant_username = ?", jobID, applicant).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByApplicant 返回指定求职者的全部申请，最近提交的在前，
// 并预加载每条申请引用的职位。
func (s *ApplicationStore) ListByApplicant(ctx context.Context, applicant string) ([]database.Application, error) {
	var apps []database.Application
	if err := s.db.WithContext(ctx).
		Preload("JobPosting").
		Where("applicant_username = ?", applicant).
		Order("submitted_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByJob 返回指定职位收到的全部申请，最近提交的在前。
func (s *ApplicationStore) ListByJob(ctx context.Context, jobID uint) ([]database.Application, error) {
	var apps []database.Application
	if err := s.db.WithContext(ctx).
		Preload("JobPosting").
		Where("job_posting_id = ?", jobID).
		Order("submitted_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByJobIDs 返回一组职位收到的全部申请，最近提交的在前。
func (s *ApplicationStore) ListByJobIDs(ctx context.Context, jobIDs []uint) ([]database.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	var apps []database.Application
	if err := s.db.WithContext(ctx).
		Preload("JobPosting").
		Where("job_posting_id IN ?", jobIDs).
		Order("submitted_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}
