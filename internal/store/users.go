// Package store 提供各业务表的仓储访问器。
// 处理器不直接拼 GORM 查询，而是通过这里的类型化方法读写记录。
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"workhub/internal/database"
)

// ErrDuplicate 表示写入与已有记录冲突（用户名或申请唯一索引）。
var ErrDuplicate = errors.New("record already exists")

// UserStore 负责账号记录的读写。
type UserStore struct {
	db *gorm.DB
}

// NewUserStore 构造 UserStore。
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername 按用户名查找账号。未找到时返回 gorm.ErrRecordNotFound。
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken 报告用户名是否已被占用。
func (s *UserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Create 写入新账号。唯一索引冲突转换为 ErrDuplicate。
func (s *UserStore) Create(ctx context.Context, user *database.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
