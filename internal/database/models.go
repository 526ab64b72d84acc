package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 角色取值。注册时确定，之后不可变更。
const (
	RoleWorker   = "user"
	RoleBusiness = "business"
)

// 列表项状态默认值。
const (
	ApplicationStatusPending = "pending"
	SellItemStatusAvailable  = "available"
	BuyItemStatusOpen        = "open"
)

// User 表示系统中的账号信息。企业账号以邮箱作为用户名。
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string `gorm:"size:255"`
	Role         string `gorm:"size:16;index"`
}

// JobPosting 表示企业发布的职位。PostedBy 按约定指向 business 角色用户。
type JobPosting struct {
	gorm.Model
	Title        string        `gorm:"size:255"`
	Category     string        `gorm:"size:64"`
	Location     string        `gorm:"size:128"`
	Experience   string        `gorm:"size:64"`
	Shift        string        `gorm:"size:64"`
	Salary       string        `gorm:"size:64"`
	Contact      string        `gorm:"size:128"`
	Description  string        `gorm:"type:text"`
	PostedBy     string        `gorm:"size:64;index"`
	Applications []Application `gorm:"foreignKey:JobPostingID"`
}

// Application 表示求职者针对某个职位提交的申请。
// (JobPostingID, ApplicantUsername) 的联合唯一索引在存储层阻止重复申请，
// 关闭先查后插的竞态窗口。
type Application struct {
	gorm.Model
	JobPostingID      uint       `gorm:"index;uniqueIndex:idx_job_applicant"`
	JobPosting        JobPosting `gorm:"foreignKey:JobPostingID"`
	ApplicantUsername string     `gorm:"size:64;uniqueIndex:idx_job_applicant"`
	FullName          string     `gorm:"size:128"`
	Email             string     `gorm:"size:128"`
	Phone             string     `gorm:"size:32"`
	Experience        string     `gorm:"size:64"`
	CoverLetter       string     `gorm:"type:text"`
	Status            string     `gorm:"size:32;default:pending"`
	SubmittedAt       time.Time  `gorm:"index"`
}

// SellItem 表示 B2B 出售信息。Price 与 Quantity 由自由文本解析得出。
type SellItem struct {
	gorm.Model
	Name        string `gorm:"size:128"`
	Price       float64
	Quantity    float64
	Description string `gorm:"type:text"`
	ImageKey    string `gorm:"size:512"`
	Status      string `gorm:"size:32;default:available"`
	PostedBy    string `gorm:"size:64;index"`
	Category    string `gorm:"size:64"`
	Location    string `gorm:"size:128"`
	ListedOn    datatypes.Date
}

// BuyItem 表示 B2B 求购信息。Budget 为空指针时表示"价格面议"。
type BuyItem struct {
	gorm.Model
	Name        string `gorm:"size:128"`
	Budget      *float64
	Quantity    float64
	Description string `gorm:"type:text"`
	ImageKey    string `gorm:"size:512"`
	Status      string `gorm:"size:32;default:open"`
	PostedBy    string `gorm:"size:64;index"`
	Category    string `gorm:"size:64"`
	Location    string `gorm:"size:128"`
	ListedOn    datatypes.Date
}
