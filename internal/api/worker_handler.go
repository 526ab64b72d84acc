package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workhub/internal/api/middleware"
	"workhub/internal/database"
	"workhub/internal/store"
)

// WorkerHandler 处理求职者侧的页面与申请流程。
type WorkerHandler struct {
	jobs         *store.JobStore
	applications *store.ApplicationStore
	logger       *slog.Logger
}

// NewWorkerHandler 构造 WorkerHandler。
func NewWorkerHandler(jobs *store.JobStore, applications *store.ApplicationStore, logger *slog.Logger) *WorkerHandler {
	return &WorkerHandler{
		jobs:         jobs,
		applications: applications,
		logger:       logger,
	}
}

// Profile 列出当前求职者提交过的全部申请（含引用职位），最近提交的在前。
func (h *WorkerHandler) Profile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/logintype")
		return
	}

	ctx := c.Request.Context()
	apps, err := h.applications.ListByApplicant(ctx, identity.Username)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list applications failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.HTML(http.StatusOK, "workerprofile.html", gin.H{
		"Username":     identity.Username,
		"Applications": apps,
	})
}

// JobPortal 列出全部职位，不过滤不分页。
func (h *WorkerHandler) JobPortal(c *gin.Context) {
	jobs, err := h.jobs.ListAll(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list jobs failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.HTML(http.StatusOK, "jobportal.html", gin.H{
		"Jobs": jobs,
	})
}

// ShowApply 渲染针对某个职位的申请表单。
func (h *WorkerHandler) ShowApply(c *gin.Context) {
	jobID, err := parseJobID(c.Query("job_id"))
	if err != nil {
		BadRequest(c, "invalid job id")
		return
	}

	job, err := h.jobs.FindByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "job not found")
			return
		}
		middleware.LoggerFromContext(c).Error("load job failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.HTML(http.StatusOK, "apply.html", gin.H{
		"Job": job,
	})
}

// Apply 校验表单并写入申请。同一求职者对同一职位只允许申请一次，
// 预检查之外还有存储层唯一索引兜底。
func (h *WorkerHandler) Apply(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/logintype")
		return
	}

	jobID, err := parseJobID(c.PostForm("job_id"))
	if err != nil {
		BadRequest(c, "invalid job id")
		return
	}

	fullName := strings.TrimSpace(c.PostForm("full_name"))
	email := strings.TrimSpace(c.PostForm("email"))
	phone := strings.TrimSpace(c.PostForm("phone"))
	experience := strings.TrimSpace(c.PostForm("experience"))
	coverLetter := strings.TrimSpace(c.PostForm("cover_letter"))
	if fullName == "" || email == "" || phone == "" || experience == "" || coverLetter == "" {
		BadRequest(c, "all applicant fields are required")
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(
		slog.String("applicant", identity.Username),
		slog.Uint64("job_id", uint64(jobID)),
	)

	if _, err := h.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "job not found")
			return
		}
		logger.Error("load job failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	exists, err := h.applications.Exists(ctx, jobID, identity.Username)
	if err != nil {
		logger.Error("duplicate check failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if exists {
		logger.Info("duplicate application rejected")
		BadRequest(c, "you have already applied to this job")
		return
	}

	app := database.Application{
		JobPostingID:      jobID,
		ApplicantUsername: identity.Username,
		FullName:          fullName,
		Email:             email,
		Phone:             phone,
		Experience:        experience,
		CoverLetter:       coverLetter,
		Status:            database.ApplicationStatusPending,
		SubmittedAt:       time.Now(),
	}
	if err := h.applications.Create(ctx, &app); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			BadRequest(c, "you have already applied to this job")
			return
		}
		logger.Error("create application failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("application submitted", slog.Uint64("application_id", uint64(app.ID)))
	c.Redirect(http.StatusSeeOther, "/workerprofile")
}

func parseJobID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid job id")
	}
	return uint(id), nil
}
