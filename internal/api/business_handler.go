package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"workhub/internal/api/middleware"
	"workhub/internal/database"
	"workhub/internal/listing"
	"workhub/internal/store"
)

// 表单留空时的兜底取值。
const (
	defaultCategory = "General"
	defaultLocation = "Not specified"
)

// BusinessHandler 处理企业侧的职位发布、申请查看与 B2B 买卖信息。
type BusinessHandler struct {
	jobs         *store.JobStore
	applications *store.ApplicationStore
	listings     *store.ListingStore
	storage      ListingImageStorage
	clamdAddr    string
	logger       *slog.Logger
}

// NewBusinessHandler 构造 BusinessHandler。storageClient 为 nil 时
// 表单中的配图被忽略。
func NewBusinessHandler(jobs *store.JobStore, applications *store.ApplicationStore, listings *store.ListingStore, storageClient ListingImageStorage, clamdAddr string, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{
		jobs:         jobs,
		applications: applications,
		listings:     listings,
		storage:      storageClient,
		clamdAddr:    clamdAddr,
		logger:       logger,
	}
}

// CompanyProfile 渲染公司主页。
func (h *BusinessHandler) CompanyProfile(c *gin.Context) {
	identity, _ := middleware.IdentityFromContext(c)
	c.HTML(http.StatusOK, "companyprofile.html", gin.H{
		"Username": identity.Username,
	})
}

// ShowJobPost 渲染职位发布表单。
func (h *BusinessHandler) ShowJobPost(c *gin.Context) {
	c.HTML(http.StatusOK, "jobpost.html", gin.H{})
}

// JobPost 校验表单并写入职位，归属当前企业身份。
func (h *BusinessHandler) JobPost(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/logintype")
		return
	}

	job := database.JobPosting{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		Location:    strings.TrimSpace(c.PostForm("location")),
		Experience:  strings.TrimSpace(c.PostForm("experience")),
		Shift:       strings.TrimSpace(c.PostForm("shift")),
		Salary:      strings.TrimSpace(c.PostForm("salary")),
		Contact:     strings.TrimSpace(c.PostForm("contact")),
		Description: strings.TrimSpace(c.PostForm("description")),
		PostedBy:    identity.Username,
	}
	if job.Title == "" || job.Category == "" || job.Location == "" || job.Experience == "" ||
		job.Shift == "" || job.Salary == "" || job.Contact == "" || job.Description == "" {
		BadRequest(c, "all job fields are required")
		return
	}

	logger := middleware.LoggerFromContext(c).With(slog.String("posted_by", identity.Username))
	if err := h.jobs.Create(c.Request.Context(), &job); err != nil {
		logger.Error("create job posting failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("job posted", slog.Uint64("job_id", uint64(job.ID)))
	c.Redirect(http.StatusSeeOther, "/companyprofile")
}

// Applications 查看当前企业收到的申请。带 job_id 时只看该职位，
// 且职位必须属于当前企业；否则聚合企业全部职位的申请，最近的在前。
func (h *BusinessHandler) Applications(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/logintype")
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.String("business", identity.Username))

	var apps []database.Application
	if raw := strings.TrimSpace(c.Query("job_id")); raw != "" {
		jobID, err := parseJobID(raw)
		if err != nil {
			BadRequest(c, "invalid job id")
			return
		}

		job, err := h.jobs.FindByID(ctx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				NotFound(c, "job not found")
				return
			}
			logger.Error("load job failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
		if job.PostedBy != identity.Username {
			// 他人的职位按不存在处理。
			NotFound(c, "job not found")
			return
		}

		apps, err = h.applications.ListByJob(ctx, jobID)
		if err != nil {
			logger.Error("list applications failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
	} else {
		jobs, err := h.jobs.ListByPoster(ctx, identity.Username)
		if err != nil {
			logger.Error("list own jobs failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
		jobIDs := make([]uint, 0, len(jobs))
		for _, job := range jobs {
			jobIDs = append(jobIDs, job.ID)
		}

		apps, err = h.applications.ListByJobIDs(ctx, jobIDs)
		if err != nil {
			logger.Error("list applications failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
	}

	c.HTML(http.StatusOK, "applications.html", gin.H{
		"Username":     identity.Username,
		"Applications": apps,
	})
}

// HomeB2B 渲染 B2B 入口页。
func (h *BusinessHandler) HomeB2B(c *gin.Context) {
	c.HTML(http.StatusOK, "homeb2b.html", gin.H{})
}

// ShowB2BSell 渲染出售信息表单。
func (h *BusinessHandler) ShowB2BSell(c *gin.Context) {
	c.HTML(http.StatusOK, "b2bsell.html", gin.H{})
}

// B2BSell 解析表单并写入出售信息。价格与数量从自由文本提取。
func (h *BusinessHandler) B2BSell(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/logintype")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || description == "" {
		BadRequest(c, "name and description are required")
		return
	}

	quantity, err := listing.ParseAmount(c.PostForm("quantity"))
	if err != nil {
		BadRequest(c, fmt.Sprintf("invalid quantity: %v", err))
		return
	}
	price, err := listing.ParseAmount(c.PostForm("price"))
	if err != nil {
		BadRequest(c, fmt.Sprintf("invalid price: %v", err))
		return
	}

	logger := middleware.LoggerFromContext(c).With(slog.String("posted_by", identity.Username))
	imageKey, err := h.uploadListingImage(c, identity.Username)
	if err != nil {
		logger.Error("upload listing image failed", slog.Any("error", err))
		BadRequest(c, err.Error())
		return
	}

	item := database.SellItem{
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Description: description,
		ImageKey:    imageKey,
		Status:      database.SellItemStatusAvailable,
		PostedBy:    identity.Username,
		Category:    defaultString(c.PostForm("category"), defaultCategory),
		Location:    defaultString(c.PostForm("location"), defaultLocation),
		ListedOn:    datatypes.Date(time.Now()),
	}
	if err := h.listings.CreateSellItem(c.Request.Context(), &item); err != nil {
		logger.Error("create sell item failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("sell item listed", slog.Uint64("sell_id", uint64(item.ID)))
	c.Redirect(http.StatusSeeOther, "/b2bbuy")
}

// ShowHostSeller 渲染求购信息表单。
func (h *BusinessHandler) ShowHostSeller(c *gin.Context) {
	c.HTML(http.StatusOK, "hostseller.html", gin.H{})
}

// HostSeller 解析表单并写入求购信息。预算可留空或填哨兵词表示面议。
func (h *BusinessHandler) HostSeller(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/logintype")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || description == "" {
		BadRequest(c, "name and description are required")
		return
	}

	quantity, err := listing.ParseAmount(c.PostForm("quantity"))
	if err != nil {
		BadRequest(c, fmt.Sprintf("invalid quantity: %v", err))
		return
	}
	budget, err := listing.ParseBudget(c.PostForm("budget"))
	if err != nil {
		BadRequest(c, fmt.Sprintf("invalid budget: %v", err))
		return
	}

	logger := middleware.LoggerFromContext(c).With(slog.String("posted_by", identity.Username))
	imageKey, err := h.uploadListingImage(c, identity.Username)
	if err != nil {
		logger.Error("upload listing image failed", slog.Any("error", err))
		BadRequest(c, err.Error())
		return
	}

	item := database.BuyItem{
		Name:        name,
		Budget:      budget,
		Quantity:    quantity,
		Description: description,
		ImageKey:    imageKey,
		Status:      database.BuyItemStatusOpen,
		PostedBy:    identity.Username,
		Category:    defaultString(c.PostForm("category"), defaultCategory),
		Location:    defaultString(c.PostForm("location"), defaultLocation),
		ListedOn:    datatypes.Date(time.Now()),
	}
	if err := h.listings.CreateBuyItem(c.Request.Context(), &item); err != nil {
		logger.Error("create buy item failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("buy item listed", slog.Uint64("buy_id", uint64(item.ID)))
	c.Redirect(http.StatusSeeOther, "/b2bbuy")
}

// B2BBuy 渲染买卖信息板：在售的出售信息与未关闭的求购信息，
// 各按发布时间倒序。配了对象存储时把图片 Key 换成限时链接。
func (h *BusinessHandler) B2BBuy(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	sellItems, err := h.listings.ListAvailableSellItems(ctx)
	if err != nil {
		logger.Error("list sell items failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	buyItems, err := h.listings.ListOpenBuyItems(ctx)
	if err != nil {
		logger.Error("list buy items failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	sellViews := make([]sellItemView, 0, len(sellItems))
	for _, item := range sellItems {
		sellViews = append(sellViews, sellItemView{
			SellItem: item,
			ImageURL: h.resolveImageURL(c, item.ImageKey),
		})
	}
	buyViews := make([]buyItemView, 0, len(buyItems))
	for _, item := range buyItems {
		buyViews = append(buyViews, buyItemView{
			BuyItem:  item,
			ImageURL: h.resolveImageURL(c, item.ImageKey),
		})
	}

	c.HTML(http.StatusOK, "b2bbuy.html", gin.H{
		"SellItems": sellViews,
		"BuyItems":  buyViews,
	})
}

type sellItemView struct {
	database.SellItem
	ImageURL string
}

type buyItemView struct {
	database.BuyItem
	ImageURL string
}

// uploadListingImage 处理可选的配图上传：配置了 clamd 时先做病毒扫描，
// 随后写入对象存储。未提供文件或未配置存储时返回空 Key。
func (h *BusinessHandler) uploadListingImage(c *gin.Context, username string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if h.storage == nil {
		return "", nil
	}

	if h.clamdAddr != "" {
		reader, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open image: %w", err)
		}
		clamdClient := clamd.NewClamd(h.clamdAddr)
		abortChan := make(chan bool)
		scanChan, err := clamdClient.ScanStream(reader, abortChan)
		reader.Close()
		if err != nil {
			return "", fmt.Errorf("scan image: %w", err)
		}
		defer close(abortChan)
		for result := range scanChan {
			if result.Status != clamd.RES_OK {
				return "", errors.New("malicious file detected")
			}
		}
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer reader.Close()

	objectKey := fmt.Sprintf("listing-images/%s/%s", username, uuid.NewString())
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := h.storage.UploadFile(c.Request.Context(), objectKey, reader, file.Size, contentType); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return objectKey, nil
}

func (h *BusinessHandler) resolveImageURL(c *gin.Context, objectKey string) string {
	if objectKey == "" || h.storage == nil {
		return ""
	}
	url, err := h.storage.GeneratePresignedURL(c.Request.Context(), objectKey, 15*time.Minute)
	if err != nil {
		middleware.LoggerFromContext(c).Error("generate image url failed",
			slog.String("object_key", objectKey),
			slog.Any("error", err),
		)
		return ""
	}
	return url
}

func defaultString(raw, fallback string) string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}
	return fallback
}
