package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"workhub/internal/api/middleware"
	"workhub/internal/auth"
	"workhub/internal/store"
)

// RegisterRoutes 注册全部页面路由。imageStorage 为 nil 时配图功能停用。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	sessionService *auth.SessionService,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	imageStorage ListingImageStorage,
	clamdAddr string,
	loginRateLimitPerHour int,
) {
	users := store.NewUserStore(db)
	jobs := store.NewJobStore(db)
	applications := store.NewApplicationStore(db)
	listings := store.NewListingStore(db)

	authHandler := NewAuthHandler(users, sessionService, redisClient, logger, loginRateLimitPerHour)
	workerHandler := NewWorkerHandler(jobs, applications, logger)
	businessHandler := NewBusinessHandler(jobs, applications, listings, imageStorage, clamdAddr, logger)

	router.Use(middleware.SessionIdentity(sessionService))

	router.GET("/", authHandler.Index)
	router.GET("/signup", authHandler.ShowSignup)
	router.POST("/signup", authHandler.Signup)
	router.GET("/businesssignup", authHandler.ShowBusinessSignup)
	router.POST("/businesssignup", authHandler.BusinessSignup)
	router.GET("/loginpage", authHandler.ShowLogin)
	router.POST("/loginpage", authHandler.Login)
	router.GET("/logintype", authHandler.LoginType)
	router.GET("/dashboard", authHandler.Dashboard)
	router.GET("/logout", authHandler.Logout)

	workerGroup := router.Group("/")
	workerGroup.Use(middleware.RequireWorker())
	{
		workerGroup.GET("/workerprofile", workerHandler.Profile)
		workerGroup.GET("/jobportal", workerHandler.JobPortal)
		workerGroup.GET("/apply", workerHandler.ShowApply)
		workerGroup.POST("/apply", workerHandler.Apply)
	}

	businessGroup := router.Group("/")
	businessGroup.Use(middleware.RequireBusiness())
	{
		businessGroup.GET("/companyprofile", businessHandler.CompanyProfile)
		businessGroup.GET("/jobpost", businessHandler.ShowJobPost)
		businessGroup.POST("/jobpost", businessHandler.JobPost)
		businessGroup.GET("/application", businessHandler.Applications)
		businessGroup.GET("/homeb2b", businessHandler.HomeB2B)
		businessGroup.GET("/b2bsell", businessHandler.ShowB2BSell)
		businessGroup.POST("/b2bsell", businessHandler.B2BSell)
		businessGroup.GET("/b2bbuy", businessHandler.B2BBuy)
		businessGroup.GET("/hostseller", businessHandler.ShowHostSeller)
		businessGroup.POST("/hostseller", businessHandler.HostSeller)
	}
}
