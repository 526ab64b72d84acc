package api

import (
	"errors"
	"log/slog"
	"net/http"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"workhub/internal/api/middleware"
	"workhub/internal/auth"
	"workhub/internal/database"
	"workhub/internal/store"
)

// AuthHandler 处理注册、登录、角色分流与退出。
type AuthHandler struct {
	users                 *store.UserStore
	sessionService        *auth.SessionService
	redis                 redis.UniversalClient
	logger                *slog.Logger
	loginRateLimitPerHour int
}

// NewAuthHandler 构造认证处理器。
func NewAuthHandler(users *store.UserStore, sessionService *auth.SessionService, redisClient redis.UniversalClient, logger *slog.Logger, loginRateLimitPerHour int) *AuthHandler {
	return &AuthHandler{
		users:                 users,
		sessionService:        sessionService,
		redis:                 redisClient,
		logger:                logger,
		loginRateLimitPerHour: loginRateLimitPerHour,
	}
}

// Index 渲染落地页。
func (h *AuthHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// ShowSignup 渲染求职者注册页。
func (h *AuthHandler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// Signup 创建求职者账号并建立会话。
func (h *AuthHandler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	h.signup(c, username, password, database.RoleWorker)
}

// ShowBusinessSignup 渲染企业注册页。
func (h *AuthHandler) ShowBusinessSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "businesssignup.html", gin.H{})
}

// BusinessSignup 创建企业账号（以邮箱作为用户名）并建立会话。
func (h *AuthHandler) BusinessSignup(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	h.signup(c, email, password, database.RoleBusiness)
}

func (h *AuthHandler) signup(c *gin.Context, username, password, role string) {
	if username == "" || password == "" {
		BadRequest(c, "username and password are required")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(
		slog.String("username", username),
		slog.String("role", role),
	)

	taken, err := h.users.UsernameTaken(ctx, username)
	if err != nil {
		logger.Error("signup lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if taken {
		logger.Info("signup conflict: user already exists")
		BadRequest(c, "username already taken")
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	user := database.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := h.users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			BadRequest(c, "username already taken")
			return
		}
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.establishSession(c, &user); err != nil {
		logger.Error("establish session failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ShowLogin 渲染登录页。user_type 查询参数仅用于预选表单中的角色。
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"UserType": c.Query("user_type"),
	})
}

// Login 校验口令并建立会话。
func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		BadRequest(c, "username and password are required")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(
		slog.String("username", username),
	)

	// 速率限制：每 IP+用户名 每小时固定次数。Redis 不可用时放行。
	ip := c.ClientIP()
	rateKey := "rate:login:" + ip + ":" + strings.ToLower(username) + ":" + time.Now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		count = 0
	}
	if count > int64(h.loginRateLimitPerHour) {
		Error(c, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	user, err := h.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Info("login failed: user not found")
			Unauthorized(c, "Invalid credentials")
			return
		}
		logger.Error("login query failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		Unauthorized(c, "Invalid credentials")
		return
	}

	if err := h.establishSession(c, user); err != nil {
		logger.Error("establish session failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// LoginType 渲染角色选择页。
func (h *AuthHandler) LoginType(c *gin.Context) {
	c.HTML(http.StatusOK, "logintype.html", gin.H{})
}

// Dashboard 按会话角色分流：求职者去个人主页，企业去公司主页，
// 未登录去角色选择页。无状态且幂等。
func (h *AuthHandler) Dashboard(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/logintype")
		return
	}

	switch identity.Role {
	case database.RoleWorker:
		c.Redirect(http.StatusFound, "/workerprofile")
	case database.RoleBusiness:
		c.Redirect(http.StatusFound, "/companyprofile")
	default:
		c.Redirect(http.StatusFound, "/logintype")
	}
}

// Logout 清除会话 Cookie。
func (h *AuthHandler) Logout(c *gin.Context) {
	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
	})
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) establishSession(c *gin.Context, user *database.User) error {
	token, err := h.sessionService.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return err
	}

	maxAge := int(h.sessionService.TTL().Seconds())
	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
		Expires:  time.Now().Add(h.sessionService.TTL()),
	})
	return nil
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func (h *AuthHandler) isHTTPSRequest(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request.Header.Get("X-Forwarded-Proto"), "https")
}
