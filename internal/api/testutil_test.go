package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workhub/internal/api/middleware"
	"workhub/internal/auth"
	"workhub/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	return newTestRouterWithStorage(t, db, nil)
}

func newTestRouterWithStorage(t *testing.T, db *gorm.DB, imageStorage ListingImageStorage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessionService, err := auth.NewSessionService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("session service: %v", err)
	}

	// 指向不存在的 Redis；登录限流对计数错误是放行的。
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})

	router := NewRouter(logger)
	RegisterRoutes(router, db, sessionService, redisClient, logger, imageStorage, "", 1000)
	return router
}

func postForm(t *testing.T, router *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("no session cookie in response (status %d)", w.Code)
	return nil
}

func signupWorker(t *testing.T, router *gin.Engine, username, password string) *http.Cookie {
	t.Helper()
	w := postForm(t, router, "/signup", url.Values{
		"username": {username},
		"password": {password},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("worker signup: expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}

func signupBusiness(t *testing.T, router *gin.Engine, email, password string) *http.Cookie {
	t.Helper()
	w := postForm(t, router, "/businesssignup", url.Values{
		"email":    {email},
		"password": {password},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("business signup: expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}

func postJob(t *testing.T, router *gin.Engine, cookie *http.Cookie, title string) {
	t.Helper()
	w := postForm(t, router, "/jobpost", url.Values{
		"title":       {title},
		"category":    {"Engineering"},
		"location":    {"Pune"},
		"experience":  {"2 years"},
		"shift":       {"Day"},
		"salary":      {"₹30,000"},
		"contact":     {"hr@acme.example"},
		"description": {"Operate and maintain the line."},
	}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("job post: expected 303 got %d body=%s", w.Code, w.Body.String())
	}
}

func applyForm(jobID uint) url.Values {
	return url.Values{
		"job_id":       {fmt.Sprintf("%d", jobID)},
		"full_name":    {"Asha Kumar"},
		"email":        {"asha@example.com"},
		"phone":        {"9876543210"},
		"experience":   {"3 years"},
		"cover_letter": {"I would be a great fit."},
	}
}
