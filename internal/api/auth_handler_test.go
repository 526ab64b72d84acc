package api

import (
	"net/http"
	"net/url"
	"testing"

	"workhub/internal/database"
)

func TestSignupLoginRoundtripKeepsRole(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	signupWorker(t, router, "ravi", "secret-pass")
	signupBusiness(t, router, "acme@co.com", "pw1")

	w := postForm(t, router, "/loginpage", url.Values{
		"username": {"ravi"},
		"password": {"secret-pass"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("worker login: expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w)

	w = get(t, router, "/dashboard", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/workerprofile" {
		t.Fatalf("worker dashboard: got %d -> %q", w.Code, w.Header().Get("Location"))
	}

	w = postForm(t, router, "/loginpage", url.Values{
		"username": {"acme@co.com"},
		"password": {"pw1"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("business login: expected 303 got %d body=%s", w.Code, w.Body.String())
	}
	cookie = sessionCookie(t, w)

	w = get(t, router, "/dashboard", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/companyprofile" {
		t.Fatalf("business dashboard: got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestSignupStoresHashedPassword(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	signupWorker(t, router, "ravi", "secret-pass")

	var user database.User
	if err := db.Where("username = ?", "ravi").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.PasswordHash == "secret-pass" || user.PasswordHash == "" {
		t.Fatalf("password stored in plaintext or empty: %q", user.PasswordHash)
	}
	if user.Role != database.RoleWorker {
		t.Fatalf("role = %q, want %q", user.Role, database.RoleWorker)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	signupWorker(t, router, "ravi", "secret-pass")

	w := postForm(t, router, "/signup", url.Values{
		"username": {"ravi"},
		"password": {"other-pass"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup: expected 400 got %d", w.Code)
	}

	var count int64
	if err := db.Model(&database.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("user count = %d, want 1", count)
	}
}

func TestSignupMissingFields(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := postForm(t, router, "/signup", url.Values{"username": {"ravi"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password: expected 400 got %d", w.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	signupWorker(t, router, "ravi", "secret-pass")

	w := postForm(t, router, "/loginpage", url.Values{
		"username": {"ravi"},
		"password": {"wrong"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401 got %d", w.Code)
	}
	if w.Body.String() != "Invalid credentials" {
		t.Fatalf("body = %q, want Invalid credentials", w.Body.String())
	}

	w = postForm(t, router, "/loginpage", url.Values{
		"username": {"nobody"},
		"password": {"whatever"},
	})
	if w.Code != http.StatusUnauthorized || w.Body.String() != "Invalid credentials" {
		t.Fatalf("unknown user: got %d body=%q", w.Code, w.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	cookie := signupWorker(t, router, "ravi", "secret-pass")

	w := get(t, router, "/logout", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("logout: got %d -> %q", w.Code, w.Header().Get("Location"))
	}

	res := w.Result()
	defer res.Body.Close()
	cleared := false
	for _, c := range res.Cookies() {
		if c.Name == cookie.Name && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie was not cleared")
	}
}

func TestDashboardAnonymousGoesToLoginChooser(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	w := get(t, router, "/dashboard")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/logintype" {
		t.Fatalf("anonymous dashboard: got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}
