package api

import (
	"net/http"
	"strings"
	"testing"

	"workhub/internal/database"
)

func TestRoleGateRedirects(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	workerCookie := signupWorker(t, router, "ravi", "secret-pass")
	businessCookie := signupBusiness(t, router, "acme@co.com", "pw1")

	for _, path := range []string{"/workerprofile", "/jobportal", "/apply?job_id=1"} {
		w := get(t, router, path, businessCookie)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Errorf("business on %s: got %d -> %q, want redirect to /dashboard", path, w.Code, w.Header().Get("Location"))
		}
	}

	for _, path := range []string{"/companyprofile", "/jobpost", "/application", "/homeb2b", "/b2bsell", "/b2bbuy", "/hostseller"} {
		w := get(t, router, path, workerCookie)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
			t.Errorf("worker on %s: got %d -> %q, want redirect to /dashboard", path, w.Code, w.Header().Get("Location"))
		}
	}

	w := get(t, router, "/jobportal")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/logintype" {
		t.Errorf("anonymous on /jobportal: got %d -> %q, want redirect to /logintype", w.Code, w.Header().Get("Location"))
	}
}

func TestJobPortalListsPostings(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	businessCookie := signupBusiness(t, router, "acme@co.com", "pw1")
	postJob(t, router, businessCookie, "Line Supervisor")

	workerCookie := signupWorker(t, router, "ravi", "secret-pass")
	w := get(t, router, "/jobportal", workerCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("job portal: expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Line Supervisor") {
		t.Fatalf("job portal does not show the new posting: %s", w.Body.String())
	}
}

func TestApplyTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	businessCookie := signupBusiness(t, router, "acme@co.com", "pw1")
	postJob(t, router, businessCookie, "Line Supervisor")

	var job database.JobPosting
	if err := db.First(&job).Error; err != nil {
		t.Fatalf("load job: %v", err)
	}

	workerCookie := signupWorker(t, router, "ravi", "secret-pass")

	w := postForm(t, router, "/apply", applyForm(job.ID), workerCookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("first apply: expected 303 got %d body=%s", w.Code, w.Body.String())
	}

	w = postForm(t, router, "/apply", applyForm(job.ID), workerCookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second apply: expected 400 got %d", w.Code)
	}

	var count int64
	if err := db.Model(&database.Application{}).
		Where("job_posting_id = ? AND applicant_username = ?", job.ID, "ravi").
		Count(&count).Error; err != nil {
		t.Fatalf("count applications: %v", err)
	}
	if count != 1 {
		t.Fatalf("application count = %d, want 1", count)
	}
}

func TestApplyUnknownJob(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	workerCookie := signupWorker(t, router, "ravi", "secret-pass")

	w := postForm(t, router, "/apply", applyForm(999), workerCookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("apply to missing job: expected 404 got %d", w.Code)
	}

	w = get(t, router, "/apply?job_id=999", workerCookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("apply form for missing job: expected 404 got %d", w.Code)
	}
}

func TestApplyMissingFields(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	businessCookie := signupBusiness(t, router, "acme@co.com", "pw1")
	postJob(t, router, businessCookie, "Line Supervisor")

	var job database.JobPosting
	if err := db.First(&job).Error; err != nil {
		t.Fatalf("load job: %v", err)
	}

	workerCookie := signupWorker(t, router, "ravi", "secret-pass")
	form := applyForm(job.ID)
	form.Del("phone")

	w := postForm(t, router, "/apply", form, workerCookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing phone: expected 400 got %d", w.Code)
	}
}

func TestWorkerProfileListsOwnApplications(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(t, db)

	businessCookie := signupBusiness(t, router, "acme@co.com", "pw1")
	postJob(t, router, businessCookie, "Line Supervisor")

	var job database.JobPosting
	if err := db.First(&job).Error; err != nil {
		t.Fatalf("load job: %v", err)
	}

	workerCookie := signupWorker(t, router, "ravi", "secret-pass")
	if w := postForm(t, router, "/apply", applyForm(job.ID), workerCookie); w.Code != http.StatusSeeOther {
		t.Fatalf("apply: expected 303 got %d", w.Code)
	}

	w := get(t, router, "/workerprofile", workerCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("worker profile: expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Line Supervisor") {
		t.Fatalf("profile does not show the applied job: %s", w.Body.String())
	}
}
