package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	isLib "github.com/matryer/is"

	"github.com/devyanshh69/feedback-box-backend/internal/auth"
	"github.com/devyanshh69/feedback-box-backend/internal/board"
	"github.com/devyanshh69/feedback-box-backend/internal/identity"
	"github.com/devyanshh69/feedback-box-backend/internal/models"
	"github.com/devyanshh69/feedback-box-backend/internal/storage"
)

func setupHandlers(t *testing.T) {
	t.Helper()
	backend := storage.NewMemoryStore()
	store, err := board.New(context.Background(), backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	allocator := identity.NewAllocator(backend)
	verifier := auth.StaticVerifier{Username: "admin", Password: "secret"}
	Init(store, auth.NewSessions(backend, allocator, verifier))
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func signinStudent(t *testing.T, email string) {
	t.Helper()
	w := doJSON(t, StudentSignin, http.MethodPost, "/api/auth/student/signin", StudentSigninRequest{
		Email:    email,
		Password: "pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("student signin: status %d", w.Code)
	}
}

func signinAdmin(t *testing.T) {
	t.Helper()
	w := doJSON(t, AdminSignin, http.MethodPost, "/api/auth/admin/signin", AdminSigninRequest{
		Username: "admin",
		Password: "secret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin signin: status %d", w.Code)
	}
}

func submit(t *testing.T, category, customCategory, content string) models.Feedback {
	t.Helper()
	w := doJSON(t, SubmitFeedback, http.MethodPost, "/api/feedback", SubmitFeedbackRequest{
		Category:       category,
		CustomCategory: customCategory,
		Content:        content,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: status %d body %s", w.Code, w.Body.String())
	}
	var resp FeedbackResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	return *resp.Feedback
}

func TestSubmitRequiresSession(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)

	w := doJSON(t, SubmitFeedback, http.MethodPost, "/api/feedback", SubmitFeedbackRequest{
		Category: "hostel",
		Content:  "no session",
	})
	is.Equal(w.Code, http.StatusUnauthorized)
}

func TestSubmitAndListFlow(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)
	signinStudent(t, "a@x.com")

	f := submit(t, "hostel", "", "the hostel wifi is down")
	is.Equal(f.Status, models.StatusPending)
	is.Equal(f.AuthorName, "Anonymous123")
	is.Equal(f.AuthorID, "stu_a@x.com")

	submit(t, models.CategoryOthers, "Wifi", "campus wifi is slow")

	w := doJSON(t, GetFeedbacks, http.MethodGet, "/api/feedback", nil)
	is.Equal(w.Code, http.StatusOK)
	var list GetFeedbacksResponse
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &list))
	is.Equal(list.Total, 2)
	is.Equal(list.Feedbacks[0].CustomCategory, "Wifi") // newest first

	// Filter by custom topic.
	w = doJSON(t, GetFeedbacks, http.MethodGet, "/api/feedback?category=Wifi", nil)
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &list))
	is.Equal(list.Total, 1)

	// "others" does not match the record carrying a custom topic.
	w = doJSON(t, GetFeedbacks, http.MethodGet, "/api/feedback?category=others", nil)
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &list))
	is.Equal(list.Total, 0)
}

func TestSubmitRejectsEmptyContent(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)
	signinStudent(t, "a@x.com")

	w := doJSON(t, SubmitFeedback, http.MethodPost, "/api/feedback", SubmitFeedbackRequest{
		Category: "hostel",
		Content:  "   ",
	})
	is.Equal(w.Code, http.StatusBadRequest)
}

func TestAdminCannotSubmit(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)
	signinAdmin(t)

	w := doJSON(t, SubmitFeedback, http.MethodPost, "/api/feedback", SubmitFeedbackRequest{
		Category: "hostel",
		Content:  "admin feedback",
	})
	is.Equal(w.Code, http.StatusForbidden)
}

func TestVoteAndCommentFlow(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)
	signinStudent(t, "a@x.com")
	f := submit(t, "hostel", "", "vote on me")

	// Another student votes.
	signinStudent(t, "b@x.com")
	w := doJSON(t, ToggleVote, http.MethodPost, "/api/feedback/vote", ToggleVoteRequest{FeedbackID: f.ID})
	is.Equal(w.Code, http.StatusOK)
	var resp FeedbackResponse
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &resp))
	is.Equal(len(resp.Feedback.Votes), 1)

	// Toggling again removes the vote.
	w = doJSON(t, ToggleVote, http.MethodPost, "/api/feedback/vote", ToggleVoteRequest{FeedbackID: f.ID})
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &resp))
	is.Equal(len(resp.Feedback.Votes), 0)

	w = doJSON(t, AddComment, http.MethodPost, "/api/feedback/comment", AddCommentRequest{
		FeedbackID: f.ID,
		Text:       "agreed",
	})
	is.Equal(w.Code, http.StatusCreated)
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &resp))
	is.Equal(len(resp.Feedback.Comments), 1)
	is.Equal(resp.Feedback.Comments[0].AuthorName, "Anonymous124")

	// Unknown feedback id.
	w = doJSON(t, ToggleVote, http.MethodPost, "/api/feedback/vote", ToggleVoteRequest{FeedbackID: "missing"})
	is.Equal(w.Code, http.StatusNotFound)
}

func TestModerationFlow(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)
	signinStudent(t, "a@x.com")
	f := submit(t, "hostel", "", "moderate me")

	// Students cannot moderate.
	w := doJSON(t, SetFeedbackStatus, http.MethodPut, "/api/admin/feedback/status", SetStatusRequest{
		FeedbackID: f.ID,
		Status:     models.StatusAccepted,
	})
	is.Equal(w.Code, http.StatusForbidden)

	signinAdmin(t)
	w = doJSON(t, SetFeedbackStatus, http.MethodPut, "/api/admin/feedback/status", SetStatusRequest{
		FeedbackID: f.ID,
		Status:     models.StatusAccepted,
	})
	is.Equal(w.Code, http.StatusOK)
	var resp FeedbackResponse
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &resp))
	is.Equal(resp.Feedback.Status, models.StatusAccepted)

	// Accepted records can be re-denied.
	w = doJSON(t, SetFeedbackStatus, http.MethodPut, "/api/admin/feedback/status", SetStatusRequest{
		FeedbackID: f.ID,
		Status:     models.StatusDenied,
	})
	is.Equal(w.Code, http.StatusOK)

	w = doJSON(t, SetFeedbackStatus, http.MethodPut, "/api/admin/feedback/status", SetStatusRequest{
		FeedbackID: f.ID,
		Status:     "archived",
	})
	is.Equal(w.Code, http.StatusBadRequest)
}

func TestSummary(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)
	signinStudent(t, "a@x.com")
	a := submit(t, "hostel", "", "one")
	submit(t, "hostel", "", "two")
	submit(t, models.CategoryOthers, "Wifi", "three")

	signinAdmin(t)
	doJSON(t, SetFeedbackStatus, http.MethodPut, "/api/admin/feedback/status", SetStatusRequest{
		FeedbackID: a.ID,
		Status:     models.StatusAccepted,
	})

	w := doJSON(t, GetSummary, http.MethodGet, "/api/admin/summary", nil)
	is.Equal(w.Code, http.StatusOK)
	var resp SummaryResponse
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &resp))
	is.Equal(resp.Total, 3)
	is.Equal(resp.Summary["hostel"].Total, 2)
	is.Equal(resp.Summary["hostel"].Accepted, 1)
	is.Equal(resp.Summary["hostel"].Pending, 1)
	is.Equal(resp.Summary["Wifi"].Total, 1)
}

func TestSignoutAndMe(t *testing.T) {
	is := isLib.New(t)
	setupHandlers(t)

	w := doJSON(t, GetMe, http.MethodGet, "/api/auth/me", nil)
	is.Equal(w.Code, http.StatusUnauthorized)

	signinStudent(t, "a@x.com")
	w = doJSON(t, GetMe, http.MethodGet, "/api/auth/me", nil)
	is.Equal(w.Code, http.StatusOK)
	var resp AuthResponse
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &resp))
	is.Equal(resp.User.Name, "Anonymous123")

	w = doJSON(t, Signout, http.MethodPost, "/api/auth/signout", nil)
	is.Equal(w.Code, http.StatusOK)
	w = doJSON(t, GetMe, http.MethodGet, "/api/auth/me", nil)
	is.Equal(w.Code, http.StatusUnauthorized)
}
