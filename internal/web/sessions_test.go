package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/showfinder/showfinder/internal/testutil"
)

func TestSessionStore_GetCreatesAndReuses(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(testutil.NewFakeClient(), 10, time.Hour)

	rec := httptest.NewRecorder()
	first := store.Get(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("Expected a session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("Expected HttpOnly session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	second := store.Get(rec, req)

	if first != second {
		t.Error("Expected the same widget for the same session")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("Expected no new cookie for an existing session")
	}
}

func TestSessionStore_UnknownCookieStartsNewSession(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(testutil.NewFakeClient(), 10, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	rec := httptest.NewRecorder()
	store.Get(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value == "forged" {
		t.Errorf("Expected a freshly minted session id, got %v", cookies)
	}
}

func TestSessionStore_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(testutil.NewFakeClient(), 2, time.Hour)
	for i := 0; i < 5; i++ {
		store.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	if store.Len() != 2 {
		t.Errorf("Expected store bounded at 2 sessions, got %d", store.Len())
	}
}
