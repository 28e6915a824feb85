package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testCookies() SessionCookies {
	return SessionCookies{
		Name:   "portfolio_session",
		TTL:    time.Hour,
		Secure: true,
	}
}

func TestSessionCookieIssue(t *testing.T) {
	rec := httptest.NewRecorder()
	testCookies().Issue(rec, "the-token")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != "portfolio_session" || c.Value != "the-token" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if !c.Secure {
		t.Fatal("cookie must be Secure")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("SameSite = %v, want Lax", c.SameSite)
	}
	if c.Path != "/" {
		t.Fatalf("Path = %q, want /", c.Path)
	}
	if c.MaxAge != 3600 {
		t.Fatalf("MaxAge = %d, want 3600", c.MaxAge)
	}
}

func TestSessionCookieClear(t *testing.T) {
	rec := httptest.NewRecorder()
	testCookies().Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Value != "" {
		t.Fatalf("cleared cookie still has value %q", c.Value)
	}
	if c.MaxAge >= 0 {
		t.Fatalf("cleared cookie MaxAge = %d, want negative", c.MaxAge)
	}
}

func TestSessionCookieRead(t *testing.T) {
	sc := testCookies()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := sc.Read(req); got != "" {
		t.Fatalf("Read without cookie = %q, want empty", got)
	}

	req.AddCookie(&http.Cookie{Name: sc.Name, Value: "the-token"})
	if got := sc.Read(req); got != "the-token" {
		t.Fatalf("Read = %q, want the-token", got)
	}
}
