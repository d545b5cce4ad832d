package main

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/thanushri8950/BookHivewebapp/internal/data"
	"github.com/thanushri8950/BookHivewebapp/internal/jsonlog"
)

// newTestApplication wires a full application over a throwaway SQLite
// database with the default seed accounts and an in-memory session store.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := data.Migrate(db, "sqlite3"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := data.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	templateCache, err := newTemplateCache()
	if err != nil {
		t.Fatalf("template cache: %v", err)
	}

	return &application{
		logger:        jsonlog.New(io.Discard, jsonlog.LevelInfo),
		models:        data.NewModels(db),
		session:       scs.New(),
		templateCache: templateCache,
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	ts.Client().Jar = jar

	// Redirects are assertions in these tests, not plumbing.
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

func (ts *testServer) get(t *testing.T, urlPath string) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().Get(ts.URL + urlPath)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}
	return rs.StatusCode, rs.Header, string(body)
}

func (ts *testServer) postForm(t *testing.T, urlPath string, form url.Values) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().PostForm(ts.URL+urlPath, form)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}
	return rs.StatusCode, rs.Header, string(body)
}

// login authenticates the test client's session as the given seed account.
func (ts *testServer) login(t *testing.T, username, password, role string) {
	t.Helper()

	status, header, _ := ts.postForm(t, "/login/"+role, url.Values{
		"username": {username},
		"password": {password},
	})
	if status != http.StatusSeeOther {
		t.Fatalf("login as %s: want redirect, got status %d", username, status)
	}
	if loc := header.Get("Location"); loc != homeFor(role) {
		t.Fatalf("login as %s: redirected to %q", username, loc)
	}
}
