package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupRouterTestDB 准备测试数据库；路由引擎由各用例在完成数据
// 准备后自行构建，以覆盖启动时的路由表重建逻辑。
func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inkwell_test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.Profile{}, &db.Category{}, &db.Post{}, &db.PostVisit{},
		&db.Comment{}, &db.Page{}, &db.SiteSetting{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func TestPingRoute(t *testing.T) {
	setupRouterTestDB(t)
	r := SetupRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("unexpected ping body: %s", w.Body.String())
	}
}

func TestCustomPageServedOnUnmatchedRoute(t *testing.T) {
	gdb := setupRouterTestDB(t)

	// 页面先落库，启动时的路由表构建应直接看到它。
	page := db.Page{
		Title:  "Returns",
		Slug:   "returns",
		Markup: "<div><h2>Our return policy</h2></div>",
	}
	if err := gdb.Create(&page).Error; err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	r := SetupRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/returns", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Our return policy") {
		t.Fatalf("expected custom page content, got: %s", w.Body.String())
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	setupRouterTestDB(t)
	r := SetupRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	setupRouterTestDB(t)
	r := SetupRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestLoginGrantsAdminAccess(t *testing.T) {
	setupRouterTestDB(t)
	if err := db.EnsureAdmin("admin@example.com", "s3cret"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	r := SetupRouter("test-secret")

	login := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewReader([]byte(`{"email":"admin@example.com","password":"s3cret"}`)))
	loginReq.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(login, loginReq)

	if login.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d: %s", login.Code, login.Body.String())
	}
	cookies := login.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected login to set a session cookie")
	}

	dash := httptest.NewRecorder()
	dashReq := httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil)
	for _, cookie := range cookies {
		dashReq.AddCookie(cookie)
	}
	r.ServeHTTP(dash, dashReq)

	if dash.Code != http.StatusOK {
		t.Fatalf("expected dashboard access with session, got %d: %s", dash.Code, dash.Body.String())
	}
}

func TestPublicPostsRoute(t *testing.T) {
	setupRouterTestDB(t)
	r := SetupRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}
