package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
)

func postJSON(t *testing.T, target string, payload any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestCreatePagePersistsAndRegistersRoute(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/admin/api/pages", map[string]string{
		"title":  "Returns",
		"slug":   "returns",
		"markup": "<div><h2>Our return policy</h2></div>",
	})

	api.CreatePage(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	route, ok := api.registry.Lookup("/returns")
	if !ok {
		t.Fatal("expected /returns to be registered after create")
	}
	if route.Title != "Returns" {
		t.Fatalf("expected route title Returns, got %q", route.Title)
	}
}

func TestCreatePageRejectsInvalidMarkup(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/admin/api/pages", map[string]string{
		"title":  "Broken",
		"slug":   "broken",
		"markup": "<div><UnknownComp /></div>",
	})

	api.CreatePage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.DB.Model(&db.Page{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no page rows after rejected create, found %d", count)
	}
	if _, ok := api.registry.Lookup("/broken"); ok {
		t.Fatal("rejected page must not be routable")
	}
}

func TestCreatePageDuplicateSlugConflicts(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	first, c := postJSON(t, "/admin/api/pages", map[string]string{
		"title": "One", "slug": "shared", "markup": "<p>one</p>",
	})
	api.CreatePage(c)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected first create to succeed, got %d", first.Code)
	}

	second, c := postJSON(t, "/admin/api/pages", map[string]string{
		"title": "Two", "slug": "shared", "markup": "<p>two</p>",
	})
	api.CreatePage(c)
	if second.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", second.Code, second.Body.String())
	}
}

func TestValidatePageMarkup(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/admin/api/pages/validate", map[string]string{
		"markup": "<div><p>fine</p></div>",
	})
	api.ValidatePageMarkup(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for valid markup, got %d", w.Code)
	}

	w, c = postJSON(t, "/admin/api/pages/validate", map[string]string{
		"markup": "<div><p>open",
	})
	api.ValidatePageMarkup(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unclosed markup, got %d", w.Code)
	}

	var count int64
	db.DB.Model(&db.Page{}).Count(&count)
	if count != 0 {
		t.Fatalf("validation endpoint must not persist pages, found %d rows", count)
	}
}

func TestUpdatePageRefreshesRoute(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/admin/api/pages", map[string]string{
		"title": "FAQ", "slug": "faq", "markup": "<p>v1</p>",
	})
	api.CreatePage(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected create to succeed, got %d", w.Code)
	}

	var page db.Page
	if err := db.DB.Where("slug = ?", "faq").First(&page).Error; err != nil {
		t.Fatalf("failed to load created page: %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"title": "FAQ", "slug": "help", "markup": "<p>v2</p>",
	})
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/api/pages/1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	api.UpdatePage(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if _, ok := api.registry.Lookup("/faq"); ok {
		t.Fatal("old route must disappear after slug change")
	}
	route, ok := api.registry.Lookup("/help")
	if !ok {
		t.Fatal("expected new route /help to be registered")
	}
	if route.Markup != "<p>v2</p>" {
		t.Fatalf("expected updated markup, got %q", route.Markup)
	}
}

func TestDeletePageRemovesRoute(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	w, c := postJSON(t, "/admin/api/pages", map[string]string{
		"title": "Temp", "slug": "temp", "markup": "<p>temp</p>",
	})
	api.CreatePage(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected create to succeed, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/api/pages/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	api.DeletePage(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := api.registry.Lookup("/temp"); ok {
		t.Fatal("deleted page must not be routable")
	}
}
