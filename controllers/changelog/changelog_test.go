package changelogControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Changelog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRouter(db *gorm.DB, j *auth.JWTer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/changelog", ListChangelogs(db))
	r.GET("/changelog/:id", GetChangelog(db))

	admin := r.Group("/admin/changelog")
	admin.Use(middleware.RequireAuth(db, j, "jwt"), middleware.RequireAdmin())
	{
		admin.POST("", CreateChangelog(db))
		admin.PUT("/:id", UpdateChangelog(db))
		admin.DELETE("/:id", DeleteChangelog(db))
	}
	return r
}

func seedAdmin(t *testing.T, db *gorm.DB) (*http.Cookie, *auth.JWTer) {
	t.Helper()
	admin := models.User{Email: "admin@test.fr", PasswordHash: "-", Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "ardeco", TTL: time.Hour}
	token, err := j.Issue(admin.ID, admin.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &http.Cookie{Name: "jwt", Value: token}, j
}

func do(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChangelogListIsPublic(t *testing.T) {
	db := setupTestDB(t)
	adminCookie, j := seedAdmin(t, db)
	r := testRouter(db, j)

	body := `{"version":"1.2.0","name":"Galleries","changelog":"Gallery sharing and likes.","date":"2026-03-01"}`
	if w := do(r, http.MethodPost, "/admin/changelog", body, adminCookie); w.Code != http.StatusCreated {
		t.Fatalf("create: %d: %s", w.Code, w.Body.String())
	}

	// No session cookie at all.
	w := do(r, http.MethodGet, "/changelog", "")
	if w.Code != http.StatusOK {
		t.Fatalf("public list: %d", w.Code)
	}
	var env struct {
		Data []models.Changelog `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].Version != "1.2.0" {
		t.Errorf("unexpected listing: %+v", env.Data)
	}
}

func TestCreateChangelogRejectsBadDate(t *testing.T) {
	db := setupTestDB(t)
	adminCookie, j := seedAdmin(t, db)
	r := testRouter(db, j)

	body := `{"version":"1.2.1","date":"03/01/2026"}`
	if w := do(r, http.MethodPost, "/admin/changelog", body, adminCookie); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestChangelogAdminGate(t *testing.T) {
	db := setupTestDB(t)
	_, j := seedAdmin(t, db)
	r := testRouter(db, j)

	client := models.User{Email: "client@test.fr", PasswordHash: "-", Role: models.RoleClient}
	db.Create(&client)
	token, _ := j.Issue(client.ID, client.Email)
	clientCookie := &http.Cookie{Name: "jwt", Value: token}

	body := `{"version":"2.0.0"}`
	if w := do(r, http.MethodPost, "/admin/changelog", body, clientCookie); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestUpdateAndDeleteChangelog(t *testing.T) {
	db := setupTestDB(t)
	adminCookie, j := seedAdmin(t, db)
	r := testRouter(db, j)

	do(r, http.MethodPost, "/admin/changelog", `{"version":"1.0.0","name":"Launch"}`, adminCookie)
	var entry models.Changelog
	if err := db.First(&entry, "version = ?", "1.0.0").Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}

	path := fmt.Sprintf("/admin/changelog/%d", entry.ID)
	w := do(r, http.MethodPut, path, `{"version":"1.0.1","name":"Launch fixes"}`, adminCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d: %s", w.Code, w.Body.String())
	}
	db.First(&entry, entry.ID)
	if entry.Version != "1.0.1" {
		t.Errorf("version not updated: %s", entry.Version)
	}

	if w := do(r, http.MethodDelete, path, "", adminCookie); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	if w := do(r, http.MethodDelete, path, "", adminCookie); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}
