package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func whoami() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	}
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	j := &auth.JWTer{Secret: []byte("secret"), Issuer: "ardeco", TTL: time.Hour}
	r := gin.New()
	r.GET("/me", RequireAuth(db, j, "jwt"), whoami())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "not-a-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	user := models.User{Email: "gone@test.fr", PasswordHash: "-", Role: models.RoleClient, Deleted: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	j := &auth.JWTer{Secret: []byte("secret"), Issuer: "ardeco", TTL: time.Hour}
	token, _ := j.Issue(user.ID, user.Email)

	r := gin.New()
	r.GET("/me", RequireAuth(db, j, "jwt"), whoami())
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestValidateAPIKeyResolvesCompany(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	company := models.User{
		Email: "shop@test.fr", PasswordHash: "-",
		Role: models.RoleCompany, CompanyAPIKey: "k-123",
	}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := gin.New()
	r.GET("/ingest", ValidateAPIKey(db), whoami())

	req := httptest.NewRequest(http.MethodGet, "/ingest", nil)
	req.Header.Set("X-API-KEY", "k-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid key: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/ingest", nil)
	req.Header.Set("X-API-KEY", "wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad key: expected 401, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/ingest", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing key: expected 401, got %d", w.Code)
	}
}

func TestRateLimitPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitPerIP(rate.Limit(1), 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests should pass: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited: %v", codes)
	}

	// A different client IP gets its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("fresh ip should pass, got %d", w.Code)
	}
}

func TestRateLimitSweepsIdleBuckets(t *testing.T) {
	l := newIPLimiters(1, 2)
	t0 := time.Now()
	l.get("10.0.0.1", t0)
	l.get("10.0.0.2", t0)
	if len(l.buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(l.buckets))
	}

	// A request long after both went quiet reclaims their buckets.
	l.get("10.0.0.3", t0.Add(3*limiterIdleTTL))
	if len(l.buckets) != 1 {
		t.Fatalf("expected 1 bucket after sweep, got %d", len(l.buckets))
	}
	if _, ok := l.buckets["10.0.0.3"]; !ok {
		t.Error("active bucket swept")
	}
}

func TestOptionalAuthLoadsUserOnlyWithValidCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	user := models.User{Email: "maybe@test.fr", PasswordHash: "-", Role: models.RoleClient}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	j := &auth.JWTer{Secret: []byte("secret"), Issuer: "ardeco", TTL: time.Hour}
	token, _ := j.Issue(user.ID, user.Email)

	r := gin.New()
	r.GET("/peek", OptionalAuth(db, j, "jwt"), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.JSON(http.StatusOK, gin.H{"id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": 0})
	})

	anon := httptest.NewRequest(http.MethodGet, "/peek", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, anon)
	if w.Code != http.StatusOK || w.Body.String() != `{"id":0}` {
		t.Fatalf("anonymous: %d %s", w.Code, w.Body.String())
	}

	garbage := httptest.NewRequest(http.MethodGet, "/peek", nil)
	garbage.AddCookie(&http.Cookie{Name: "jwt", Value: "not-a-token"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, garbage)
	if w.Code != http.StatusOK || w.Body.String() != `{"id":0}` {
		t.Fatalf("garbage token: %d %s", w.Code, w.Body.String())
	}

	signed := httptest.NewRequest(http.MethodGet, "/peek", nil)
	signed.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, signed)
	want := `{"id":` + strconv.FormatUint(uint64(user.ID), 10) + `}`
	if w.Code != http.StatusOK || w.Body.String() != want {
		t.Fatalf("valid token: %d %s", w.Code, w.Body.String())
	}
}

func TestOwnerOrAdmin(t *testing.T) {
	owner := &models.User{ID: 7, Role: models.RoleClient}
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	stranger := &models.User{ID: 9, Role: models.RoleClient}

	if !OwnerOrAdmin(owner, 7) {
		t.Error("owner should pass")
	}
	if !OwnerOrAdmin(admin, 7) {
		t.Error("admin should pass")
	}
	if OwnerOrAdmin(stranger, 7) {
		t.Error("stranger should not pass")
	}
	if OwnerOrAdmin(nil, 7) {
		t.Error("nil user should not pass")
	}
}
