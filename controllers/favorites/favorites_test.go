package favoriteControllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
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
	err = db.AutoMigrate(&models.User{}, &models.Furniture{}, &models.FurnitureColor{},
		&models.GalleryItem{}, &models.FavoriteFurniture{}, &models.FavoriteGallery{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRouter(db *gorm.DB, j *auth.JWTer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/favorites")
	g.Use(middleware.RequireAuth(db, j, "jwt"))
	{
		g.GET("/furniture", ListFurnitureFavorites(db))
		g.POST("/furniture/:furniture_id", AddFurnitureFavorite(db))
		g.DELETE("/furniture/:furniture_id", RemoveFurnitureFavorite(db))
		g.GET("/gallery", ListGalleryFavorites(db))
		g.POST("/gallery/:gallery_id", AddGalleryFavorite(db))
		g.DELETE("/gallery/:gallery_id", RemoveGalleryFavorite(db))
	}
	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string) (models.User, *http.Cookie, *auth.JWTer) {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "-", Role: models.RoleClient}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "ardeco", TTL: time.Hour}
	token, err := j.Issue(user.ID, user.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, &http.Cookie{Name: "jwt", Value: token}, j
}

func do(r *gin.Engine, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFurnitureFavoriteLifecycle(t *testing.T) {
	db := setupTestDB(t)
	_, cookie, j := seedUser(t, db, "fav@test.fr")
	r := testRouter(db, j)
	furniture := models.Furniture{Name: "Oak table", Price: 12900, CompanyID: 99, Active: true}
	if err := db.Create(&furniture).Error; err != nil {
		t.Fatalf("seed furniture: %v", err)
	}
	path := fmt.Sprintf("/favorites/furniture/%d", furniture.ID)

	if w := do(r, http.MethodPost, path, cookie); w.Code != http.StatusCreated {
		t.Fatalf("add: %d: %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, path, cookie); w.Code != http.StatusConflict {
		t.Fatalf("duplicate add: expected 409, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, path, cookie); w.Code != http.StatusOK {
		t.Fatalf("remove: %d", w.Code)
	}
	if w := do(r, http.MethodDelete, path, cookie); w.Code != http.StatusNotFound {
		t.Fatalf("second remove: expected 404, got %d", w.Code)
	}
}

func TestAddFavoriteUnknownFurnitureIs404(t *testing.T) {
	db := setupTestDB(t)
	_, cookie, j := seedUser(t, db, "fav@test.fr")
	r := testRouter(db, j)

	if w := do(r, http.MethodPost, "/favorites/furniture/4242", cookie); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHiddenGalleryCannotBeFavoritedByStrangers(t *testing.T) {
	db := setupTestDB(t)
	owner, ownerCookie, j := seedUser(t, db, "owner@test.fr")
	r := testRouter(db, j)
	item := models.GalleryItem{UserID: owner.ID, Name: "Secret board", Visibility: false}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed gallery: %v", err)
	}
	path := fmt.Sprintf("/favorites/gallery/%d", item.ID)

	_, strangerCookie, _ := seedUser(t, db, "stranger@test.fr")
	if w := do(r, http.MethodPost, path, strangerCookie); w.Code != http.StatusForbidden {
		t.Fatalf("stranger: expected 403, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, path, ownerCookie); w.Code != http.StatusCreated {
		t.Fatalf("owner: expected 201, got %d", w.Code)
	}
}

func TestFavoritesAreScopedPerUser(t *testing.T) {
	db := setupTestDB(t)
	_, aCookie, j := seedUser(t, db, "a@test.fr")
	r := testRouter(db, j)
	furniture := models.Furniture{Name: "Linen sofa", Price: 54900, CompanyID: 99, Active: true}
	db.Create(&furniture)

	do(r, http.MethodPost, fmt.Sprintf("/favorites/furniture/%d", furniture.ID), aCookie)

	_, bCookie, _ := seedUser(t, db, "b@test.fr")
	w := do(r, http.MethodGet, "/favorites/furniture", bCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var favs int64
	db.Model(&models.FavoriteFurniture{}).Count(&favs)
	if favs != 1 {
		t.Fatalf("expected one favorite row total, got %d", favs)
	}
	// The other user may favorite the same furniture independently.
	if w := do(r, http.MethodPost, fmt.Sprintf("/favorites/furniture/%d", furniture.ID), bCookie); w.Code != http.StatusCreated {
		t.Errorf("second user favorite: expected 201, got %d", w.Code)
	}
}
