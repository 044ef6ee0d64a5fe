package cartControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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
		&models.Cart{}, &models.CartItem{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRouter(db *gorm.DB, j *auth.JWTer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/cart")
	g.Use(middleware.RequireAuth(db, j, "jwt"))
	{
		g.GET("", GetCart(db))
		g.POST("", AddItems(db, zap.NewNop()))
		g.DELETE("/:color_id", RemoveItem(db))
	}
	return r
}

func seedClient(t *testing.T, db *gorm.DB) (models.User, *http.Cookie, *auth.JWTer) {
	t.Helper()
	user := models.User{Email: "client@test.fr", PasswordHash: "-", Role: models.RoleClient}
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

// seedColor creates a furniture entry with a single color variant and
// returns the color id.
func seedColor(t *testing.T, db *gorm.DB, name string, price int) uint {
	t.Helper()
	furniture := models.Furniture{
		Name:      name,
		Price:     price,
		CompanyID: 99,
		Active:    true,
		Colors:    []models.FurnitureColor{{Color: "oak"}},
	}
	if err := db.Create(&furniture).Error; err != nil {
		t.Fatalf("seed furniture: %v", err)
	}
	return furniture.Colors[0].ID
}

func do(r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addBody(colorIDs ...uint) string {
	parts := make([]string, len(colorIDs))
	for i, id := range colorIDs {
		parts[i] = fmt.Sprint(id)
	}
	return `{"color_ids":[` + strings.Join(parts, ",") + `]}`
}

func cartView(t *testing.T, w *httptest.ResponseRecorder) CartView {
	t.Helper()
	var env struct {
		Data CartView `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode cart: %v (%s)", err, w.Body.String())
	}
	return env.Data
}

func TestAddSameColorTwiceMergesQuantity(t *testing.T) {
	db := setupTestDB(t)
	_, cookie, j := seedClient(t, db)
	r := testRouter(db, j)
	colorID := seedColor(t, db, "Oak table", 12900)

	if w := do(r, http.MethodPost, "/cart", addBody(colorID), cookie); w.Code != http.StatusOK {
		t.Fatalf("first add: %d: %s", w.Code, w.Body.String())
	}
	w := do(r, http.MethodPost, "/cart", addBody(colorID), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("second add: %d", w.Code)
	}

	view := cartView(t, w)
	if len(view.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", view.Lines[0].Quantity)
	}
	if view.Total != 2*12900 {
		t.Errorf("expected total %d, got %d", 2*12900, view.Total)
	}

	var carts int64
	db.Model(&models.Cart{}).Count(&carts)
	if carts != 1 {
		t.Errorf("expected a single cart row, got %d", carts)
	}
}

func TestAddDropsUnknownColorIDs(t *testing.T) {
	db := setupTestDB(t)
	_, cookie, j := seedClient(t, db)
	r := testRouter(db, j)
	colorID := seedColor(t, db, "Linen sofa", 54900)

	w := do(r, http.MethodPost, "/cart", addBody(colorID, 424242), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add: %d: %s", w.Code, w.Body.String())
	}
	view := cartView(t, w)
	if len(view.Lines) != 1 {
		t.Fatalf("unknown id should be dropped, got %d lines", len(view.Lines))
	}
	if view.Lines[0].ColorID != colorID {
		t.Errorf("surviving line is %d, want %d", view.Lines[0].ColorID, colorID)
	}
}

func TestAddOnlyUnknownIDsLeavesNoCart(t *testing.T) {
	db := setupTestDB(t)
	_, cookie, j := seedClient(t, db)
	r := testRouter(db, j)

	w := do(r, http.MethodPost, "/cart", addBody(424242), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add: %d", w.Code)
	}
	var carts int64
	db.Model(&models.Cart{}).Count(&carts)
	if carts != 0 {
		t.Errorf("expected no cart row, got %d", carts)
	}
}

func TestRemoveDecrementsThenDeletesCart(t *testing.T) {
	db := setupTestDB(t)
	_, cookie, j := seedClient(t, db)
	r := testRouter(db, j)
	colorID := seedColor(t, db, "Walnut desk", 31900)

	do(r, http.MethodPost, "/cart", addBody(colorID, colorID), cookie)

	path := fmt.Sprintf("/cart/%d", colorID)
	if w := do(r, http.MethodDelete, path, "", cookie); w.Code != http.StatusOK {
		t.Fatalf("first remove: %d", w.Code)
	}
	getW := do(r, http.MethodGet, "/cart", "", cookie)
	if q := cartView(t, getW).Lines[0].Quantity; q != 1 {
		t.Fatalf("expected quantity 1 after decrement, got %d", q)
	}

	if w := do(r, http.MethodDelete, path, "", cookie); w.Code != http.StatusOK {
		t.Fatalf("second remove: %d", w.Code)
	}
	var carts, items int64
	db.Model(&models.Cart{}).Count(&carts)
	db.Model(&models.CartItem{}).Count(&items)
	if carts != 0 || items != 0 {
		t.Errorf("expected emptied cart to be deleted, got %d carts / %d items", carts, items)
	}

	if w := do(r, http.MethodGet, "/cart", "", cookie); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing cart, got %d", w.Code)
	}
}

func TestRemoveUnknownLineIs404(t *testing.T) {
	db := setupTestDB(t)
	_, cookie, j := seedClient(t, db)
	r := testRouter(db, j)

	w := do(r, http.MethodDelete, "/cart/7", "", cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
