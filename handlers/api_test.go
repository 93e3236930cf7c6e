package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecorecycle-server/config"
	"ecorecycle-server/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupRouterWithDB(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	require.NoError(t, config.Load())

	// Per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitializeTables())

	InitializeHandlers(db)

	router := gin.New()
	RegisterRoutes(router)
	return router, db
}

func httpDo(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func signupUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := httpDo(r, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":        email,
		"password":     "secret123",
		"display_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

func seedFertilizer(t *testing.T, db *database.DB, name string, price float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO fertilizers (id, name, description, price, unit, available, created_at)
		 VALUES ($1, $2, '', $3, 'kg', TRUE, $4)`,
		id, name, price, time.Now().UTC(),
	)
	require.NoError(t, err)
	return id
}

func TestAuthRequired(t *testing.T) {
	router, _ := setupRouterWithDB(t)

	w := httpDo(router, http.MethodGet, "/api/v1/points", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWasteSubmissionEarnsPoints(t *testing.T) {
	router, _ := setupRouterWithDB(t)
	token := signupUser(t, router, "waste@example.com")

	w := httpDo(router, http.MethodPost, "/api/v1/waste", token, gin.H{
		"waste_type":  "plastic",
		"quantity_kg": 2.5,
		"pickup_date": "2026-09-01",
		"time_slot":   "morning",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, float64(25), decodeBody(t, w)["points_earned"])

	w = httpDo(router, http.MethodGet, "/api/v1/points", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(25), body["points"])
	require.Equal(t, 75.0, body["discount_value_lkr"])

	w = httpDo(router, http.MethodGet, "/api/v1/points/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestPickupEarnsBonusPoints(t *testing.T) {
	router, _ := setupRouterWithDB(t)
	token := signupUser(t, router, "pickup@example.com")

	w := httpDo(router, http.MethodPost, "/api/v1/pickups", token, gin.H{
		"materials":      []string{"plastic", "glass"},
		"quantities":     map[string]float64{"plastic": 2.5, "glass": 1},
		"pickup_date":    "2026-09-02",
		"pickup_time":    "10:00",
		"pickup_address": "12 Galle Road, Colombo",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	// base 37 plus floor(37 * 0.2) = 7 bonus
	require.Equal(t, float64(44), decodeBody(t, w)["points_earned"])
}

func TestCartCheckoutFlow(t *testing.T) {
	router, db := setupRouterWithDB(t)
	token := signupUser(t, router, "shopper@example.com")
	fertilizerID := seedFertilizer(t, db, "Compost Mix", 100.0)

	// Earn 39 points: waste 25 + pickup base 12 with bonus 2
	w := httpDo(router, http.MethodPost, "/api/v1/waste", token, gin.H{
		"waste_type":  "plastic",
		"quantity_kg": 2.5,
		"pickup_date": "2026-09-01",
		"time_slot":   "morning",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = httpDo(router, http.MethodPost, "/api/v1/pickups", token, gin.H{
		"materials":      []string{"glass"},
		"quantities":     map[string]float64{"glass": 1},
		"pickup_date":    "2026-09-02",
		"pickup_time":    "10:00",
		"pickup_address": "12 Galle Road, Colombo",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Two bags at 100 each
	w = httpDo(router, http.MethodPost, "/api/v1/cart", token, gin.H{
		"fertilizer_id": fertilizerID,
		"quantity":      2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httpDo(router, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 200.0, decodeBody(t, w)["total_amount"])

	// Discount 60 is within both the balance (39 pts = LKR 117) and the cap
	w = httpDo(router, http.MethodPost, "/api/v1/cart/checkout", token, gin.H{
		"customer_name":    "Nimal Perera",
		"customer_phone":   "0771234567",
		"delivery_address": "12 Galle Road, Colombo",
		"points_discount":  60.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, float64(1), decodeBody(t, w)["count"])

	// Purchase carries the discount
	w = httpDo(router, http.MethodGet, "/api/v1/purchases", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	purchases := body["purchases"].([]interface{})
	require.Len(t, purchases, 1)
	purchase := purchases[0].(map[string]interface{})
	require.Equal(t, 200.0, purchase["original_amount"])
	require.Equal(t, 60.0, purchase["points_discount"])
	require.Equal(t, 140.0, purchase["total_amount"])
	require.Equal(t, "pending", purchase["status"])

	// ceil(60 / 3.00) = 20 points debited: 39 - 20 = 19
	w = httpDo(router, http.MethodGet, "/api/v1/points", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(19), decodeBody(t, w)["points"])

	// Cart was cleared
	w = httpDo(router, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	router, _ := setupRouterWithDB(t)
	token := signupUser(t, router, "empty@example.com")

	w := httpDo(router, http.MethodPost, "/api/v1/cart/checkout", token, gin.H{
		"customer_name":    "Nimal Perera",
		"customer_phone":   "0771234567",
		"delivery_address": "12 Galle Road, Colombo",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminPurchaseStatusFlow(t *testing.T) {
	router, db := setupRouterWithDB(t)
	token := signupUser(t, router, "buyer@example.com")
	fertilizerID := seedFertilizer(t, db, "Bone Meal", 250.0)

	// Initial admin setup, then login as the admin
	w := httpDo(router, http.MethodPost, "/setup-admin", "", gin.H{
		"email":        "admin@example.com",
		"password":     "secret123",
		"display_name": "Admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httpDo(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := decodeBody(t, w)["token"].(string)

	// A user checks out one item
	w = httpDo(router, http.MethodPost, "/api/v1/cart", token, gin.H{
		"fertilizer_id": fertilizerID,
		"quantity":      1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = httpDo(router, http.MethodPost, "/api/v1/cart/checkout", token, gin.H{
		"customer_name":    "Nimal Perera",
		"customer_phone":   "0771234567",
		"delivery_address": "12 Galle Road, Colombo",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	purchaseID := decodeBody(t, w)["purchase_ids"].([]interface{})[0].(string)

	// Non-admin cannot touch admin routes
	w = httpDo(router, http.MethodPut, "/api/v1/admin/purchases/"+purchaseID+"/status", token, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// pending → confirmed → delivered
	w = httpDo(router, http.MethodPut, "/api/v1/admin/purchases/"+purchaseID+"/status", adminToken, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = httpDo(router, http.MethodPut, "/api/v1/admin/purchases/"+purchaseID+"/status", adminToken, gin.H{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code)

	// delivered → confirmed is not a legal move, even for admins
	w = httpDo(router, http.MethodPut, "/api/v1/admin/purchases/"+purchaseID+"/status", adminToken, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// but the admin reset to pending is
	w = httpDo(router, http.MethodPut, "/api/v1/admin/purchases/"+purchaseID+"/status", adminToken, gin.H{"status": "pending"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateCartItemQuantityViaAPI(t *testing.T) {
	router, db := setupRouterWithDB(t)
	token := signupUser(t, router, "cart@example.com")
	fertilizerID := seedFertilizer(t, db, "Organic Pellets", 120.5)

	w := httpDo(router, http.MethodPost, "/api/v1/cart", token, gin.H{
		"fertilizer_id": fertilizerID,
		"quantity":      2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := decodeBody(t, w)["cart_item_id"].(string)

	w = httpDo(router, http.MethodPut, "/api/v1/cart/"+itemID, token, gin.H{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(router, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 4*120.5, decodeBody(t, w)["total_amount"])

	// Quantity zero removes the line
	w = httpDo(router, http.MethodPut, "/api/v1/cart/"+itemID, token, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(router, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, float64(0), decodeBody(t, w)["count"])
}
