package routes_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/liquorpos-api/internal/application/service"
	"github.com/sangkips/liquorpos-api/internal/config"
	"github.com/sangkips/liquorpos-api/internal/domain/entity"
	"github.com/sangkips/liquorpos-api/internal/domain/enum"
	"github.com/sangkips/liquorpos-api/internal/infrastructure/repository"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/handler"
	"github.com/sangkips/liquorpos-api/internal/presentation/http/routes"
	"github.com/sangkips/liquorpos-api/internal/testutil"
	"github.com/sangkips/liquorpos-api/pkg/printer"
	"github.com/sangkips/liquorpos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  []map[string]string `json:"errors"`
	Warning string              `json:"warning"`

	ProductID string `json:"product_id"`
	Available *int   `json:"available"`
	Requested *int   `json:"requested"`

	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type apiFixture struct {
	db       *gorm.DB
	router   *gin.Engine
	printer  *printer.BufferPrinter
	admin    string
	cashier  string
	manager  string
	keeper   string
	products map[string]*entity.Product
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := zap.NewNop()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)

	txScope := repository.NewGormTransactionScope(db)
	auditService := service.NewAuditService(repository.NewAuditLogRepository(db), log)
	saleService := service.NewSaleService(txScope, repository.NewSaleRepository(db),
		repository.NewSalesAnalyticsRepository(db), auditService, log, time.UTC)
	productService := service.NewProductService(txScope, repository.NewProductRepository(db),
		repository.NewCategoryRepository(db), repository.NewBrandRepository(db),
		repository.NewInventoryMovementRepository(db), auditService, log)
	customerService := service.NewCustomerService(repository.NewCustomerRepository(db), auditService, log)
	userService := service.NewUserService(repository.NewUserRepository(db), auditService, log)

	buf := &printer.BufferPrinter{}
	printerService := service.NewPrinterService(buf, saleService,
		entity.ReceiptHeader{StoreName: "La Bodega"}, 48, time.UTC, log)

	router := routes.Setup(&routes.Handlers{
		Health:   handler.NewHealthHandler(db, "liquorpos-test"),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Sale:     handler.NewSaleHandler(saleService, printerService),
		Printer:  handler.NewPrinterHandler(printerService),
		AuditLog: handler.NewAuditLogHandler(auditService),
		User:     handler.NewUserHandler(userService),
	}, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             &config.Config{},
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		UserRepo:        repository.NewUserRepository(db),
		Logger:          log,
	})

	token := func(u *entity.User) string {
		tok, err := jwtManager.GenerateAccessToken(u.ID, u.Username, u.Email, string(u.Role))
		require.NoError(t, err)
		return tok
	}

	return &apiFixture{
		db:      db,
		router:  router,
		printer: buf,
		admin:   token(testutil.CreateUser(t, db, "admin1", enum.UserRoleAdmin)),
		cashier: token(testutil.CreateUser(t, db, "cashier1", enum.UserRoleCashier)),
		manager: token(testutil.CreateUser(t, db, "manager1", enum.UserRoleManager)),
		keeper:  token(testutil.CreateUser(t, db, "warehouse1", enum.UserRoleWarehouse)),
		products: map[string]*entity.Product{
			"tequila": testutil.CreateProduct(t, db, "Tequila Blanco", testutil.WithStock(10), testutil.WithPrices("100.00", "80.00")),
		},
	}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (f *apiFixture) createSale(t *testing.T, key string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return f.do(t, http.MethodPost, "/api/v1/sales", f.cashier, body, "Idempotency-Key", key)
}

func saleBody(productID uuid.UUID, qty int) gin.H {
	return gin.H{
		"sale_type":      "retail",
		"payment_method": "cash",
		"items":          []gin.H{{"product_id": productID, "quantity": qty}},
	}
}

type saleData struct {
	ID            uuid.UUID       `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	Notes         *string         `json:"notes"`
	Items         []struct {
		Quantity int `json:"quantity"`
	} `json:"items"`
}

func decodeSale(t *testing.T, env envelope) saleData {
	t.Helper()
	var s saleData
	require.NoError(t, json.Unmarshal(env.Data, &s))
	return s
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodGet, "/health", "", nil, "X-Request-ID", "req-42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", env.Meta.RequestID)
}

func TestAuthRequired(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/sales", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", env.Error)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/sales", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeactivatedUserIsRejected(t *testing.T) {
	f := newAPIFixture(t)
	require.NoError(t, f.db.Model(&entity.User{}).Where("username = ?", "cashier1").Update("is_active", false).Error)

	rec, env := f.do(t, http.MethodGet, "/api/v1/sales", f.cashier, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User account is disabled", env.Message)
}

func TestCreateSale_Created(t *testing.T) {
	f := newAPIFixture(t)
	p := f.products["tequila"]

	rec, env := f.createSale(t, "k-1", saleBody(p.ID, 3))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sale := decodeSale(t, env)
	assert.Regexp(t, `^V-\d{8}-0001$`, sale.SaleNumber)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "paid", sale.PaymentStatus)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 7, testutil.Stock(t, f.db, p.ID))
}

func TestCreateSale_IdempotentReplay(t *testing.T) {
	f := newAPIFixture(t)
	p := f.products["tequila"]

	first, firstEnv := f.createSale(t, "replay-key", saleBody(p.ID, 2))
	require.Equal(t, http.StatusCreated, first.Code)

	second, secondEnv := f.createSale(t, "replay-key", saleBody(p.ID, 2))
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, decodeSale(t, firstEnv).SaleNumber, decodeSale(t, secondEnv).SaleNumber)
	assert.Equal(t, 8, testutil.Stock(t, f.db, p.ID))

	rec, env := f.createSale(t, "replay-key", saleBody(p.ID, 5))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", env.Error)
}

func TestCreateSale_RequiresIdempotencyKey(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/sales", f.cashier, saleBody(f.products["tequila"].ID, 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", env.Error)
}

func TestCreateSale_FailedRequestCanBeRetried(t *testing.T) {
	f := newAPIFixture(t)
	p := f.products["tequila"]

	rec, env := f.createSale(t, "retry-key", saleBody(p.ID, 11))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "insufficient_stock", env.Error)
	require.NotNil(t, env.Available)
	require.NotNil(t, env.Requested)
	assert.Equal(t, 10, *env.Available)
	assert.Equal(t, 11, *env.Requested)
	assert.Equal(t, p.ID.String(), env.ProductID)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "details", "context fields sit at the top level")

	rec, _ = f.createSale(t, "retry-key", saleBody(p.ID, 10))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 0, testutil.Stock(t, f.db, p.ID))
}

func TestCreateSale_ValidationErrors(t *testing.T) {
	f := newAPIFixture(t)
	p := f.products["tequila"]

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"empty items", gin.H{"items": []gin.H{}}, "items"},
		{"zero quantity", gin.H{"items": []gin.H{{"product_id": p.ID, "quantity": 0}}}, "items[0].quantity"},
		{"missing product", gin.H{"items": []gin.H{{"quantity": 1}}}, "items[0].product_id"},
		{"bad payment method", gin.H{"payment_method": "bitcoin", "items": []gin.H{{"product_id": p.ID, "quantity": 1}}}, ""},
		{"malformed json", `{"items": [`, ""},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := f.createSale(t, fmt.Sprintf("v-%d", i), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "validation_error", env.Error)
			if tt.field != "" {
				require.NotEmpty(t, env.Errors)
				assert.Equal(t, tt.field, env.Errors[0]["field"])
			}
		})
	}
	assert.Equal(t, 10, testutil.Stock(t, f.db, p.ID))
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	f := newAPIFixture(t)
	missing := uuid.New()

	rec, env := f.createSale(t, "nf", saleBody(missing, 1))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error)
	assert.Equal(t, missing.String(), env.ProductID)
}

func TestCancelSale(t *testing.T) {
	f := newAPIFixture(t)
	p := f.products["tequila"]
	_, env := f.createSale(t, "c-1", saleBody(p.ID, 4))
	sale := decodeSale(t, env)
	path := "/api/v1/sales/" + sale.ID.String() + "/cancel"

	rec, _ := f.do(t, http.MethodPost, path, f.cashier, gin.H{"reason": "customer changed mind"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = f.do(t, http.MethodPost, path, f.manager, gin.H{"reason": "customer changed mind"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decodeSale(t, env)
	assert.Equal(t, "cancelled", cancelled.PaymentStatus)
	require.NotNil(t, cancelled.Notes)
	assert.Contains(t, *cancelled.Notes, "[CANCELLED] customer changed mind")
	assert.Equal(t, 10, testutil.Stock(t, f.db, p.ID))

	rec, env = f.do(t, http.MethodPost, path, f.manager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "conflict", env.Error)
	assert.Equal(t, 10, testutil.Stock(t, f.db, p.ID))
}

func TestCancelSale_NotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/sales/"+uuid.NewString()+"/cancel", f.manager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error)

	rec, env = f.do(t, http.MethodPost, "/api/v1/sales/not-a-uuid/cancel", f.manager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error)
}

func TestSaleQueries(t *testing.T) {
	f := newAPIFixture(t)
	p := f.products["tequila"]
	_, env := f.createSale(t, "q-1", saleBody(p.ID, 1))
	sale := decodeSale(t, env)

	rec, env := f.do(t, http.MethodGet, "/api/v1/sales/"+sale.ID.String(), f.cashier, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sale.SaleNumber, decodeSale(t, env).SaleNumber)

	rec, env = f.do(t, http.MethodGet, "/api/v1/sales?payment_method=cash&per_page=5", f.cashier, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []saleData `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 1, page.Pagination.Total)

	rec, env = f.do(t, http.MethodGet, "/api/v1/sales?start_date=17-10-2026", f.cashier, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "start_date", env.Errors[0]["field"])

	rec, _ = f.do(t, http.MethodGet, "/api/v1/sales/summary", f.cashier, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = f.do(t, http.MethodGet, "/api/v1/sales/summary", f.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		Today struct {
			Count int64 `json:"count"`
		} `json:"today"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.EqualValues(t, 1, summary.Today.Count)
}

func TestSaleReceipt(t *testing.T) {
	f := newAPIFixture(t)
	_, env := f.createSale(t, "r-1", saleBody(f.products["tequila"].ID, 2))
	sale := decodeSale(t, env)
	path := "/api/v1/sales/" + sale.ID.String() + "/receipt"

	rec, env := f.do(t, http.MethodPost, path, f.cashier, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, env.Warning)
	require.Len(t, f.printer.Jobs(), 1)
	assert.Contains(t, string(f.printer.Jobs()[0]), sale.SaleNumber)

	f.printer.Err = errors.New("paper out")
	rec, env = f.do(t, http.MethodPost, path, f.cashier, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, env.Warning, "paper out")
}

func TestProductRoutes_RoleGates(t *testing.T) {
	f := newAPIFixture(t)
	body := gin.H{"barcode": "7500000000001", "name": "Ron Añejo", "retail_price": "250.00", "purchase_price": "150.00"}

	rec, _ := f.do(t, http.MethodPost, "/api/v1/products", f.cashier, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/api/v1/products", f.keeper, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ = f.do(t, http.MethodPost, "/api/v1/products", f.keeper, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/products/barcode/7500000000001", f.cashier, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/products/"+created.ID.String()+"/adjust-stock", f.keeper, gin.H{"quantity": 6, "reason": "delivery"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, testutil.Stock(t, f.db, created.ID))

	rec, _ = f.do(t, http.MethodDelete, "/api/v1/products/"+created.ID.String(), f.keeper, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodDelete, "/api/v1/products/"+created.ID.String(), f.manager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuditLogs(t *testing.T) {
	f := newAPIFixture(t)
	f.createSale(t, "a-1", saleBody(f.products["tequila"].ID, 1))

	rec, _ := f.do(t, http.MethodGet, "/api/v1/audit-logs", f.cashier, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := f.do(t, http.MethodGet, "/api/v1/audit-logs?module=sales&action=CREATE", f.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Items []entity.AuditLog `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, enum.AuditActionCreate, page.Items[0].Action)
}

func TestAuditLogStats(t *testing.T) {
	f := newAPIFixture(t)
	f.createSale(t, "s-1", saleBody(f.products["tequila"].ID, 1))
	f.createSale(t, "s-2", saleBody(f.products["tequila"].ID, 1))

	rec, _ := f.do(t, http.MethodGet, "/api/v1/audit-logs/stats", f.cashier, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	today := time.Now().UTC().Format("2006-01-02")
	rec, env := f.do(t, http.MethodGet, "/api/v1/audit-logs/stats?start_date="+today+"&end_date="+today, f.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stats struct {
		Total    int64 `json:"total"`
		TopUsers []struct {
			Username string `json:"username"`
			Count    int64  `json:"count"`
		} `json:"top_users"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(2), stats.Total, "an end date includes the whole day")
	require.Len(t, stats.TopUsers, 1)
	assert.Equal(t, "cashier1", stats.TopUsers[0].Username)

	rec, env = f.do(t, http.MethodGet, "/api/v1/audit-logs/stats?start_date=yesterday", f.manager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error)
}

func TestPriceList(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/products/price-list?group_by=none&include_stock=true", f.cashier, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list struct {
		Grouped  bool `json:"grouped"`
		Products []struct {
			Name         string `json:"name"`
			CurrentStock *int   `json:"current_stock"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.False(t, list.Grouped)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Tequila Blanco", list.Products[0].Name)
	require.NotNil(t, list.Products[0].CurrentStock)
	assert.Equal(t, 10, *list.Products[0].CurrentStock)

	rec, env = f.do(t, http.MethodGet, "/api/v1/products/price-list?sort_by=cost", f.cashier, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "sort_by", env.Errors[0]["field"])
}

func TestUserRoutes(t *testing.T) {
	f := newAPIFixture(t)
	body := gin.H{"username": "cajero2", "email": "cajero2@liquorpos.test", "password": "cajero123", "first_name": "Ana"}

	rec, _ := f.do(t, http.MethodPost, "/api/v1/users", f.manager, body)
	assert.Equal(t, http.StatusForbidden, rec.Code, "only admins manage accounts")

	rec, env := f.do(t, http.MethodPost, "/api/v1/users", f.admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, string(env.Data), "password")
	var created entity.User
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, enum.UserRoleCashier, created.Role)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/users", f.admin, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var dup map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
	assert.Equal(t, "cajero2", dup["username"])

	rec, env = f.do(t, http.MethodGet, "/api/v1/users?role=cashier&search=cajero", f.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Items []entity.User `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/users?role=bartender", f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	userPath := "/api/v1/users/" + created.ID.String()
	rec, env = f.do(t, http.MethodPut, userPath, f.admin, gin.H{"role": "promoter"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated entity.User
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, enum.UserRolePromoter, updated.Role)

	rec, _ = f.do(t, http.MethodDelete, userPath, f.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = f.do(t, http.MethodGet, userPath, f.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.False(t, updated.IsActive)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/users/"+uuid.NewString(), f.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPrinterStatus(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/printer/status", f.cashier, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var status service.PrinterStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, 48, status.PaperWidth)
}
