package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berlivn/eriflex-api/internal/application/analytics"
	"github.com/berlivn/eriflex-api/internal/application/assets"
	"github.com/berlivn/eriflex-api/internal/application/auth"
	"github.com/berlivn/eriflex-api/internal/application/calc"
	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/application/quote"
	"github.com/berlivn/eriflex-api/internal/application/search"
	"github.com/berlivn/eriflex-api/internal/application/usecase"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
	"github.com/berlivn/eriflex-api/internal/infrastructure/memory"
	"github.com/berlivn/eriflex-api/internal/infrastructure/pdf"
	"github.com/berlivn/eriflex-api/internal/infrastructure/storage"
	apphttp "github.com/berlivn/eriflex-api/internal/interfaces/http"
	"github.com/berlivn/eriflex-api/pkg/logger"
)

const (
	adminEmail    = "admin@berlivn.test"
	adminPassword = "admin-password"
)

type fixedCalculator struct{ calls int }

func (f *fixedCalculator) Calculate(context.Context, entity.CalcParams) (string, error) {
	f.calls++
	return "42", nil
}

type testServer struct {
	app    *fiber.App
	store  *memory.Store
	assets string
	calc   *fixedCalculator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()

	dir := t.TempDir()
	files, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	calculator := &fixedCalculator{}

	userUC := usecase.NewUserUseCase(store.Users(), store.SearchLogs(), store, 3, log)
	authUC := auth.NewAuthUseCase(store.Users(), store.Companies(), store, userUC,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, 3, log)
	catalogUC := catalog.NewCatalogUseCase(store.Components(), store, log)
	calcUC := calc.NewCalcUseCase(store.Calcs(), calculator, log)

	_, err = authUC.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		AnalyticsUC: analytics.NewAnalyticsUseCase(store.Analytics(), store.SearchLogs(), store.Users()),
		CatalogUC:   catalogUC,
		CalcUC:      calcUC,
		SearchUC:    search.NewSearchUseCase(store.Components(), calcUC, userUC, log, 2),
		AssetUC:     assets.NewAssetUseCase(files, "https://photos.test", log),
		QuoteUC:     quote.NewQuoteUseCase(catalogUC, userUC, pdf.NewQuoteRenderer("test")),
		JWTSecret:   testJWTSecret,
	})
	return &testServer{app: app, store: store, assets: dir, calc: calculator}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func registration(email, regNo string) map[string]string {
	return map[string]string{
		"email":                email,
		"password":             "s3cret-pass",
		"company_name":         "Acme Switchgear",
		"registration_number":  regNo,
		"activities":           "Panel builder",
		"employee_count":       "10-50",
		"company_phone":        "+84 28 1234 5678",
		"first_name":           "An",
		"last_name":            "Nguyen",
		"job_position":         "Engineer",
		"professional_address": "1 Le Loi",
		"postal_code":          "700000",
		"city":                 "Ho Chi Minh City",
		"direct_phone":         "+84 28 1111",
		"mobile_phone":         "+84 90 2222",
	}
}

func (s *testServer) registerUser(t *testing.T) (id, token string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/auth/register", "", registration("an@acme.test", "0312345678"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	decode(t, resp, &out)
	assert.Equal(t, "user", out.Role)
	return out.ID, s.login(t, "an@acme.test", "s3cret-pass")
}

func (s *testServer) createComponent(t *testing.T, adminToken string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/createComponent", adminToken, map[string]interface{}{
		"key": "SUP1", "nbphase": 1, "angle": 90, "resmini": 10, "info": "Support SUP1", "a_list": "60,80",
		"thickness": []int{5}, "width": []int{50, 63}, "poles": []int{3}, "shape": []string{"Flat"},
		"unit_price": "12.5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func searchBody() map[string]interface{} {
	return map[string]interface{}{
		"perPhase": "1 Busbar", "thickness": "5", "width": "50", "poles": "Three", "shape": "Flat", "icc": 50,
	}
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerUser(t)

	dup := s.do(t, http.MethodPost, "/auth/register", "", registration("AN@acme.test", "999"))
	var errBody map[string]string
	decode(t, dup, &errBody)
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errBody["code"])

	// registration number works as a login identifier
	s.login(t, "0312345678", "s3cret-pass")

	me := s.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.StatusCode)
	var profile map[string]interface{}
	decode(t, me, &profile)
	assert.Equal(t, "an@acme.test", profile["email"])
	assert.EqualValues(t, 3, profile["daily_search_limit"])
	assert.EqualValues(t, 3, profile["daily_search_remaining"])
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)
	body := registration("not-an-email", "1")
	resp := s.do(t, http.MethodPost, "/auth/register", "", body)
	var out map[string]string
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Contains(t, out["message"], "email")
}

func TestLogin_BadPassword(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": adminEmail, "password": "nope"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsers_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	id, userToken := s.registerUser(t)
	adminToken := s.login(t, adminEmail, adminPassword)

	forbidden := s.do(t, http.MethodGet, "/api/users", userToken, nil)
	forbidden.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	list := s.do(t, http.MethodGet, "/api/users?limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	var out struct {
		Users []map[string]interface{} `json:"users"`
	}
	decode(t, list, &out)
	assert.Len(t, out.Users, 2)

	self := s.do(t, http.MethodGet, "/api/users/"+id, userToken, nil)
	self.Body.Close()
	assert.Equal(t, http.StatusOK, self.StatusCode)

	missing := s.do(t, http.MethodDelete, "/api/users/does-not-exist", adminToken, nil)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	del := s.do(t, http.MethodDelete, "/api/users/"+id, adminToken, nil)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)

	again := s.do(t, http.MethodPost, "/auth/register", "", registration("an@acme.test", "0312345678"))
	again.Body.Close()
	assert.Equal(t, http.StatusCreated, again.StatusCode, "registration number is free again")
}

func TestQueryBusbar_ConsumesQuota(t *testing.T) {
	s := newTestServer(t)
	id, userToken := s.registerUser(t)
	s.createComponent(t, s.login(t, adminEmail, adminPassword))

	resp := s.do(t, http.MethodPost, "/api/queryBusbar", userToken, searchBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Total    int     `json:"total"`
		Ipk      float64 `json:"ipk"`
		Products []struct {
			ComponentID    string `json:"component_id"`
			AdditionalInfo []struct {
				L *string `json:"L"`
			} `json:"additionalInfo"`
		} `json:"products"`
	}
	decode(t, resp, &out)
	assert.Equal(t, 1, out.Total)
	assert.InDelta(t, 105.0, out.Ipk, 1e-9)
	require.Len(t, out.Products, 1)
	require.Len(t, out.Products[0].AdditionalInfo, 1)
	require.NotNil(t, out.Products[0].AdditionalInfo[0].L)
	assert.Equal(t, "42", *out.Products[0].AdditionalInfo[0].L)

	quota := s.do(t, http.MethodGet, "/api/users/"+id+"/daily_search_limit", userToken, nil)
	var status map[string]interface{}
	decode(t, quota, &status)
	assert.EqualValues(t, 1, status["search_count"])
	assert.EqualValues(t, 2, status["daily_search_remaining"])

	for i := 0; i < 2; i++ {
		r := s.do(t, http.MethodPost, "/api/queryBusbar", userToken, searchBody())
		r.Body.Close()
		require.Equal(t, http.StatusOK, r.StatusCode)
	}
	spent := s.do(t, http.MethodPost, "/api/queryBusbar", userToken, searchBody())
	var errBody map[string]string
	decode(t, spent, &errBody)
	assert.Equal(t, http.StatusForbidden, spent.StatusCode)
	assert.Equal(t, "QUOTA_EXCEEDED", errBody["code"])
	assert.Equal(t, 1, s.calc.calls, "L comes from the cache after the first search")
}

func TestQueryBusbar_UnofferedGeometry(t *testing.T) {
	s := newTestServer(t)
	id, userToken := s.registerUser(t)

	body := searchBody()
	body["thickness"], body["width"] = "2", "50"
	resp := s.do(t, http.MethodPost, "/api/queryBusbar", userToken, body)
	var errBody map[string]string
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errBody["code"])

	quota := s.do(t, http.MethodGet, "/api/users/"+id+"/daily_search_limit", userToken, nil)
	var status map[string]interface{}
	decode(t, quota, &status)
	assert.EqualValues(t, 0, status["search_count"])
}

func TestCatalog_WritesNeedAdmin(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.registerUser(t)

	resp := s.do(t, http.MethodPost, "/api/createComponent", userToken, map[string]interface{}{"key": "X"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	missing := s.do(t, http.MethodGet, "/api/getComponents?component_id=NOPE&nbphase=1", userToken, nil)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestCalcExcel(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerUser(t)
	body := map[string]interface{}{"W": 50, "T": 5, "B": 5, "Angle": 90, "a": 60, "Icc": 50, "Force": 100, "NbrePhase": 3}

	resp := s.do(t, http.MethodPost, "/api/calcExcel", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]*string
	decode(t, resp, &out)
	require.NotNil(t, out["L"])
	assert.Equal(t, "42", *out["L"])

	bad := s.do(t, http.MethodPost, "/api/calcExcel", token, map[string]interface{}{"W": 0})
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestAssets_PublicReads(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.assets, "products", "SUP1-100-1-1.jpg"), []byte("jpeg"), 0o644))

	ok := s.do(t, http.MethodGet, "/api/getImage?path=/products/SUP1-100-1-1.jpg", "", nil)
	raw, _ := io.ReadAll(ok.Body)
	ok.Body.Close()
	assert.Equal(t, http.StatusOK, ok.StatusCode)
	assert.Equal(t, "jpeg", string(raw))

	escape := s.do(t, http.MethodGet, "/api/getImage?path=../../etc/passwd", "", nil)
	escape.Body.Close()
	assert.Equal(t, http.StatusNotFound, escape.StatusCode)

	missing := s.do(t, http.MethodGet, "/api/getFile?path=/documents/none.pdf", "", nil)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestComponentAssets(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerUser(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.assets, "documents", "SUP1-100-1-doc.pdf"), []byte("pdf"), 0o644))

	resp := s.do(t, http.MethodGet, "/api/components/SUP1/assets?nbphase=1&resmini=10&img1=ART1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Images    []string           `json:"images"`
		Documents map[string]*string `json:"documents"`
	}
	decode(t, resp, &out)
	require.Len(t, out.Images, 3)
	assert.Equal(t, "https://photos.test/ART1.jpg", out.Images[0])
	assert.Equal(t, "/unknown.jpg", out.Images[2])
	require.NotNil(t, out.Documents["doc"])
	assert.Contains(t, *out.Documents["doc"], "/api/getFile?path=")
	assert.Nil(t, out.Documents["3d"])
}

func TestAdminAnalytics(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.registerUser(t)
	adminToken := s.login(t, adminEmail, adminPassword)

	denied := s.do(t, http.MethodGet, "/admin/analytics", userToken, nil)
	denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	resp := s.do(t, http.MethodGet, "/admin/analytics?days=3", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		DailyStats []map[string]interface{} `json:"daily_stats"`
		TotalStats map[string]int           `json:"total_stats"`
	}
	decode(t, resp, &out)
	assert.Len(t, out.DailyStats, 3)
	assert.Equal(t, 2, out.TotalStats["total_users"])

	bad := s.do(t, http.MethodGet, "/admin/analytics?days=1000", adminToken, nil)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestQuotePDF(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerUser(t)
	s.createComponent(t, s.login(t, adminEmail, adminPassword))

	resp := s.do(t, http.MethodPost, "/api/quotes/pdf", token, map[string]interface{}{
		"search": searchBody(),
		"lines":  []map[string]interface{}{{"component_id": "SUP1", "nbphase": 1, "quantity": 2}},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestOptions_Public(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/options", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Poles []string `json:"poles"`
	}
	decode(t, resp, &out)
	assert.Equal(t, []string{"Bi", "Three", "Four"}, out.Poles)
}
