package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assay-backend/internal/auth"
	"assay-backend/internal/config"
	"assay-backend/internal/events"
	"assay-backend/internal/handlers"
	"assay-backend/internal/health"
	apihttp "assay-backend/internal/http"
	"assay-backend/internal/ledger"
	"assay-backend/internal/logging"
	"assay-backend/internal/middleware"
	"assay-backend/internal/models"
	"assay-backend/internal/services"
	"assay-backend/internal/testutil"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	router http.Handler
	store  *testutil.MemoryStore
	media  *testutil.MemMedia
	hub    *events.Hub
}

type options struct {
	noMedia bool
	auth    *middleware.AuthMiddleware
}

func newFixture(t *testing.T, opts options) *fixture {
	t.Helper()
	log := logging.Discard()
	store := testutil.NewMemoryStore()
	hub := events.NewHub(log)

	var media services.MediaStorage
	mem := testutil.NewMemMedia()
	if !opts.noMedia {
		media = mem
	}

	customers := services.NewCustomerService(store.Customers())
	engine := ledger.NewEngine(store.CreditHistory(), hub, log)
	certs := services.NewCertificateService(store.Certificates(), store.Customers(), media)

	h := apihttp.Handlers{
		Customer:          handlers.NewCustomerHandler(customers, log),
		CreditHistory:     handlers.NewCreditHistoryHandler(services.NewCreditHistoryService(store.CreditHistory(), engine), log),
		GoldCertificate:   handlers.NewCertificateHandler(models.CertificateGold, certs, log),
		SilverCertificate: handlers.NewCertificateHandler(models.CertificateSilver, certs, log),
		PhotoCertificate:  handlers.NewCertificateHandler(models.CertificatePhoto, certs, log),
		GoldTest:          handlers.NewGoldTestHandler(services.NewGoldTestService(store.GoldTests(), store.Customers()), log),
		WeightLoss:        handlers.NewWeightLossHandler(services.NewWeightLossService(store.WeightLoss(), store.Customers()), log),
		GlobalSetting:     handlers.NewGlobalSettingHandler(services.NewGlobalSettingService(store.Globals()), log),
		Health:            handlers.NewHealthHandler(health.NewHealthChecker(okPinger{})),
		LedgerEvents:      hub.ServeWS,
	}
	return &fixture{router: apihttp.NewRouter(h, opts.auth), store: store, media: mem, hub: hub}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (f *fixture) createCustomer(t *testing.T, body map[string]any) models.Customer {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/v1/customers", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Customer](t, rec)
}

func TestRootAndHealth(t *testing.T) {
	f := newFixture(t, options{})

	rec := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Assay API server running"}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/health", nil)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCustomers(t *testing.T) {
	f := newFixture(t, options{})
	c := f.createCustomer(t, map[string]any{"Name": "Lakshmi Jewellers", "Phone": "9000000001", "Balance": 100})
	assert.Equal(t, "100", c.Balance.String())

	t.Run("duplicate phone", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/customers", map[string]any{"Name": "X", "Phone": "9000000001"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"detail":"Phone number already exists"}`, rec.Body.String())
	})
	t.Run("malformed body", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/customers", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("missing name", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/customers", map[string]any{"Phone": "1"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
	t.Run("get", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/customers/"+c.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, c.ID, decode[models.Customer](t, rec).ID)
	})
	t.Run("update rejects balance", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/v1/customers/"+c.ID, map[string]any{"Balance": 5})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
	t.Run("update with nothing", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/v1/customers/"+c.ID, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"No fields to update"}`, rec.Body.String())
	})
	t.Run("search", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/customers/search?q=lakshmi", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[models.Page[models.Customer]](t, rec)
		assert.Len(t, page.Data, 1)

		rec = f.do(t, http.MethodGet, "/api/v1/customers/search", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestListShapeAndPaging(t *testing.T) {
	f := newFixture(t, options{})

	rec := f.do(t, http.MethodGet, "/api/v1/goldtest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"pagination":{"total_records":0,"current_page":1,"total_pages":0,"limit":20}}`, rec.Body.String())

	for i := 0; i < 5; i++ {
		f.createCustomer(t, map[string]any{"Name": "C"})
	}
	rec = f.do(t, http.MethodGet, "/api/v1/customers?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.Page[models.Customer]](t, rec)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 5, page.Pagination.TotalRecords)
	assert.EqualValues(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.CurrentPage)

	rec = f.do(t, http.MethodGet, "/api/v1/customers?limit=1000", nil)
	assert.Equal(t, 100, decode[models.Page[models.Customer]](t, rec).Pagination.Limit)

	rec = f.do(t, http.MethodGet, "/api/v1/customers?page=two", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreditHistoryScenario(t *testing.T) {
	f := newFixture(t, options{})
	c := f.createCustomer(t, map[string]any{"Name": "Ravi", "Balance": 100})

	rec := f.do(t, http.MethodPost, "/api/v1/credithistory", map[string]any{
		"CustomerId": c.ID, "Type": "credit", "Amount": 50, "ModeOfPayment": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[models.CreditHistoryResult](t, rec)
	assert.Equal(t, "100", first.PreviousBalance.String())
	assert.Equal(t, "150", first.NewBalance.String())

	rec = f.do(t, http.MethodPost, "/api/v1/credithistory", map[string]any{
		"CustomerId": c.ID, "Type": "debit", "Amount": 30, "ModeOfPayment": "upi",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[models.CreditHistoryResult](t, rec)
	assert.Equal(t, "150", second.PreviousBalance.String())

	rec = f.do(t, http.MethodGet, "/api/v1/customers/"+c.ID, nil)
	assert.Equal(t, "120", decode[models.Customer](t, rec).Balance.String())

	rec = f.do(t, http.MethodGet, "/api/v1/customers/"+c.ID+"/credithistory", nil)
	page := decode[models.Page[models.CreditHistory]](t, rec)
	require.Len(t, page.Data, 2)
	assert.Equal(t, second.ID, page.Data[0].ID)
	assert.Equal(t, first.ID, page.Data[1].ID)

	t.Run("unknown customer", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/credithistory", map[string]any{
			"CustomerId": "ghost", "Type": "credit", "Amount": 1, "ModeOfPayment": "cash",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"detail":"Customer not found"}`, rec.Body.String())
	})
	t.Run("bad type", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/credithistory", map[string]any{
			"CustomerId": c.ID, "Type": "refund", "Amount": 1, "ModeOfPayment": "cash",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
	t.Run("sub-paisa amount", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/credithistory", map[string]any{
			"CustomerId": c.ID, "Type": "debit", "Amount": 0.005, "ModeOfPayment": "cash",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "at most 2 decimal places")

		rec = f.do(t, http.MethodGet, "/api/v1/customers/"+c.ID, nil)
		assert.Equal(t, "120", decode[models.Customer](t, rec).Balance.String())
	})
	t.Run("delete twice", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, "/api/v1/credithistory/"+first.ID, nil)
		assert.JSONEq(t, `{"message":"Credit history record deleted successfully"}`, rec.Body.String())
		rec = f.do(t, http.MethodDelete, "/api/v1/credithistory/"+first.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Credit history record already deleted or not found"}`, rec.Body.String())
	})
}

func TestCertificates(t *testing.T) {
	f := newFixture(t, options{})

	rec := f.do(t, http.MethodPost, "/api/v1/goldcertificate", map[string]any{"ModeOfPayment": "cash", "Total": 450})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	gold := decode[map[string]any](t, rec)
	assert.NotContains(t, gold, "Media")
	assert.Equal(t, "pending", gold["Status"])

	rec = f.do(t, http.MethodPost, "/api/v1/photocertificate", map[string]any{"ModeOfPayment": "upi", "Total": 300})
	require.Equal(t, http.StatusCreated, rec.Code)
	photo := decode[map[string]any](t, rec)
	assert.Contains(t, photo, "Media")

	rec = f.do(t, http.MethodGet, "/api/v1/silvercertificate/"+gold["Id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/goldcertificate/"+gold["Id"].(string)+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = f.do(t, http.MethodPut, "/api/v1/goldcertificate/"+gold["Id"].(string), map[string]any{"Status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decode[map[string]any](t, rec)["Status"])
}

func uploadRequest(t *testing.T, path, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="front.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestPhotoMedia(t *testing.T) {
	f := newFixture(t, options{})
	rec := f.do(t, http.MethodPost, "/api/v1/photocertificate", map[string]any{"ModeOfPayment": "upi", "Total": 300})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[models.Certificate](t, rec).ID

	png := []byte("\x89PNG\r\n\x1a\n0000")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, uploadRequest(t, "/api/v1/photocertificate/"+id+"/media", "image/png", png))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	media, _ := decode[map[string]any](t, rec)["Media"].(string)
	assert.True(t, strings.HasSuffix(media, ".png"))
	assert.Equal(t, png, f.media.Objects[media])

	rec = f.do(t, http.MethodGet, "/api/v1/photocertificate/"+id+"/media", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), media)

	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, uploadRequest(t, "/api/v1/photocertificate/"+id+"/media", "text/plain", []byte("hi")))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPhotoMedia_NotConfigured(t *testing.T) {
	f := newFixture(t, options{noMedia: true})
	rec := f.do(t, http.MethodGet, "/api/v1/photocertificate/any/media", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWeightLossAndGoldTest(t *testing.T) {
	f := newFixture(t, options{})
	c := f.createCustomer(t, map[string]any{"Name": "Ravi"})

	rec := f.do(t, http.MethodPost, "/api/v1/weightlosshistory", map[string]any{
		"CustomerId": "ghost", "Amount": 0.5, "ModeOfPayment": "cash",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/weightlosshistory", map[string]any{
		"CustomerId": c.ID, "Amount": 0.5, "ModeOfPayment": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/customers/"+c.ID+"/weightlosshistory", nil)
	assert.Len(t, decode[models.Page[models.WeightLoss]](t, rec).Data, 1)

	rec = f.do(t, http.MethodPost, "/api/v1/goldtest", map[string]any{
		"CustomerId": c.ID, "ModeOfPayment": "neft", "Total": 80, "Status": "completed",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	test := decode[models.GoldTest](t, rec)

	rec = f.do(t, http.MethodDelete, "/api/v1/goldtest/"+test.ID, nil)
	assert.JSONEq(t, `{"message":"Gold test deleted successfully"}`, rec.Body.String())
	rec = f.do(t, http.MethodGet, "/api/v1/goldtest/"+test.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGlobals(t *testing.T) {
	f := newFixture(t, options{})

	rec := f.do(t, http.MethodPost, "/api/v1/globals", map[string]any{"Key": "gst_rate", "Value": "3"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/v1/globals", map[string]any{"Key": "gst_rate", "Value": "5"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/globals/gst_rate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"No fields to update"}`, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/api/v1/globals/gst_rate", map[string]any{"Value": "5"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", *decode[models.GlobalSetting](t, rec).Value)

	rec = f.do(t, http.MethodGet, "/api/v1/globals/gst_rate", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/globals/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthProtectsAPIOnly(t *testing.T) {
	var cfg config.Config
	cfg.JWT.Secret = "router-secret"
	cfg.JWT.ExpirationHours = 1
	jwtManager := auth.NewJWTManager(&cfg)
	f := newFixture(t, options{auth: middleware.NewAuthMiddleware(jwtManager)})

	rec := f.do(t, http.MethodGet, "/api/v1/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	token, err := jwtManager.GenerateToken("desk")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLedgerEventsOverWebsocket(t *testing.T) {
	f := newFixture(t, options{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.hub.Run(ctx) }()

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/v1/events/ledger", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return f.hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	c := f.createCustomer(t, map[string]any{"Name": "Ravi", "Balance": 10})
	rec := f.do(t, http.MethodPost, "/api/v1/credithistory", map[string]any{
		"CustomerId": c.ID, "Type": "credit", "Amount": 5, "ModeOfPayment": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got events.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, events.TypeEntryApplied, got.Type)
	assert.Equal(t, c.ID, got.CustomerID)
	assert.Equal(t, "15", got.NewBalance.String())
}
