package bulk_set_rates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bulkSetRates "github.com/m04kA/CRP-FleetService/internal/usecase/bulk_set_rates"
)

type fakeUseCase struct {
	resp    *bulkSetRates.Response
	err     error
	lastReq *bulkSetRates.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *bulkSetRates.Request) (*bulkSetRates.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestRouter(uc *fakeUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/companies/{companyId}/rates/bulk", h.Handle).Methods(http.MethodPost)
	return r
}

func TestHandleSuccess(t *testing.T) {
	uc := &fakeUseCase{resp: &bulkSetRates.Response{UnitsUpdated: 7, CatalogEntriesCreated: 2}}
	router := newTestRouter(uc)

	body := `{"make": "Ford", "modelYear": 2022, "newRate": 55.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/42/rates/bulk", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BulkSetRatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.UnitsUpdated)
	assert.Equal(t, int64(2), resp.CatalogEntriesCreated)

	// ID компании из пути попадает в запрос use case
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(42), uc.lastReq.CompanyID)
	require.NotNil(t, uc.lastReq.Make)
	assert.Equal(t, "Ford", *uc.lastReq.Make)
	require.NotNil(t, uc.lastReq.ModelYear)
	assert.Equal(t, 2022, *uc.lastReq.ModelYear)
	require.NotNil(t, uc.lastReq.NewRate)
	assert.Equal(t, 55.5, *uc.lastReq.NewRate)
}

func TestHandleNullRateClearsOverrides(t *testing.T) {
	uc := &fakeUseCase{resp: &bulkSetRates.Response{UnitsUpdated: 3}}
	router := newTestRouter(uc)

	body := `{"make": "Ford", "newRate": null}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/42/rates/bulk", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Nil(t, uc.lastReq.NewRate)
}

func TestHandleInvalidCompanyID(t *testing.T) {
	uc := &fakeUseCase{}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/abc/rates/bulk", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandleInvalidBody(t *testing.T) {
	uc := &fakeUseCase{}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/42/rates/bulk", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandleInvalidInput(t *testing.T) {
	uc := &fakeUseCase{err: bulkSetRates.ErrInvalidInput}
	router := newTestRouter(uc)

	body := `{"category": "spaceship", "newRate": 10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/42/rates/bulk", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusBadRequest, errResp.Code)
	assert.NotEmpty(t, errResp.Message)
}

func TestHandleInternalError(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("connection refused")}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/42/rates/bulk", strings.NewReader(`{"newRate": 10}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
