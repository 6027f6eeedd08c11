package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/account-api/internal/domain"
	"github.com/go-petr/account-api/pkg/configpkg"
	"github.com/go-petr/account-api/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var accountColumns = []string{"id", "name", "email", "address", "phone_number", "date_joined"}

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	config := configpkg.Config{ForceHTTPS: false}

	server, err := New(db, zerolog.Nop(), config)
	require.NoError(t, err)

	return server, mock
}

func randomAccount(id int32) domain.Account {
	return domain.Account{
		ID:          id,
		Name:        randompkg.Name(),
		Email:       randompkg.Email(),
		Address:     randompkg.Address(),
		PhoneNumber: randompkg.PhoneNumber(),
		DateJoined:  randompkg.DateBefore(365),
	}
}

func accountRow(a domain.Account) *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns).
		AddRow(a.ID, a.Name, a.Email, a.Address, a.PhoneNumber, a.DateJoined.Time)
}

func accountBody(t *testing.T, a domain.Account) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"name":         a.Name,
		"email":        a.Email,
		"address":      a.Address,
		"phone_number": a.PhoneNumber,
		"date_joined":  a.DateJoined.Format("2006-01-02"),
	})
	require.NoError(t, err)

	return body
}

func doRequest(t *testing.T, server *Server, method, url string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("X-Forwarded-Proto", "https")

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func decodeAccount(t *testing.T, recorder *httptest.ResponseRecorder) domain.Account {
	t.Helper()

	var got domain.Account
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))

	return got
}

func TestSecurityHeaders(t *testing.T) {
	server, _ := newTestServer(t)

	recorder := doRequest(t, server, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	wantHeaders := map[string]string{
		"X-Frame-Options":             "SAMEORIGIN",
		"X-Content-Type-Options":      "nosniff",
		"Content-Security-Policy":     "default-src 'self'; object-src 'none'",
		"Referrer-Policy":             "strict-origin-when-cross-origin",
		"Access-Control-Allow-Origin": "*",
	}

	for key, want := range wantHeaders {
		require.Equal(t, want, recorder.Header().Get(key), "header %q", key)
	}
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	recorder := doRequest(t, server, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var res map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
	require.Equal(t, "OK", res["status"])
}

func TestIndex(t *testing.T) {
	server, _ := newTestServer(t)

	recorder := doRequest(t, server, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
	require.Equal(t, serviceName, res.Name)
}

func TestAccountCRUD(t *testing.T) {
	server, mock := newTestServer(t)

	account1 := randomAccount(1)
	account2 := randomAccount(2)

	// Create the first account and follow its Location header.
	mock.ExpectQuery("INSERT INTO").
		WithArgs(account1.Name, account1.Email, account1.Address, account1.PhoneNumber, account1.DateJoined).
		WillReturnRows(accountRow(account1))

	recorder := doRequest(t, server, http.MethodPost, "/accounts", accountBody(t, account1))
	require.Equal(t, http.StatusCreated, recorder.Code)

	location := recorder.Header().Get("Location")
	require.Equal(t, fmt.Sprintf("/accounts/%d", account1.ID), location)

	created := decodeAccount(t, recorder)
	require.Equal(t, account1.Name, created.Name)
	require.Equal(t, account1.Email, created.Email)
	require.Equal(t, account1.Address, created.Address)
	require.Equal(t, account1.PhoneNumber, created.PhoneNumber)
	require.True(t, account1.DateJoined.Time.Equal(created.DateJoined.Time))

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(account1.ID).
		WillReturnRows(accountRow(account1))

	recorder = doRequest(t, server, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, account1.ID, decodeAccount(t, recorder).ID)

	// Create a sibling account.
	mock.ExpectQuery("INSERT INTO").
		WithArgs(account2.Name, account2.Email, account2.Address, account2.PhoneNumber, account2.DateJoined).
		WillReturnRows(accountRow(account2))

	recorder = doRequest(t, server, http.MethodPost, "/accounts", accountBody(t, account2))
	require.Equal(t, http.StatusCreated, recorder.Code)

	// List returns both ids.
	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(account1.ID, account1.Name, account1.Email, account1.Address, account1.PhoneNumber, account1.DateJoined.Time).
			AddRow(account2.ID, account2.Name, account2.Email, account2.Address, account2.PhoneNumber, account2.DateJoined.Time))

	recorder = doRequest(t, server, http.MethodGet, "/accounts", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var listed []domain.Account
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&listed))

	ids := map[int32]bool{}
	for _, a := range listed {
		ids[a.ID] = true
	}

	require.Len(t, listed, 2)
	require.True(t, ids[account1.ID])
	require.True(t, ids[account2.ID])

	// Update the first account's phone number; the sibling stays intact.
	updated := account1
	updated.PhoneNumber = "1234567890"

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(account1.ID).
		WillReturnRows(accountRow(account1))
	mock.ExpectQuery("UPDATE accounts").
		WithArgs(updated.Name, updated.Email, updated.Address, updated.PhoneNumber, updated.DateJoined, updated.ID).
		WillReturnRows(accountRow(updated))

	recorder = doRequest(t, server, http.MethodPut, location, accountBody(t, updated))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "1234567890", decodeAccount(t, recorder).PhoneNumber)

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(account2.ID).
		WillReturnRows(accountRow(account2))

	recorder = doRequest(t, server, http.MethodGet, fmt.Sprintf("/accounts/%d", account2.ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, account2.PhoneNumber, decodeAccount(t, recorder).PhoneNumber)

	// Delete the first account; a repeated read reports not found.
	mock.ExpectExec("DELETE FROM accounts").
		WithArgs(account1.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	recorder = doRequest(t, server, http.MethodDelete, location, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Zero(t, recorder.Body.Len())

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(account1.ID).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	recorder = doRequest(t, server, http.MethodGet, location, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WillReturnRows(accountRow(account2))

	recorder = doRequest(t, server, http.MethodGet, "/accounts", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	listed = nil
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&listed))
	require.Len(t, listed, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateValidation(t *testing.T) {
	server, mock := newTestServer(t)

	recorder := doRequest(t, server, http.MethodPost, "/accounts", []byte(`{"name": "not enough data"}`))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	account := randomAccount(1)

	req, err := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(accountBody(t, account)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/html")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}
