package services_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/freshfold/app/services"
	"github.com/shashiranjanraj/freshfold/pkg/testkit"
)

// noNetwork returns a client that fails the test on any outgoing request.
func noNetwork(t *testing.T) *http.Client {
	t.Helper()
	return testkit.Client(func(req *http.Request) (*http.Response, error) {
		t.Errorf("unexpected network call to %s", req.URL)
		return testkit.JSONResponse(req, http.StatusTeapot, `{}`), nil
	})
}

func testKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(block))
}

func TestSheetsExporter_MissingCredentials(t *testing.T) {
	exp := &services.SheetsExporter{HTTPClient: noNetwork(t)}

	_, err := exp.Export(context.Background(), services.Aggregate(nil, nil), nil)
	assert.ErrorIs(t, err, services.ErrSheetsCredentials)
}

func TestSheetsExporter_MalformedKey(t *testing.T) {
	exp := &services.SheetsExporter{
		ClientEmail: "svc@project.iam.gserviceaccount.com",
		PrivateKey:  "not a pem key",
		HTTPClient:  noNetwork(t),
	}

	_, err := exp.Export(context.Background(), services.Aggregate(nil, nil), nil)
	assert.ErrorIs(t, err, services.ErrSheetsCredentials)
}

func TestSheetsExporter_CreatesSpreadsheet(t *testing.T) {
	var tokenCalls, createCalls, writeCalls int

	client := testkit.Client(func(req *http.Request) (*http.Response, error) {
		u := req.URL.String()
		switch {
		case strings.HasPrefix(u, "https://oauth2.googleapis.com/token"):
			tokenCalls++
			require.NoError(t, req.ParseForm())
			assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", req.PostForm.Get("grant_type"))
			assert.NotEmpty(t, req.PostForm.Get("assertion"))
			return testkit.JSONResponse(req, http.StatusOK, `{"access_token":"tok-123"}`), nil

		case strings.Contains(u, "values:batchUpdate"):
			writeCalls++
			assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))

			var body struct {
				ValueInputOption string `json:"valueInputOption"`
				Data             []struct {
					Range string `json:"range"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "RAW", body.ValueInputOption)
			require.Len(t, body.Data, 3)
			assert.Equal(t, "Summary!A1", body.Data[0].Range)
			return testkit.JSONResponse(req, http.StatusOK, `{}`), nil

		case strings.HasPrefix(u, "https://sheets.googleapis.com/v4/spreadsheets"):
			createCalls++
			assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
			return testkit.JSONResponse(req, http.StatusOK,
				`{"spreadsheetId":"sheet-1","spreadsheetUrl":"https://docs.google.com/spreadsheets/d/sheet-1"}`), nil
		}

		t.Errorf("unexpected request to %s", u)
		return testkit.JSONResponse(req, http.StatusNotFound, `{}`), nil
	})

	exp := &services.SheetsExporter{
		ClientEmail: "svc@project.iam.gserviceaccount.com",
		PrivateKey:  testKeyPEM(t),
		HTTPClient:  client,
	}

	snap := services.Aggregate(nil, nil)
	res, err := exp.Export(context.Background(), snap, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1", res.URL)
	assert.Empty(t, res.Data)

	assert.Equal(t, 1, tokenCalls)
	assert.Equal(t, 1, createCalls)
	assert.Equal(t, 1, writeCalls)
}
