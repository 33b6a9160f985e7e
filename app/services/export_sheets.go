package services

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/config"
)

// ErrSheetsCredentials signals missing or malformed service-account
// credentials. Handlers map it to a client error; no network call has been
// made when it is returned.
var ErrSheetsCredentials = errors.New("sheets export: service account credentials missing or invalid")

const (
	sheetsTokenURL = "https://oauth2.googleapis.com/token"
	sheetsAPIBase  = "https://sheets.googleapis.com/v4/spreadsheets"
	sheetsScope    = "https://www.googleapis.com/auth/spreadsheets"
)

// SheetsExporter creates a new Google Sheets spreadsheet with the three
// report tables and returns its URL. Each call creates a fresh spreadsheet;
// the operation is deliberately not idempotent.
//
// Authentication is a two-legged service-account flow: a short-lived RS256
// assertion signed with the configured private key is exchanged for an
// access token at Google's token endpoint.
type SheetsExporter struct {
	ClientEmail string
	PrivateKey  string // PEM

	// HTTPClient is swappable for tests. Defaults to a 30 s client.
	HTTPClient *http.Client
	now        func() time.Time
}

// NewSheetsExporter builds the exporter from the environment-style config.
func NewSheetsExporter() *SheetsExporter {
	return &SheetsExporter{
		ClientEmail: config.GoogleClientEmail(),
		PrivateKey:  config.GooglePrivateKey(),
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		now:         time.Now,
	}
}

func (e *SheetsExporter) Export(ctx context.Context, snap *ReportSnapshot, _ []models.Order) (*ExportResult, error) {
	key, err := e.signingKey()
	if err != nil {
		return nil, err
	}

	token, err := e.accessToken(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("sheets export: token exchange: %w", err)
	}

	id, sheetURL, err := e.createSpreadsheet(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("sheets export: create spreadsheet: %w", err)
	}

	if err := e.writeTables(ctx, token, id, snap); err != nil {
		return nil, fmt.Errorf("sheets export: write values: %w", err)
	}

	return &ExportResult{URL: sheetURL}, nil
}

// signingKey validates the configured credentials before any network I/O.
func (e *SheetsExporter) signingKey() (*rsa.PrivateKey, error) {
	if e.ClientEmail == "" || e.PrivateKey == "" {
		return nil, ErrSheetsCredentials
	}

	// .env files carry the key with literal \n escapes.
	pem := strings.ReplaceAll(e.PrivateKey, `\n`, "\n")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetsCredentials, err)
	}
	return key, nil
}

func (e *SheetsExporter) timeNow() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func (e *SheetsExporter) accessToken(ctx context.Context, key *rsa.PrivateKey) (string, error) {
	now := e.timeNow()
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   e.ClientEmail,
		"scope": sheetsScope,
		"aud":   sheetsTokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sheetsTokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := e.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("empty access token in response")
	}
	return out.AccessToken, nil
}

func (e *SheetsExporter) createSpreadsheet(ctx context.Context, token string) (id, sheetURL string, err error) {
	body := map[string]interface{}{
		"properties": map[string]string{
			"title": "Sales Report " + e.timeNow().Format("2006-01-02 15:04"),
		},
		"sheets": []map[string]interface{}{
			{"properties": map[string]string{"title": sheetSummary}},
			{"properties": map[string]string{"title": sheetService}},
			{"properties": map[string]string{"title": sheetCustomer}},
		},
	}

	req, err := e.jsonRequest(ctx, token, sheetsAPIBase, body)
	if err != nil {
		return "", "", err
	}

	var out struct {
		SpreadsheetID  string `json:"spreadsheetId"`
		SpreadsheetURL string `json:"spreadsheetUrl"`
	}
	if err := e.do(req, &out); err != nil {
		return "", "", err
	}
	if out.SpreadsheetID == "" {
		return "", "", errors.New("no spreadsheet id in response")
	}
	return out.SpreadsheetID, out.SpreadsheetURL, nil
}

func (e *SheetsExporter) writeTables(ctx context.Context, token, id string, snap *ReportSnapshot) error {
	currency := config.CurrencySymbol()
	data := []map[string]interface{}{
		{"range": sheetSummary + "!A1", "values": toCells(summaryRows(snap, currency))},
		{"range": sheetService + "!A1", "values": toCells(serviceRows(snap, currency))},
		{"range": sheetCustomer + "!A1", "values": toCells(customerRows(snap, currency))},
	}
	body := map[string]interface{}{
		"valueInputOption": "RAW",
		"data":             data,
	}

	req, err := e.jsonRequest(ctx, token, sheetsAPIBase+"/"+id+"/values:batchUpdate", body)
	if err != nil {
		return err
	}
	return e.do(req, nil)
}

func (e *SheetsExporter) jsonRequest(ctx context.Context, token, endpoint string, body interface{}) (*http.Request, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

// do executes the request and decodes the JSON response into out (when non-nil).
func (e *SheetsExporter) do(req *http.Request, out interface{}) error {
	client := e.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func toCells(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}
