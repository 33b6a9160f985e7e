package bind_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/freshfold/pkg/bind"
)

type bookingInput struct {
	Address string  `json:"address" validate:"required,min=5"`
	Weight  float64 `json:"weight" validate:"nullable,gt=0"`
	Express bool    `json:"express"`
	Notes   string  `json:"notes"`
}

func postForm(values url.Values) *strings.Reader {
	return strings.NewReader(values.Encode())
}

func TestForm_BindsByJSONTag(t *testing.T) {
	values := url.Values{}
	values.Set("address", "12 Laundry Lane")
	values.Set("weight", "3.5")
	values.Set("express", "on")
	values.Set("notes", "ring the bell")

	req := httptest.NewRequest("POST", "/booking", postForm(values))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in bookingInput
	errs, err := bind.Form(req, &in)
	require.NoError(t, err)
	require.Empty(t, errs)

	assert.Equal(t, "12 Laundry Lane", in.Address)
	assert.Equal(t, 3.5, in.Weight)
	assert.True(t, in.Express)
	assert.Equal(t, "ring the bell", in.Notes)
}

func TestForm_ValidationErrors(t *testing.T) {
	values := url.Values{}
	values.Set("address", "abc") // below min=5

	req := httptest.NewRequest("POST", "/booking", postForm(values))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in bookingInput
	errs, err := bind.Form(req, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "address")
}

func TestForm_TypeMismatch(t *testing.T) {
	values := url.Values{}
	values.Set("address", "12 Laundry Lane")
	values.Set("weight", "heavy")

	req := httptest.NewRequest("POST", "/booking", postForm(values))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in bookingInput
	_, err := bind.Form(req, &in)
	assert.Error(t, err)
}

func TestForm_NeedsStructPointer(t *testing.T) {
	req := httptest.NewRequest("POST", "/booking", postForm(url.Values{}))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var notAStruct int
	_, err := bind.Form(req, &notAStruct)
	assert.Error(t, err)
}

func TestJSON_Binds(t *testing.T) {
	body := `{"address":"12 Laundry Lane","weight":2.25}`
	req := httptest.NewRequest("POST", "/booking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var in bookingInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, 2.25, in.Weight)
}

func TestJSON_Malformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/booking", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	var in bookingInput
	_, err := bind.JSON(req, &in)
	assert.Error(t, err)
}
