package polymarketgamma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMarketsRaw(t *testing.T) {
	closed := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "40", r.URL.Query().Get("offset"))
		assert.Equal(t, "false", r.URL.Query().Get("closed"))
		_, _ = w.Write([]byte(`[{"conditionId":"0xc1","volume":"1234.5","outcomes":"[\"Yes\", \"No\"]","orderMinSize":5}]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	items, err := client.GetMarketsRaw(context.Background(), GetMarketsParams{Limit: 20, Offset: 40, Closed: &closed})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "0xc1", items[0]["conditionId"])
	assert.Equal(t, `["Yes", "No"]`, items[0]["outcomes"])
	assert.Equal(t, json.Number("5"), items[0]["orderMinSize"])
}

func TestGetMarketsRawBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), server.URL).GetMarketsRaw(context.Background(), GetMarketsParams{})
	require.Error(t, err)
}

func TestGetMarketsRawStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), server.URL).GetMarketsRaw(context.Background(), GetMarketsParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}
