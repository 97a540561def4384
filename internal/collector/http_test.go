package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooFetcher(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1704180600,1704267000,1704353400],
			"indicators":{"quote":[{"open":[10,11,null],"high":[12,13,null],"low":[9,10,null],
			"close":[11,12,null],"volume":[200,300,null]}]}}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher(".NS", "")
	f.BaseURL = srv.URL
	bars, err := f.FetchDailyBars(context.Background(), "TCS", jan1, dec31)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/TCS.NS", gotPath)
	assert.Contains(t, gotQuery, "interval=1d")
	require.Len(t, bars, 2)
	assert.Equal(t, 11.0, bars[0].Close)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 12.0, bars[1].Close)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", "")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "NOPE", jan1, dec31)
	assert.ErrorContains(t, err, "No data found")
}

func TestYahooFetcher_SymbolMapping(t *testing.T) {
	f := NewYahooFetcher(".NS", "")
	assert.Equal(t, "^NSEI", f.yahooSymbol("NIFTY"))
	assert.Equal(t, "INFY.NS", f.yahooSymbol("INFY"))
	assert.Equal(t, "INFY.BO", f.yahooSymbol("INFY.BO"))
}

func TestRESTFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "ITC", r.URL.Query().Get("symbol"))
		w.Write([]byte(`[{"timestamp":1704153600,"open":1,"high":2,"low":1,"close":1.5,"volume":5},
			{"timestamp":1704240000,"open":2,"high":3,"low":1,"close":2.5,"volume":10}]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "ITC", jan1, dec31)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 1.5, bars[0].Close)
}

func TestRESTFetcher_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRESTFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "ITC", jan1, dec31)
	assert.ErrorContains(t, err, "status 502")
}

func TestRESTFetcher_KeepsResponseOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"timestamp":1704240000,"open":2,"high":3,"low":1,"close":2.5,"volume":10},
			{"timestamp":1704153600,"open":1,"high":2,"low":1,"close":1.5,"volume":5}]`))
	}))
	defer srv.Close()

	bars, err := NewRESTFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "ITC", jan1, dec31)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 2.5, bars[0].Close)
	assert.Equal(t, 1.5, bars[1].Close)
}
