package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"

	"github.com/retailops/sales-analytics/internal/logger"
)

func testLog() zerolog.Logger {
	return logger.NewWithWriter(io.Discard)
}

func TestFetchProductsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[
			{"id":101,"title":"Laptop","category":"laptops","brand":"Acme","price":999.5,"rating":4.5},
			{"id":102,"title":"Mouse","category":"peripherals","brand":"Clicko","price":25,"rating":4.1}
		]}`))
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, time.Second, testLog())
	products := client.FetchProducts(context.Background())

	assert.Equal(t, 2, len(products))
	assert.Equal(t, "Laptop", products[101].Title)
	assert.Equal(t, "peripherals", products[102].Category)
	assert.Equal(t, 4.5, products[101].Rating)
}

func TestFetchProductsFailuresReturnEmptyMap(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"products": not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewCatalogClient(server.URL, time.Second, testLog())
			products := client.FetchProducts(context.Background())

			assert.Equal(t, 0, len(products))
		})
	}
}

func TestFetchProductsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, 10*time.Millisecond, testLog())
	products := client.FetchProducts(context.Background())

	assert.Equal(t, 0, len(products))
}

func TestFetchProductsUnreachableHost(t *testing.T) {
	client := NewCatalogClient("http://127.0.0.1:1", time.Second, testLog())
	products := client.FetchProducts(context.Background())

	assert.Equal(t, 0, len(products))
}
