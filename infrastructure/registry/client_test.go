package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/silverium/labelgen/constant"
	"github.com/silverium/labelgen/domain/kepingan"
	"github.com/silverium/labelgen/infrastructure/session"
	"github.com/stretchr/testify/assert"
)

func TestProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/admin/produk/42", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       42,
			"nama":     "Perak Batangan",
			"gramasi":  "10g",
			"fineness": "999",
			"series":   "bullion",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore("token-abc"))

	product, err := client.Product(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), product.ID)
	assert.Equal(t, "Perak Batangan", product.Name)
	assert.Equal(t, "10g", product.Gramasi)
	assert.Equal(t, "bullion", product.Series)
}

func TestProduct_MissingFieldsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 42})
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore(""))

	product, err := client.Product(context.Background(), 42)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrProductInvalid, err.Error())
	assert.Nil(t, product)
}

func previewPayload(records ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"kepingan": records}
}

func TestPreviewKepingan_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/produk/42/preview-qr", r.URL.Path)

		var req map[string]int
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req["jumlah"])

		json.NewEncoder(w).Encode(previewPayload(
			map[string]interface{}{"uniqueId": "abcdef123456", "validationCode": "A1B2", "productId": 42},
			map[string]interface{}{"uniqueId": "ghijkl789012", "validationCode": "C3D4", "productId": 42},
			map[string]interface{}{"uniqueId": "mnopqr345678", "validationCode": "E5F6", "productId": 42},
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore("token-abc"))

	list, err := client.PreviewKepingan(context.Background(), 42, 3)

	assert.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "abcdef123456", list[0].UniqueID)
	assert.Equal(t, "C3D4", list[1].ValidationCode)
	assert.Equal(t, uint(42), list[2].ProductID)
}

func TestPreviewKepingan_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(previewPayload(
			map[string]interface{}{"uniqueId": "abcdef123456", "validationCode": "A1B2"},
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore(""))

	list, err := client.PreviewKepingan(context.Background(), 42, 3)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrCountMismatch, err.Error())
	assert.Nil(t, list)
}

func TestPreviewKepingan_DuplicateUniqueID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(previewPayload(
			map[string]interface{}{"uniqueId": "abcdef123456", "validationCode": "A1B2"},
			map[string]interface{}{"uniqueId": "abcdef123456", "validationCode": "C3D4"},
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore(""))

	list, err := client.PreviewKepingan(context.Background(), 42, 2)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrDuplicateUniqueID, err.Error())
	assert.Nil(t, list)
}

func TestPreviewKepingan_EmptyFieldsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(previewPayload(
			map[string]interface{}{"uniqueId": "", "validationCode": "A1B2"},
		))
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore(""))

	_, err := client.PreviewKepingan(context.Background(), 42, 1)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyUniqueID, err.Error())
}

func TestPreviewKepingan_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore(""))

	_, err := client.PreviewKepingan(context.Background(), 42, 1)

	assert.Error(t, err)
	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, "preview-qr", statusErr.Op)
}

func TestUnauthorized_ClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sess := session.NewStore("stale-token")
	client := NewClient(server.URL, sess)

	_, err := client.PreviewKepingan(context.Background(), 42, 1)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrUnauthorized, err.Error())
	assert.False(t, sess.Authenticated())
	assert.Equal(t, "", sess.Token())
}

func TestSaveKepingan_Success(t *testing.T) {
	var received map[string][]map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/produk/save-kepingan", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore("token-abc"))

	err := client.SaveKepingan(context.Background(), []kepingan.Kepingan{
		{UniqueID: "abcdef123456", ValidationCode: "A1B2", ProductID: 42},
		{UniqueID: "ghijkl789012", ValidationCode: "C3D4", ProductID: 42},
	})

	assert.NoError(t, err)
	assert.Len(t, received["kepinganList"], 2)
	assert.Equal(t, "abcdef123456", received["kepinganList"][0]["uniqueId"])
}

func TestSaveKepingan_EmptyListNeverSent(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer server.Close()

	client := NewClient(server.URL, session.NewStore(""))

	err := client.SaveKepingan(context.Background(), nil)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyBatch, err.Error())
	assert.False(t, hit)
}
