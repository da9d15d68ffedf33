package google

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, tokenURL string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	doc := map[string]string{
		"type":           "service_account",
		"project_id":     "gwmme-1700000000000",
		"private_key_id": "abc123",
		"private_key":    string(pemKey),
		"client_email":   "gwmme-service-account@gwmme-1700000000000.iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"token_uri":      tokenURL,
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestKeyFileMinterReturnsAccessToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.Form.Get("grant_type"))
		assert.NotEmpty(t, r.Form.Get("assertion"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"ya29.token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	minter := KeyFileMinter{KeyFile: writeKeyFile(t, srv.URL)}
	tok, err := minter.Token(context.Background(), "admin@example.com", []string{"https://www.googleapis.com/auth/admin.directory.user"})
	require.NoError(t, err)
	require.Equal(t, "ya29.token", tok)
}

func TestKeyFileMinterRefusedGrantIsUnauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized_client","error_description":"Client is unauthorized to retrieve access tokens"}`))
	}))
	defer srv.Close()

	minter := KeyFileMinter{KeyFile: writeKeyFile(t, srv.URL)}
	_, err := minter.Token(context.Background(), "admin@example.com", []string{"https://www.googleapis.com/auth/calendar"})
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
}

func TestKeyFileMinterMissingFileIsNotUnauthorized(t *testing.T) {
	t.Parallel()

	minter := KeyFileMinter{KeyFile: filepath.Join(t.TempDir(), "missing.json")}
	_, err := minter.Token(context.Background(), "admin@example.com", []string{"scope"})
	require.Error(t, err)
	require.False(t, IsUnauthorized(err))
}

func TestAPIClientSendsHeadersAndReturnsErrorBodies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "GWMME_create_service_account_v1", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"it is disabled"}}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.Client(), "GWMME_create_service_account_v1", nil)
	body, err := client.Get(context.Background(), srv.URL+"/gmail/v1/users/me/labels", "ya29.token")
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "it is disabled"))
}

func TestAPIClientTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewAPIClient(nil, "ua", nil)
	body, err := client.Get(context.Background(), url, "tok")
	require.Error(t, err)
	require.Nil(t, body)
}
