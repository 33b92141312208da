package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":      {},
	"request_id":     {},
	"created_at":     {},
	"transaction_id": {},
}

var (
	testCustomer      = domain.Principal{UserID: 7, Email: "jane@example.com", Role: domain.RoleCustomer}
	testOtherCustomer = domain.Principal{UserID: 8, Email: "john@example.com", Role: domain.RoleCustomer}
	testManager       = domain.Principal{UserID: 1, Email: "ops@example.com", Role: domain.RoleManager}
)

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

// cleanMap drops the fields that differ between runs.
func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func bearerHeaders(t testing.TB, app *TestApp, p domain.Principal) map[string]string {
	t.Helper()

	token, err := app.Tokens.Issue(p, time.Hour)
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + token}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	sql, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(sql))
	require.NoError(t, err)
}

func flushAllCache(t testing.TB, client *redis.Client) {
	t.Helper()

	require.NoError(t, client.FlushAll(context.Background()).Err())
}

// setupBaseShowState leaves one show with twenty free seats, A1 to B10.
func setupBaseShowState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/catalog_down.sql")
	flushAllCache(t, app.RedisClient)

	executeSQLFile(t, app.DB, "testdata/catalog_up.sql")
	executeSQLFile(t, app.DB, "testdata/seats_up.sql")
}

func availableSeatCount(t testing.TB, db *pgxpool.Pool, showID int) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT available_seats FROM shows WHERE id = $1", showID).Scan(&n)
	require.NoError(t, err)

	return n
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))

	return n
}
