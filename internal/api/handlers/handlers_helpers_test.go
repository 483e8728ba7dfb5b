package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/memory"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/store"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/application/services"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newRecords(t *testing.T, opts ...services.RecordManagerOption) *services.RecordManager {
	t.Helper()
	n := 0
	opts = append([]services.RecordManagerOption{
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithLocation(time.UTC),
		services.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	}, opts...)
	m := services.NewRecordManager(store.NewClinicStore(memory.NewKVStore()), opts...)
	require.NoError(t, m.Load(context.Background()))
	return m
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, w, &body)
	return body["error"]
}
