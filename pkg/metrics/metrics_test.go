package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Singleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestRecord(t *testing.T) {
	m := Default()

	// Smoke test: recording must not panic and must accept all outcomes.
	m.RecordFile(StatusSuccess, 10*time.Millisecond)
	m.RecordFile(StatusFailure, time.Millisecond)
	m.RecordFile(StatusSkipped, 0)
	m.AddFrames(100)
	m.AddRows(10)
	m.AddBytesMapped(1 << 20)
}

func TestRouter(t *testing.T) {
	Default() // make sure collectors are registered
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
