package logging

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func TestTransport_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger, hook := newTestLogger()
	client := &http.Client{Transport: NewTransport(nil, logger)}

	ctx := WithOperation(context.Background(), "ListCustomers")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/customers/", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "req-1")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Client.ListCustomers.Complete", entry.Message)
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "/customers/", entry.Data["path"])
	assert.Equal(t, "req-1", entry.Data["requestID"])
	assert.Contains(t, entry.Data, "durationMs")
}

func TestTransport_FailedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger, hook := newTestLogger()
	client := &http.Client{Transport: NewTransport(nil, logger)}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Client.GET.Failed", entry.Message)
}

func TestTransport_Error(t *testing.T) {
	logger, hook := newTestLogger()
	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: no such host")
	})
	client := &http.Client{Transport: NewTransport(base, logger)}

	_, err := client.Get("http://bank.invalid/")
	assert.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "Client.GET.Error", entry.Message)
}

func TestTransport_UsesContextLogData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger, _ := newTestLogger()
	logData := NewLogData(logger)
	logData.AddData("command", "bank customers list")

	client := &http.Client{Transport: NewTransport(nil, logger)}
	req, err := http.NewRequestWithContext(WithLogData(context.Background(), logData), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	status, ok := logData.Data("status")
	assert.True(t, ok)
	assert.Equal(t, http.StatusNoContent, status)
	_, ok = logData.Timing("durationMs")
	assert.True(t, ok)
}
