package logging

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

// RequestIDHeader is set by the API client on every outbound request.
const RequestIDHeader = "X-Request-ID"

type operationKey struct{}

// WithOperation names the client operation a request belongs to, e.g. "ListCustomers".
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey{}, name)
}

func OperationName(ctx context.Context) string {
	name, _ := ctx.Value(operationKey{}).(string)
	return name
}

// Transport logs every outbound request as one entry with its timing, status and
// request id.
type Transport struct {
	Base   http.RoundTripper
	Logger *logrus.Logger
}

func NewTransport(base http.RoundTripper, log *logrus.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Logger: log}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	loggingName := OperationName(req.Context())
	if loggingName == "" {
		loggingName = req.Method
	}

	logData := GetLogData(req.Context())
	if logData == nil {
		logData = NewLogData(t.Logger)
	}

	t.Logger.Debugf("Client.%v.Start", loggingName)

	logData.AddData("method", req.Method)
	logData.AddData("path", req.URL.Path)
	if requestID := req.Header.Get(RequestIDHeader); requestID != "" {
		logData.AddData("requestID", requestID)
	}

	endTimer := logData.AddTiming("durationMs")
	resp, err := t.Base.RoundTrip(req)
	endTimer()
	if err != nil {
		logData.Log().WithError(err).Errorf("Client.%v.Error", loggingName)
		return nil, err
	}

	logData.AddData("status", resp.StatusCode)
	if resp.StatusCode >= http.StatusBadRequest {
		logData.Log().Warnf("Client.%v.Failed", loggingName)
		return resp, nil
	}

	logData.Log().Infof("Client.%v.Complete", loggingName)
	return resp, nil
}
