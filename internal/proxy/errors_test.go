package proxy

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyOriginErrorDeadlineExceeded(t *testing.T) {
	err := ClassifyOriginError(context.DeadlineExceeded, "http://origin.example.com/a.m3u8")
	assert.Equal(t, http.StatusGatewayTimeout, err.Code)
	assert.Equal(t, "http://origin.example.com/a.m3u8", err.LogFields["origin_url"])
}

func TestClassifyOriginErrorConnectionRefused(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	err := ClassifyOriginError(opErr, "http://origin.example.com/a.m3u8")
	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.Equal(t, ErrOriginRefused.Message, err.Message)
}

func TestClassifyOriginErrorFallsBackToGenericBadGateway(t *testing.T) {
	err := ClassifyOriginError(errors.New("boom"), "http://origin.example.com/a.m3u8")
	assert.Equal(t, http.StatusBadGateway, err.Code)
}

func TestClassifyOriginErrorDoesNotMutateSentinel(t *testing.T) {
	before := len(ErrOriginTimeout.LogFields)
	_ = ClassifyOriginError(context.DeadlineExceeded, "http://origin.example.com/a.m3u8")
	assert.Len(t, ErrOriginTimeout.LogFields, before)
}
