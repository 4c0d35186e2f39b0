package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveRender(time.Now(), 100, nil)
	m.ObserveRender(time.Now(), 50, nil)
	m.ObserveRender(time.Now(), 10, context.Canceled)
	m.ObserveRender(time.Now(), 10, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rendersTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rendersTotal.WithLabelValues(ResultCancelled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rendersTotal.WithLabelValues(ResultError)))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.pixelsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(m.renderDuration))
}

func TestExportAndRequests(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ExportFailed()
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveRequest("/texture.png", "GET", 0)
	m.ObserveRequest("/texture.png", "GET", 400)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.exportFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/texture.png", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/texture.png", "GET", "400")))
}

func TestDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err)
}

func TestUnregistered(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	m.ExportFailed()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exportFailures))
}
