package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation_ExportsToRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewWithRegisterer("test", reg)
	defer obs.Shutdown()

	obs.RecordOperation(context.Background(), "load", "success", 12*time.Millisecond)
	obs.RecordOperation(context.Background(), "add_post", "failure", time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "store_operations") {
			found = true
			assert.Len(t, mf.GetMetric(), 2)
		}
	}
	assert.True(t, found, "store operation counter not exported")
}

func TestRecordOperation_NilSafe(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordOperation(context.Background(), "load", "success", time.Second)
		obs.Shutdown()
	})
}
