package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveWriteBack(t *testing.T) {
	m := New()

	m.ObserveWriteBack(nil)
	m.ObserveWriteBack(errors.New("down"))
	m.ObserveWriteBack(errors.New("down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.writeBacks.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.writeBacks.WithLabelValues("failed")))
}

func TestObserveResolutionAndCheckout(t *testing.T) {
	m := New()

	m.ObserveResolution("active")
	m.ObserveCheckout("monthly", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkouts.WithLabelValues("monthly", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.checkouts.WithLabelValues("monthly", "failed")))
}
