package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveArticleMutation(t *testing.T) {
	success := testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("add", "success"))
	failure := testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("add", "failure"))

	ObserveArticleMutation("add", nil)
	ObserveArticleMutation("add", errors.New("boom"))
	ObserveArticleMutation("add", errors.New("boom"))

	assert.Equal(t, success+1, testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("add", "success")))
	assert.Equal(t, failure+2, testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("add", "failure")))
}

func TestObserveLogin(t *testing.T) {
	ok := testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues("success"))
	bad := testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues("failure"))

	ObserveLogin(true)
	ObserveLogin(false)

	assert.Equal(t, ok+1, testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues("success")))
	assert.Equal(t, bad+1, testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues("failure")))
}
