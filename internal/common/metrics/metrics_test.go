package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	apperrors "search-bot/internal/common/errors"
)

func TestRecordError(t *testing.T) {
	counter := PipelineErrors.WithLabelValues(string(apperrors.ErrCodeGenerationEmpty), "AI")
	before := testutil.ToFloat64(counter)

	RecordError(apperrors.ErrCodeGenerationEmpty, "AI")
	RecordError(apperrors.ErrCodeGenerationEmpty, "AI")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
