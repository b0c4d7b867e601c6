package returns_test

import (
	"testing"

	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecision_Severity(t *testing.T) {
	assert.Equal(t, returns.SeverityLow, returns.DecisionAccepted.Severity())
	assert.Equal(t, returns.SeverityLow, returns.DecisionPendingReview.Severity())
	assert.Equal(t, returns.SeverityCritical, returns.DecisionRejected.Severity())
}

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"ACCEPTED", "PENDING_REVIEW", "REJECTED"} {
		d, err := returns.ParseDecision(s)
		require.NoError(t, err)
		assert.Equal(t, s, d.String())
	}

	_, err := returns.ParseDecision("accepted")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseSeverity(t *testing.T) {
	s, err := returns.ParseSeverity("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, returns.SeverityCritical, s)

	_, err = returns.ParseSeverity("HIGH")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
