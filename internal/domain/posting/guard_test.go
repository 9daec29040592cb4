package posting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/apperror"
)

func TestNewGuard_RejectsInvalidExpressions(t *testing.T) {
	_, err := NewGuard([]Rule{{Name: "broken", Expression: `amount <<`}})
	require.Error(t, err)

	_, err = NewGuard([]Rule{{Name: "not_bool", Expression: `amount + 1.0`}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must evaluate to bool")
}

func TestGuard_AllowsAndBlocks(t *testing.T) {
	guard, err := NewGuard([]Rule{
		{Name: "amount_limit", Expression: `amount <= 1000.0 || document_type == "cash_transfer"`},
		{Name: "no_backdating", Expression: `!backdated`},
	})
	require.NoError(t, err)
	ctx := context.Background()

	small := newStubDoc("expense", "EXP-1", "999.99")
	require.NoError(t, guard.Check(ctx, small))

	big := newStubDoc("expense", "EXP-2", "1000.01")
	err = guard.Check(ctx, big)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePostingGuard, appErr.Code)
	assert.Equal(t, "expense", appErr.Details["documentType"])

	// The amount limit does not apply to transfers.
	transfer := newStubDoc("cash_transfer", "CT-1", "50000.00")
	require.NoError(t, guard.Check(ctx, transfer))

	backdated := newStubDoc("expense", "EXP-3", "10.00")
	backdated.Date = time.Now().UTC().AddDate(0, -1, 0)
	err = guard.Check(ctx, backdated)
	require.Error(t, err)
}

func TestGuard_NilGuardAllowsEverything(t *testing.T) {
	var guard *Guard
	require.NoError(t, guard.Check(context.Background(), newStubDoc("income", "IN-1", "1.00")))
}
