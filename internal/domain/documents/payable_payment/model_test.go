package payable_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/posting"
)

type stubResolver struct {
	accounts map[id.ID]*id.ID
}

func (s *stubResolver) ProductPostings(_ context.Context, _ []id.ID) (map[id.ID]posting.ProductPosting, error) {
	return nil, nil
}

func (s *stubResolver) InvoiceAccounts(_ context.Context, _ string, _ []id.ID) (map[id.ID]*id.ID, error) {
	return s.accounts, nil
}

func TestBuildJournal_AllocationsDebitInvoiceAccounts(t *testing.T) {
	payableAcc := id.New()
	invoiceA := id.New()
	invoiceB := id.New()

	doc := NewPayablePayment("org-1", id.New(), id.New())
	doc.Allocate(invoiceA, types.MustMoney("300.00"))
	doc.Allocate(invoiceB, types.MustMoney("200.00"))
	require.True(t, doc.TotalAmount.Equal(types.MustMoney("500.00")))

	resolver := &stubResolver{accounts: map[id.ID]*id.ID{
		invoiceA: &payableAcc,
		invoiceB: &payableAcc,
	}}

	draft, err := doc.BuildJournal(context.Background(), resolver)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryPayablePayment, draft.Category)
	require.Len(t, draft.Lines, 3)

	assert.Equal(t, "paying_account", draft.Lines[0].Role)
	assert.True(t, draft.Lines[0].Credit.Equal(types.MustMoney("500.00")))

	assert.Equal(t, "payable", draft.Lines[1].Role)
	assert.Equal(t, &payableAcc, draft.Lines[1].AccountID)
	assert.True(t, draft.Lines[1].Debit.Equal(types.MustMoney("300.00")))
	assert.True(t, draft.Lines[2].Debit.Equal(types.MustMoney("200.00")))

	debit, credit := draft.Totals()
	assert.True(t, debit.Equal(credit))
}

func TestBuildJournal_UnresolvedInvoiceAccountSkips(t *testing.T) {
	doc := NewPayablePayment("org-1", id.New(), id.New())
	doc.Allocate(id.New(), types.MustMoney("100.00"))

	// resolver has no account for the invoice: the allocation leg stays
	// nil and is dropped at materialization
	draft, err := doc.BuildJournal(context.Background(), &stubResolver{})
	require.NoError(t, err)
	require.Len(t, draft.Lines, 2)
	assert.Nil(t, draft.Lines[1].AccountID)
}

func TestValidate(t *testing.T) {
	doc := NewPayablePayment("org-1", id.New(), id.New())
	err := doc.Validate(context.Background())
	require.Error(t, err, "allocations are required")

	doc.Allocate(id.New(), types.MustMoney("0.00"))
	err = doc.Validate(context.Background())
	require.Error(t, err, "zero allocation rejected")

	doc.Details[0].Amount = types.MustMoney("50.00")
	require.NoError(t, doc.Validate(context.Background()))
}
