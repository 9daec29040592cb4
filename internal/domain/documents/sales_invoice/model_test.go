package sales_invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/posting"
)

type stubResolver struct {
	postings map[id.ID]posting.ProductPosting
}

func (s *stubResolver) ProductPostings(_ context.Context, _ []id.ID) (map[id.ID]posting.ProductPosting, error) {
	return s.postings, nil
}

func (s *stubResolver) InvoiceAccounts(_ context.Context, _ string, _ []id.ID) (map[id.ID]*id.ID, error) {
	return nil, nil
}

func accountRef() *id.ID {
	accID := id.New()
	return &accID
}

// An invoice whose category maps the sales and inventory accounts but
// not the purchase account produces a journal that does not balance:
// one debit of the invoice total against two credits of the line
// amount. The posting engine records this state instead of repairing
// it.
func TestBuildJournal_PartialMappingDoesNotBalance(t *testing.T) {
	receivableAcc := id.New()
	salesAcc := accountRef()
	inventoryAcc := accountRef()
	productID := id.New()

	doc := NewSalesInvoice("org-1", id.New(), receivableAcc)
	doc.TaxAmount = types.MustMoney("100.00")
	doc.AddLine(productID, types.NewQuantityFromFloat64(1), types.MustMoney("1000.00"))
	require.True(t, doc.TotalAmount.Equal(types.MustMoney("1100.00")))

	resolver := &stubResolver{postings: map[id.ID]posting.ProductPosting{
		productID: {
			ProductID:          productID,
			SalesAccountID:     salesAcc,
			InventoryAccountID: inventoryAcc,
			// purchase account not mapped: the cost leg drops out
		},
	}}

	draft, err := doc.BuildJournal(context.Background(), resolver)
	require.NoError(t, err)
	require.Len(t, draft.Lines, 4)

	assert.Equal(t, "receivable", draft.Lines[0].Role)
	assert.Equal(t, receivableAcc, *draft.Lines[0].AccountID)
	assert.True(t, draft.Lines[0].Debit.Equal(types.MustMoney("1100.00")))

	assert.Equal(t, "purchase", draft.Lines[1].Role)
	assert.Nil(t, draft.Lines[1].AccountID)

	assert.Equal(t, "sales", draft.Lines[2].Role)
	assert.True(t, draft.Lines[2].Credit.Equal(types.MustMoney("1000.00")))
	assert.Equal(t, "inventory", draft.Lines[3].Role)
	assert.True(t, draft.Lines[3].Credit.Equal(types.MustMoney("1000.00")))

	// with the dropped leg excluded: 1100 debit vs 2000 credit
	debit, credit := types.Zero(), types.Zero()
	for _, spec := range draft.Lines {
		if spec.AccountID == nil {
			continue
		}
		debit = debit.Add(spec.Debit)
		credit = credit.Add(spec.Credit)
	}
	assert.True(t, debit.Equal(types.MustMoney("1100.00")), "debit: %s", debit)
	assert.True(t, credit.Equal(types.MustMoney("2000.00")), "credit: %s", credit)
	assert.False(t, debit.Equal(credit))
}

func TestBuildJournal_FullMappingBalances(t *testing.T) {
	productID := id.New()
	doc := NewSalesInvoice("org-1", id.New(), id.New())
	doc.AddLine(productID, types.NewQuantityFromFloat64(2), types.MustMoney("500.00"))

	resolver := &stubResolver{postings: map[id.ID]posting.ProductPosting{
		productID: {
			ProductID:          productID,
			PurchaseAccountID:  accountRef(),
			SalesAccountID:     accountRef(),
			InventoryAccountID: accountRef(),
		},
	}}

	draft, err := doc.BuildJournal(context.Background(), resolver)
	require.NoError(t, err)
	require.Len(t, draft.Lines, 4)

	// header 1000 + cost 1000 debit vs sales 1000 + inventory 1000 credit
	debit, credit := draft.Totals()
	assert.True(t, debit.Equal(credit), "debit %s credit %s", debit, credit)
}

func TestRecalculateTotals_IncludesTax(t *testing.T) {
	doc := NewSalesInvoice("org-1", id.New(), id.New())
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(3), types.MustMoney("10.00"))
	require.True(t, doc.TotalAmount.Equal(types.MustMoney("30.00")))
	assert.False(t, doc.HasTax())

	doc.TaxAmount = types.MustMoney("3.30")
	doc.RecalculateTotals()
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("33.30")))
	assert.True(t, doc.HasTax())
}
