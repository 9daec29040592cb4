package purchase_receipt

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

func TestBuildJournal_TwoLines(t *testing.T) {
	inventoryAcc := accountRef()
	receiptAcc := accountRef()

	productA := id.New()
	productB := id.New()

	doc := NewPurchaseReceipt("org-1", id.New())
	doc.AddLine(productA, types.NewQuantityFromFloat64(10), types.MustMoney("100.00"))
	doc.AddLine(productB, types.NewQuantityFromFloat64(5), types.MustMoney("50.00"))

	require.True(t, doc.TotalAmount.Equal(types.MustMoney("1250.00")))

	resolver := &stubResolver{postings: map[id.ID]posting.ProductPosting{
		productA: {
			ProductID:                productA,
			IsStockTracking:          true,
			InventoryAccountID:       inventoryAcc,
			PurchaseReceiptAccountID: receiptAcc,
		},
		productB: {
			ProductID:                productB,
			IsStockTracking:          true,
			InventoryAccountID:       inventoryAcc,
			PurchaseReceiptAccountID: receiptAcc,
		},
	}}

	draft, err := doc.BuildJournal(context.Background(), resolver)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, entity.CategoryPurchaseReceipt, draft.Category)

	require.Len(t, draft.Lines, 4)

	debit, credit := draft.Totals()
	assert.True(t, debit.Equal(types.MustMoney("1250.00")), "debit total: %s", debit)
	assert.True(t, credit.Equal(types.MustMoney("1250.00")), "credit total: %s", credit)

	// line 1 debits inventory, line 2 credits the accrual, per detail
	assert.Equal(t, "inventory", draft.Lines[0].Role)
	assert.Equal(t, inventoryAcc, draft.Lines[0].AccountID)
	assert.True(t, draft.Lines[0].Debit.Equal(types.MustMoney("1000.00")))
	assert.Equal(t, "purchase_receipt", draft.Lines[1].Role)
	assert.Equal(t, receiptAcc, draft.Lines[1].AccountID)
	assert.True(t, draft.Lines[1].Credit.Equal(types.MustMoney("1000.00")))
	assert.True(t, draft.Lines[2].Debit.Equal(types.MustMoney("250.00")))
	assert.True(t, draft.Lines[3].Credit.Equal(types.MustMoney("250.00")))
}

func TestBuildJournal_Beginning(t *testing.T) {
	doc := NewPurchaseReceipt("org-1", id.New())
	doc.IsBeginning = true
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(3), types.MustMoney("10.00"))

	draft, err := doc.BuildJournal(context.Background(), &stubResolver{})
	require.NoError(t, err)
	assert.Nil(t, draft, "beginning receipts must not post")

	// stock is still recorded
	movements := doc.StockMovements()
	require.Len(t, movements, 1)
	assert.Equal(t, entity.RecordTypeReceipt, movements[0].RecordType)
}

func TestBuildJournal_UntrackedProductSkipsInventory(t *testing.T) {
	productID := id.New()
	doc := NewPurchaseReceipt("org-1", id.New())
	doc.AddLine(productID, types.NewQuantityFromFloat64(1), types.MustMoney("75.00"))

	resolver := &stubResolver{postings: map[id.ID]posting.ProductPosting{
		productID: {
			ProductID:                productID,
			IsStockTracking:          false,
			InventoryAccountID:       accountRef(),
			PurchaseReceiptAccountID: accountRef(),
		},
	}}

	draft, err := doc.BuildJournal(context.Background(), resolver)
	require.NoError(t, err)
	require.Len(t, draft.Lines, 2)
	assert.Nil(t, draft.Lines[0].AccountID, "inventory leg stays nil for non-tracked products")
	assert.NotNil(t, draft.Lines[1].AccountID)
}

func TestBuildJournal_UnmappedProduct(t *testing.T) {
	doc := NewPurchaseReceipt("org-1", id.New())
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(2), types.MustMoney("20.00"))

	// resolver knows nothing about the product: both legs stay nil
	draft, err := doc.BuildJournal(context.Background(), &stubResolver{})
	require.NoError(t, err)
	require.Len(t, draft.Lines, 2)
	assert.Nil(t, draft.Lines[0].AccountID)
	assert.Nil(t, draft.Lines[1].AccountID)
}

func TestValidate(t *testing.T) {
	doc := NewPurchaseReceipt("org-1", id.Nil())
	doc.Number = "PR-2026-00001"
	err := doc.Validate(context.Background())
	require.Error(t, err, "vendor is required")

	doc.VendorID = id.New()
	err = doc.Validate(context.Background())
	require.Error(t, err, "lines are required")

	doc.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("5.00"))
	require.NoError(t, doc.Validate(context.Background()))
}
