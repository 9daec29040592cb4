package documents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/numerator"
	"moneta/internal/core/types"
	"moneta/internal/domain"
	"moneta/internal/domain/posting"
	"moneta/internal/domain/registers/stock"
)

// --- fakes ---

// stubDoc is a minimal document with a pre-built journal draft and an
// optional stock movement set.
type stubDoc struct {
	entity.Document
	draft     *posting.Draft
	movements []entity.StockMovement
	invalid   bool
}

func (d *stubDoc) GetDocumentType() string     { return "stub_document" }
func (d *stubDoc) GetTotalAmount() types.Money { return types.Zero() }

func (d *stubDoc) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	return d.draft, nil
}

func (d *stubDoc) Validate(ctx context.Context) error {
	if d.invalid {
		return apperror.NewValidation("stub document is invalid")
	}
	return d.Document.Validate(ctx)
}

func newStubDoc(draft *posting.Draft) *stubDoc {
	doc := &stubDoc{draft: draft}
	doc.Document = entity.NewDocument("org-1")
	return doc
}

type memDocRepo struct {
	docs map[id.ID]*stubDoc
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{docs: make(map[id.ID]*stubDoc)}
}

func (r *memDocRepo) Create(ctx context.Context, doc *stubDoc) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *memDocRepo) GetByID(ctx context.Context, docID id.ID) (*stubDoc, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("stub_document", docID.String())
	}
	return doc, nil
}

func (r *memDocRepo) GetByNumber(ctx context.Context, number string) (*stubDoc, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			return doc, nil
		}
	}
	return nil, apperror.NewNotFound("stub_document", number)
}

func (r *memDocRepo) Update(ctx context.Context, doc *stubDoc) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("stub_document", doc.ID.String())
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *memDocRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

type memJournalRepo struct {
	journals map[id.ID]*entity.Journal
	lines    map[id.ID][]entity.JournalLine
}

func newMemJournalRepo() *memJournalRepo {
	return &memJournalRepo{
		journals: make(map[id.ID]*entity.Journal),
		lines:    make(map[id.ID][]entity.JournalLine),
	}
}

func (r *memJournalRepo) Insert(ctx context.Context, journal *entity.Journal) error {
	cp := *journal
	r.journals[journal.ID] = &cp
	return nil
}

func (r *memJournalRepo) GetBySource(ctx context.Context, sourceType string, sourceID id.ID) (*entity.Journal, error) {
	for _, j := range r.journals {
		if j.SourceType == sourceType && j.SourceID == sourceID {
			cp := *j
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("journal", sourceID.String())
}

func (r *memJournalRepo) UpdateHeader(ctx context.Context, journal *entity.Journal) error {
	cp := *journal
	r.journals[journal.ID] = &cp
	return nil
}

func (r *memJournalRepo) Delete(ctx context.Context, journalID id.ID) error {
	delete(r.journals, journalID)
	return nil
}

func (r *memJournalRepo) InsertLines(ctx context.Context, lines []entity.JournalLine) error {
	for _, line := range lines {
		r.lines[line.JournalID] = append(r.lines[line.JournalID], line)
	}
	return nil
}

func (r *memJournalRepo) DeleteLines(ctx context.Context, journalID id.ID) error {
	delete(r.lines, journalID)
	return nil
}

func (r *memJournalRepo) Totals(ctx context.Context, journalID id.ID) (entity.JournalTotals, error) {
	totals := entity.JournalTotals{JournalID: journalID, Debit: types.Zero(), Credit: types.Zero()}
	for _, line := range r.lines[journalID] {
		totals.Debit = totals.Debit.Add(line.Debit)
		totals.Credit = totals.Credit.Add(line.Credit)
	}
	return totals, nil
}

func (r *memJournalRepo) bySource(doc *stubDoc) *entity.Journal {
	j, _ := r.GetBySource(context.Background(), doc.GetDocumentType(), doc.ID)
	return j
}

type memStockRepo struct {
	movements map[id.ID][]entity.StockMovement
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{movements: make(map[id.ID][]entity.StockMovement)}
}

func (r *memStockRepo) ReplaceByRecorder(ctx context.Context, recorderType string, recorderID id.ID, movements []entity.StockMovement) error {
	r.movements[recorderID] = movements
	return nil
}

func (r *memStockRepo) DeleteByRecorder(ctx context.Context, recorderType string, recorderID id.ID) error {
	delete(r.movements, recorderID)
	return nil
}

func (r *memStockRepo) ListByRecorder(ctx context.Context, recorderType string, recorderID id.ID) ([]entity.StockMovement, error) {
	return r.movements[recorderID], nil
}

func (r *memStockRepo) Balance(ctx context.Context, productID id.ID, asOf time.Time) (types.Quantity, error) {
	return 0, nil
}

func (r *memStockRepo) Balances(ctx context.Context, asOf time.Time) ([]entity.StockBalance, error) {
	return nil, nil
}

func (r *memStockRepo) Turnover(ctx context.Context, productID id.ID, from, to time.Time) (types.Quantity, types.Quantity, error) {
	return 0, 0, nil
}

// passTx runs the closure directly; transaction boundaries are covered
// by the pgx TxManager's own behavior.
type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubResolver struct{}

func (stubResolver) ProductPostings(ctx context.Context, productIDs []id.ID) (map[id.ID]posting.ProductPosting, error) {
	return nil, nil
}

func (stubResolver) InvoiceAccounts(ctx context.Context, invoiceType string, invoiceIDs []id.ID) (map[id.ID]*id.ID, error) {
	return nil, nil
}

type fixture struct {
	svc      *Service[*stubDoc]
	docs     *memDocRepo
	journals *memJournalRepo
	stocks   *memStockRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	docs := newMemDocRepo()
	journals := newMemJournalRepo()
	stocks := newMemStockRepo()

	engine := posting.NewEngine(journals, stubResolver{}, nil, nil, posting.DefaultConfig())
	svc := NewService(ServiceConfig[*stubDoc]{
		Repo:         docs,
		Engine:       engine,
		Numerator:    &numerator.MockGenerator{},
		TxManager:    passTx{},
		DocumentName: "stub document",
		NumberPrefix: "ST",
		Stock:        stock.NewService(stocks),
		Movements: func(doc *stubDoc) []entity.StockMovement {
			return doc.movements
		},
	})

	return &fixture{svc: svc, docs: docs, journals: journals, stocks: stocks}
}

func balancedDraft() *posting.Draft {
	debitAcc, creditAcc := id.New(), id.New()
	draft := posting.NewDraft(entity.CategoryManualEntry)
	draft.Debit("target", &debitAcc, types.MustMoney("100.00"), posting.LineSpec{})
	draft.Credit("source", &creditAcc, types.MustMoney("100.00"), posting.LineSpec{})
	return draft
}

// --- tests ---

func TestCreate_PostsJournalAndRecordsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := newStubDoc(balancedDraft())
	doc.movements = []entity.StockMovement{
		entity.NewStockMovement(doc.ID, doc.GetDocumentType(), doc.Date,
			entity.RecordTypeReceipt, id.New(), types.NewQuantityFromFloat64(5)),
	}

	require.NoError(t, f.svc.Create(ctx, doc))

	assert.Equal(t, "MOCK-2026-00001", doc.Number)

	journal := f.journals.bySource(doc)
	require.NotNil(t, journal)
	assert.Equal(t, doc.Number, journal.ReferenceNo)
	assert.Len(t, f.journals.lines[journal.ID], 2)

	assert.Len(t, f.stocks.movements[doc.ID], 1)
}

func TestCreate_ValidationFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := newStubDoc(balancedDraft())
	doc.invalid = true

	err := f.svc.Create(ctx, doc)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	assert.Empty(t, f.docs.docs)
	assert.Empty(t, f.journals.journals)
}

func TestCreate_KeepsProvidedNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := newStubDoc(balancedDraft())
	doc.Number = "ST-2026-00042"

	require.NoError(t, f.svc.Create(ctx, doc))
	assert.Equal(t, "ST-2026-00042", doc.Number)
}

func TestUpdate_RepostsIntoSameJournal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := newStubDoc(balancedDraft())
	require.NoError(t, f.svc.Create(ctx, doc))

	before := f.journals.bySource(doc)
	require.NotNil(t, before)

	doc.Number = "ST-2026-99999"
	doc.draft = balancedDraft()
	require.NoError(t, f.svc.Update(ctx, doc))

	after := f.journals.bySource(doc)
	require.NotNil(t, after)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "ST-2026-99999", after.ReferenceNo)
	assert.Len(t, f.journals.lines[after.ID], 2)
}

func TestDelete_UnpostsAndClearsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := newStubDoc(balancedDraft())
	doc.movements = []entity.StockMovement{
		entity.NewStockMovement(doc.ID, doc.GetDocumentType(), doc.Date,
			entity.RecordTypeExpense, id.New(), types.NewQuantityFromFloat64(3)),
	}
	require.NoError(t, f.svc.Create(ctx, doc))
	journalID := f.journals.bySource(doc).ID

	require.NoError(t, f.svc.Delete(ctx, doc.ID))

	assert.Empty(t, f.docs.docs)
	assert.Nil(t, f.journals.bySource(doc))
	assert.Empty(t, f.journals.lines[journalID])
	assert.Empty(t, f.stocks.movements[doc.ID])
}

func TestDelete_NeverPostedDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Nil draft: the document does not post at all.
	doc := newStubDoc(nil)
	require.NoError(t, f.svc.Create(ctx, doc))
	require.Empty(t, f.journals.journals)

	require.NoError(t, f.svc.Delete(ctx, doc.ID))
	assert.Empty(t, f.docs.docs)
}

func TestLifecycle_HooksRun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var events []string
	f.svc.Hooks().On(domain.BeforeCreate, func(ctx context.Context, doc *stubDoc) error {
		events = append(events, "before_create")
		return nil
	})
	f.svc.Hooks().On(domain.AfterCreate, func(ctx context.Context, doc *stubDoc) error {
		events = append(events, "after_create")
		return nil
	})

	doc := newStubDoc(balancedDraft())
	require.NoError(t, f.svc.Create(ctx, doc))
	assert.Equal(t, []string{"before_create", "after_create"}, events)
}
