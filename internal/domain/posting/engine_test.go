package posting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// --- fakes ---

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
	if _, ok := r.journals[journal.ID]; !ok {
		return apperror.NewNotFound("journal", journal.ID.String())
	}
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

type stubResolver struct {
	products map[id.ID]ProductPosting
	invoices map[id.ID]*id.ID
}

func (r *stubResolver) ProductPostings(ctx context.Context, productIDs []id.ID) (map[id.ID]ProductPosting, error) {
	return r.products, nil
}

func (r *stubResolver) InvoiceAccounts(ctx context.Context, invoiceType string, invoiceIDs []id.ID) (map[id.ID]*id.ID, error) {
	return r.invoices, nil
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) Record(ctx context.Context, event Event) {
	s.events = append(s.events, event)
}

func (s *recordingSink) byKind(kind EventKind) []Event {
	var out []Event
	for _, ev := range s.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// stubDoc is a minimal posting source with a pre-built draft.
type stubDoc struct {
	entity.Document
	docType string
	total   types.Money
	draft   *Draft
}

func (s *stubDoc) GetDocumentType() string        { return s.docType }
func (s *stubDoc) GetTotalAmount() types.Money    { return s.total }
func (s *stubDoc) BuildJournal(ctx context.Context, r Resolver) (*Draft, error) {
	return s.draft, nil
}

func newStubDoc(docType, number string, total string) *stubDoc {
	doc := &stubDoc{
		docType: docType,
		total:   types.MustMoney(total),
	}
	doc.Document = entity.NewDocument("org-1")
	doc.Number = number
	return doc
}

func accountRef() *id.ID {
	accID := id.New()
	return &accID
}

func newTestEngine(repo *memJournalRepo, sink *recordingSink) *Engine {
	return NewEngine(repo, &stubResolver{}, sink, nil, DefaultConfig())
}

// --- tests ---

func TestPost_CreatesBalancedJournal(t *testing.T) {
	repo := newMemJournalRepo()
	sink := &recordingSink{}
	engine := newTestEngine(repo, sink)

	cash, expense := accountRef(), accountRef()
	draft := NewDraft(entity.CategoryExpense)
	draft.Debit("expense", expense, types.MustMoney("120.50"), LineSpec{})
	draft.Credit("cash", cash, types.MustMoney("120.50"), LineSpec{})

	doc := newStubDoc("expense", "EXP-2026-00001", "120.50")
	doc.draft = draft

	require.NoError(t, engine.Post(context.Background(), doc))

	journal, err := repo.GetBySource(context.Background(), "expense", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryExpense, journal.Category)
	assert.Equal(t, "EXP-2026-00001", journal.ReferenceNo)
	assert.Len(t, repo.lines[journal.ID], 2)

	totals, err := engine.CheckBalance(context.Background(), journal.ID)
	require.NoError(t, err)
	assert.True(t, totals.Balanced())
	assert.Empty(t, sink.events)
}

func TestPost_NilDraftPostsNothing(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})

	// A beginning-balance receipt builds no draft at all.
	doc := newStubDoc("purchase_receipt", "PR-2026-00001", "500.00")
	doc.draft = nil

	require.NoError(t, engine.Post(context.Background(), doc))
	assert.Empty(t, repo.journals)
}

func TestPost_SkipsLegsWithoutAccount(t *testing.T) {
	repo := newMemJournalRepo()
	sink := &recordingSink{}
	engine := newTestEngine(repo, sink)

	receivable := accountRef()
	draft := NewDraft(entity.CategorySalesInvoice)
	draft.Debit("receivable", receivable, types.MustMoney("1000.00"), LineSpec{})
	// Sales account not mapped on the category: the leg is dropped and
	// the journal comes out unbalanced.
	draft.Credit("sales", nil, types.MustMoney("1000.00"), LineSpec{})

	doc := newStubDoc("sales_invoice", "SI-2026-00001", "1000.00")
	doc.draft = draft

	require.NoError(t, engine.Post(context.Background(), doc))

	journal, err := repo.GetBySource(context.Background(), "sales_invoice", doc.ID)
	require.NoError(t, err)
	assert.Len(t, repo.lines[journal.ID], 1)

	skippedEvents := sink.byKind(EventLegSkipped)
	require.Len(t, skippedEvents, 1)
	assert.Equal(t, "sales", skippedEvents[0].Details["role"])

	unbalanced := sink.byKind(EventUnbalanced)
	require.Len(t, unbalanced, 1)
	assert.Equal(t, "1000", unbalanced[0].Details["debit"])
	assert.Equal(t, "0", unbalanced[0].Details["credit"])
}

func TestPost_HeaderLegGetsDefaultDepartment(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})

	draft := NewDraft(entity.CategoryIncome)
	draft.Debit("cash", accountRef(), types.MustMoney("50.00"), LineSpec{})
	deptID := id.New()
	draft.Credit("income", accountRef(), types.MustMoney("50.00"), LineSpec{DepartmentID: &deptID})

	doc := newStubDoc("income", "IN-2026-00001", "50.00")
	doc.draft = draft

	require.NoError(t, engine.Post(context.Background(), doc))

	journal, err := repo.GetBySource(context.Background(), "income", doc.ID)
	require.NoError(t, err)
	lines := repo.lines[journal.ID]
	require.Len(t, lines, 2)
	assert.Equal(t, WellKnownDefaultDepartmentID, lines[0].DepartmentID)
	assert.Equal(t, deptID, lines[1].DepartmentID)
}

func TestPost_LinesCarryDetailTimestamps(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})

	detailCreated := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)
	detailUpdated := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	draft := NewDraft(entity.CategoryExpense)
	draft.Debit("expense", accountRef(), types.MustMoney("10.00"), LineSpec{
		CreatedAt: detailCreated,
		UpdatedAt: detailUpdated,
	})
	draft.Credit("cash", accountRef(), types.MustMoney("10.00"), LineSpec{})

	doc := newStubDoc("expense", "EXP-2026-00002", "10.00")
	doc.draft = draft

	require.NoError(t, engine.Post(context.Background(), doc))

	journal, err := repo.GetBySource(context.Background(), "expense", doc.ID)
	require.NoError(t, err)
	lines := repo.lines[journal.ID]
	require.Len(t, lines, 2)

	// First leg keeps the originating detail row's timestamps.
	assert.Equal(t, detailCreated, lines[0].CreatedAt)
	assert.Equal(t, detailUpdated, lines[0].UpdatedAt)
	// Legs without provenance default to the journal header timestamps.
	assert.Equal(t, journal.CreatedAt, lines[1].CreatedAt)
}

func TestRepost_ReplacesLinesKeepsJournalID(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})
	ctx := context.Background()

	cash, expense := accountRef(), accountRef()
	draft := NewDraft(entity.CategoryExpense)
	draft.Debit("expense", expense, types.MustMoney("100.00"), LineSpec{})
	draft.Credit("cash", cash, types.MustMoney("100.00"), LineSpec{})

	doc := newStubDoc("expense", "EXP-2026-00003", "100.00")
	doc.draft = draft
	require.NoError(t, engine.Post(ctx, doc))

	original, err := repo.GetBySource(ctx, "expense", doc.ID)
	require.NoError(t, err)

	// Amount change and reference renumber: same journal row, new lines.
	doc.Number = "EXP-2026-00099"
	draft2 := NewDraft(entity.CategoryExpense)
	draft2.Debit("expense", expense, types.MustMoney("250.00"), LineSpec{})
	draft2.Credit("cash", cash, types.MustMoney("250.00"), LineSpec{})
	doc.draft = draft2

	require.NoError(t, engine.Repost(ctx, doc))

	updated, err := repo.GetBySource(ctx, "expense", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "EXP-2026-00099", updated.ReferenceNo)

	lines := repo.lines[updated.ID]
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Debit.Equal(types.MustMoney("250.00")))
}

func TestRepost_MissingJournalIsHardError(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})

	draft := NewDraft(entity.CategoryExpense)
	draft.Debit("expense", accountRef(), types.MustMoney("10.00"), LineSpec{})
	draft.Credit("cash", accountRef(), types.MustMoney("10.00"), LineSpec{})

	doc := newStubDoc("expense", "EXP-2026-00004", "10.00")
	doc.draft = draft

	err := engine.Repost(context.Background(), doc)
	require.Error(t, err)
	assert.True(t, apperror.IsJournalMissing(err))
}

func TestRepost_NilDraftDegradesToUnpost(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})
	ctx := context.Background()

	draft := NewDraft(entity.CategoryPurchaseReceipt)
	draft.Debit("inventory", accountRef(), types.MustMoney("700.00"), LineSpec{})
	draft.Credit("receipt", accountRef(), types.MustMoney("700.00"), LineSpec{})

	doc := newStubDoc("purchase_receipt", "PR-2026-00002", "700.00")
	doc.draft = draft
	require.NoError(t, engine.Post(ctx, doc))

	// Flipping the document to a beginning balance yields a nil draft;
	// the existing journal must be removed.
	doc.draft = nil
	require.NoError(t, engine.Repost(ctx, doc))
	assert.Empty(t, repo.journals)

	// And reposting again with no journal left stays silent.
	require.NoError(t, engine.Repost(ctx, doc))
}

func TestUnpost_MissingJournalTolerated(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})

	doc := newStubDoc("cash_transfer", "CT-2026-00001", "300.00")
	require.NoError(t, engine.Unpost(context.Background(), doc))
}

func TestUnpost_RemovesJournalAndLines(t *testing.T) {
	repo := newMemJournalRepo()
	engine := newTestEngine(repo, &recordingSink{})
	ctx := context.Background()

	draft := NewDraft(entity.CategoryCashTransfer)
	draft.Debit("to", accountRef(), types.MustMoney("300.00"), LineSpec{})
	draft.Credit("from", accountRef(), types.MustMoney("300.00"), LineSpec{})

	doc := newStubDoc("cash_transfer", "CT-2026-00002", "300.00")
	doc.draft = draft
	require.NoError(t, engine.Post(ctx, doc))
	require.Len(t, repo.journals, 1)

	require.NoError(t, engine.Unpost(ctx, doc))
	assert.Empty(t, repo.journals)
	assert.Empty(t, repo.lines)
}

func TestEngine_GuardBlocksPosting(t *testing.T) {
	repo := newMemJournalRepo()
	sink := &recordingSink{}

	guard, err := NewGuard([]Rule{
		{Name: "amount_limit", Expression: `amount <= 1000.0`},
	})
	require.NoError(t, err)

	engine := NewEngine(repo, &stubResolver{}, sink, guard, DefaultConfig())

	draft := NewDraft(entity.CategoryExpense)
	draft.Debit("expense", accountRef(), types.MustMoney("5000.00"), LineSpec{})
	draft.Credit("cash", accountRef(), types.MustMoney("5000.00"), LineSpec{})

	doc := newStubDoc("expense", "EXP-2026-00005", "5000.00")
	doc.draft = draft

	err = engine.Post(context.Background(), doc)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePostingGuard, appErr.Code)
	assert.Empty(t, repo.journals)
	require.Len(t, sink.byKind(EventGuardRejected), 1)
}
