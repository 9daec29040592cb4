// Package documents provides the shared lifecycle service for business
// documents. Each document type wraps Service with its own repository,
// numbering prefix, and stock movement builder; the ledger posting call
// is uniform: create posts, update reposts, delete unposts, all inside
// one transaction with the document write.
package documents

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/numerator"
	"moneta/internal/core/tenant"
	"moneta/internal/core/tx"
	"moneta/internal/domain"
	"moneta/internal/domain/posting"
	"moneta/internal/domain/registers/stock"
	"moneta/pkg/logger"
)

// Document is the constraint for document types managed by Service.
type Document interface {
	posting.Source
	entity.Validatable
	SetReferenceNo(number string)
}

// Repository is the persistence contract per document type. Create,
// Update and Delete cover the header and the detail rows together.
type Repository[T Document] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, docID id.ID) (T, error)
	GetByNumber(ctx context.Context, number string) (T, error)
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
}

// MovementsFunc builds the stock movements a document records. Nil for
// document types that do not move stock.
type MovementsFunc[T Document] func(doc T) []entity.StockMovement

// ServiceConfig wires a document type into the shared lifecycle.
type ServiceConfig[T Document] struct {
	Repo      Repository[T]
	Engine    *posting.Engine
	Numerator numerator.Generator
	TxManager tx.Manager // optional in database-per-tenant mode

	// DocumentName for logs and error details, e.g. "sales invoice"
	DocumentName string

	// NumberPrefix for generated reference numbers, e.g. "SI"
	NumberPrefix string

	// NumberStrategy defaults to Strict (accounting documents)
	NumberStrategy numerator.Strategy

	// Stock + Movements enable stock register recording
	Stock     *stock.Service
	Movements MovementsFunc[T]
}

// Service implements the document lifecycle for one document type.
type Service[T Document] struct {
	cfg   ServiceConfig[T]
	hooks *domain.HookRegistry[T]
}

// NewService creates a document lifecycle service.
func NewService[T Document](cfg ServiceConfig[T]) *Service[T] {
	return &Service[T]{
		cfg:   cfg,
		hooks: domain.NewHookRegistry[T](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service[T]) Hooks() *domain.HookRegistry[T] {
	return s.hooks
}

func (s *Service[T]) getTxManager(ctx context.Context) (tx.Manager, error) {
	if s.cfg.TxManager != nil {
		return s.cfg.TxManager, nil
	}
	return tenant.TxManagerFromContext(ctx)
}

// ensureNumber generates a reference number when the document has none.
// Runs outside the business transaction: a rolled-back document must
// not roll back the sequence bump.
func (s *Service[T]) ensureNumber(ctx context.Context, doc T) error {
	if doc.GetReferenceNo() != "" {
		return nil
	}
	cfg := numerator.DefaultConfig(s.cfg.NumberPrefix)
	opts := &numerator.Options{Strategy: s.cfg.NumberStrategy}
	number, err := s.cfg.Numerator.GetNextNumber(ctx, cfg, opts, time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	doc.SetReferenceNo(number)
	return nil
}

func (s *Service[T]) recordStock(ctx context.Context, doc T) error {
	if s.cfg.Stock == nil || s.cfg.Movements == nil {
		return nil
	}
	return s.cfg.Stock.Record(ctx, doc.GetDocumentType(), doc.GetID(), s.cfg.Movements(doc))
}

func (s *Service[T]) clearStock(ctx context.Context, doc T) error {
	if s.cfg.Stock == nil {
		return nil
	}
	return s.cfg.Stock.Clear(ctx, doc.GetDocumentType(), doc.GetID())
}

// Create persists a new document and posts its journal in one
// transaction.
func (s *Service[T]) Create(ctx context.Context, doc T) error {
	if err := s.hooks.Run(ctx, domain.BeforeCreate, doc); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	if err := s.ensureNumber(ctx, doc); err != nil {
		return err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.cfg.Repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.recordStock(ctx, doc); err != nil {
			return fmt.Errorf("record stock: %w", err)
		}
		return s.cfg.Engine.Post(ctx, doc)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterCreate, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "document", s.cfg.DocumentName, "error", err)
	}

	logger.Info(ctx, s.cfg.DocumentName+" created",
		"id", doc.GetID(),
		"number", doc.GetReferenceNo())
	return nil
}

// GetByID retrieves a document with its detail rows.
func (s *Service[T]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	return s.cfg.Repo.GetByID(ctx, docID)
}

// GetByNumber retrieves a document by reference number.
func (s *Service[T]) GetByNumber(ctx context.Context, number string) (T, error) {
	return s.cfg.Repo.GetByNumber(ctx, number)
}

// Update persists document changes and reposts the journal in one
// transaction. The journal row is kept; only its content is replaced.
func (s *Service[T]) Update(ctx context.Context, doc T) error {
	if err := s.hooks.Run(ctx, domain.BeforeUpdate, doc); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.cfg.Repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.recordStock(ctx, doc); err != nil {
			return fmt.Errorf("record stock: %w", err)
		}
		return s.cfg.Engine.Repost(ctx, doc)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterUpdate, doc); err != nil {
		logger.Warn(ctx, "after-update hook failed", "document", s.cfg.DocumentName, "error", err)
	}
	return nil
}

// Delete removes the document, its stock movements, and its journal in
// one transaction. A document without a journal deletes cleanly.
func (s *Service[T]) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.cfg.Repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.BeforeDelete, doc); err != nil {
		return err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.clearStock(ctx, doc); err != nil {
			return fmt.Errorf("clear stock: %w", err)
		}
		if err := s.cfg.Engine.Unpost(ctx, doc); err != nil {
			return err
		}
		if err := s.cfg.Repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterDelete, doc); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "document", s.cfg.DocumentName, "error", err)
	}

	logger.Info(ctx, s.cfg.DocumentName+" deleted",
		"id", docID)
	return nil
}
