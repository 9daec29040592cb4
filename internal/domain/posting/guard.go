package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/cel-go/cel"

	"moneta/internal/core/apperror"
	"moneta/pkg/logger"
)

// Rule is a tenant-configurable posting guard: a CEL expression that
// must evaluate to true for a document to post. Typical rules block
// backdated documents or cap amounts per document type.
type Rule struct {
	Name       string `db:"name" json:"name"`
	Expression string `db:"expression" json:"expression"`
}

// Guard evaluates compiled rules against a document before posting.
type Guard struct {
	programs []guardProgram
}

type guardProgram struct {
	name    string
	program cel.Program
}

// guardEnv declares the variables available to rule expressions.
func guardEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("document_type", cel.StringType),
		cel.Variable("amount", cel.DoubleType),
		cel.Variable("date", cel.TimestampType),
		cel.Variable("backdated", cel.BoolType),
	)
}

// NewGuard compiles the given rules. A rule that fails to compile or
// does not yield a boolean is rejected up front.
func NewGuard(rules []Rule) (*Guard, error) {
	env, err := guardEnv()
	if err != nil {
		return nil, fmt.Errorf("create guard env: %w", err)
	}

	g := &Guard{programs: make([]guardProgram, 0, len(rules))}
	for _, rule := range rules {
		ast, iss := env.Compile(rule.Expression)
		if iss.Err() != nil {
			return nil, fmt.Errorf("compile guard rule %q: %w", rule.Name, iss.Err())
		}
		if ast.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("guard rule %q must evaluate to bool, got %s", rule.Name, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("build guard rule %q: %w", rule.Name, err)
		}
		g.programs = append(g.programs, guardProgram{name: rule.Name, program: prg})
	}
	return g, nil
}

// Check evaluates all rules against the document. The first failing
// rule aborts the posting with a business-rule error.
func (g *Guard) Check(ctx context.Context, src Source) error {
	if g == nil || len(g.programs) == 0 {
		return nil
	}

	amount, _ := src.GetTotalAmount().Float64()
	activation := map[string]any{
		"document_type": src.GetDocumentType(),
		"amount":        amount,
		"date":          src.GetDate(),
		"backdated":     src.GetDate().Before(time.Now().UTC().Truncate(24 * time.Hour)),
	}

	for _, gp := range g.programs {
		out, _, err := gp.program.Eval(activation)
		if err != nil {
			return fmt.Errorf("evaluate guard rule %q: %w", gp.name, err)
		}
		allowed, ok := out.Value().(bool)
		if !ok {
			return fmt.Errorf("guard rule %q returned non-bool %T", gp.name, out.Value())
		}
		if !allowed {
			logger.Warn(ctx, "posting blocked by guard rule",
				"rule", gp.name,
				"document_type", src.GetDocumentType(),
				"document_id", src.GetID(),
			)
			return apperror.NewPostingGuard(gp.name).
				WithDetail("documentType", src.GetDocumentType()).
				WithDetail("documentId", src.GetID().String())
		}
	}
	return nil
}
