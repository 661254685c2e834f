package repository

import (
	"fmt"
	"strings"
	"time"

	"insurance-service/internal/models"

	"github.com/google/uuid"
)

// Scope is a named query preset: a WHERE fragment with ? placeholders and
// its arguments. Callers compose scopes explicitly instead of relying on
// implicit default filters.
type Scope struct {
	Clause string
	Args   []any
}

func NotDeleted() Scope {
	return Scope{Clause: "deleted_at IS NULL"}
}

func ForClient(clientID uuid.UUID) Scope {
	return Scope{Clause: "client_id = ?", Args: []any{clientID}}
}

func ForPolicy(policyID uuid.UUID) Scope {
	return Scope{Clause: "policy_id = ?", Args: []any{policyID}}
}

func WithStatus(status string) Scope {
	return Scope{Clause: "status = ?", Args: []any{status}}
}

// PendingPastValidity matches pending quotes whose window has closed.
func PendingPastValidity(now time.Time) Scope {
	return Scope{Clause: "status = ? AND valid_to < ?", Args: []any{string(models.QuotePending), now.Unix()}}
}

// ActivePastEndDate matches active policies whose coverage has ended.
func ActivePastEndDate(now time.Time) Scope {
	return Scope{Clause: "status = ? AND policy_end_date < ?", Args: []any{string(models.PolicyActive), now.Unix()}}
}

// WithOverdueInstallments matches active policies carrying overdue
// installments, the input set for payment reminders and lapsing.
func WithOverdueInstallments() Scope {
	return Scope{Clause: "status = ? AND overdue_installments > 0", Args: []any{string(models.PolicyActive)}}
}

// DueBefore matches unpaid commissions due before the given time.
func DueBefore(now time.Time) Scope {
	return Scope{
		Clause: "status IN (?, ?) AND due_date < ?",
		Args:   []any{string(models.CommissionPending), string(models.CommissionApproved), now.Unix()},
	}
}

// buildWhere joins scopes with AND and rewrites ? placeholders into
// positional $n parameters. An empty scope list yields an empty clause.
func buildWhere(scopes []Scope) (string, []any) {
	if len(scopes) == 0 {
		return "", nil
	}

	var (
		clauses []string
		args    []any
		n       int
	)
	for _, scope := range scopes {
		clause := scope.Clause
		for strings.Contains(clause, "?") {
			n++
			clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", n), 1)
		}
		clauses = append(clauses, clause)
		args = append(args, scope.Args...)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
