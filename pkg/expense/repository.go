package expense

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, userId int, expense Expense) (int, error)
	GetById(ctx context.Context, userId int, expenseId int) (Expense, error)
	ListForPlan(ctx context.Context, userId int, planId int) ([]Expense, error)
	ListForPlanItem(ctx context.Context, userId int, planItemId int) ([]Expense, error)
	DeleteBatch(ctx context.Context, userId int, expenseIds []int) (int, error)
	Delete(ctx context.Context, userId int, expenseId int) (bool, error)
	SpentByCategory(ctx context.Context, userId int, planId int) (map[int]decimal.Decimal, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	query := `INSERT INTO expense (user_id, plan_id, category_id, plan_item_id, name, amount, expense_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		userId,
		expense.PlanId,
		expense.CategoryId,
		expense.PlanItemId,
		expense.Name,
		expense.Amount,
		expense.Date,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to store expense: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetById(ctx context.Context, userId int, expenseId int) (Expense, error) {
	query := `SELECT id, plan_id, category_id, plan_item_id, name, amount, expense_date
				FROM expense WHERE id = $1 AND user_id = $2`
	expense, err := scanExpense(r.db.QueryRow(ctx, query, expenseId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		log.Errorf("failed to get expense: %v", err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) ListForPlan(ctx context.Context, userId int, planId int) ([]Expense, error) {
	query := `SELECT id, plan_id, category_id, plan_item_id, name, amount, expense_date
				FROM expense WHERE plan_id = $1 AND user_id = $2 ORDER BY expense_date DESC, id DESC`
	return r.list(ctx, query, planId, userId)
}

func (r *RepositoryImpl) ListForPlanItem(ctx context.Context, userId int, planItemId int) ([]Expense, error) {
	query := `SELECT id, plan_id, category_id, plan_item_id, name, amount, expense_date
				FROM expense WHERE plan_item_id = $1 AND user_id = $2 ORDER BY id`
	return r.list(ctx, query, planItemId, userId)
}

// DeleteBatch removes all given expenses in a single transaction. Either every
// row is deleted or none are; a partial match rolls back and returns an error.
func (r *RepositoryImpl) DeleteBatch(ctx context.Context, userId int, expenseIds []int) (int, error) {
	if len(expenseIds) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		log.Errorf("failed to begin transaction: %v", err)
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM expense WHERE id = ANY($1) AND user_id = $2`, expenseIds, userId)
	if err != nil {
		log.Errorf("failed to delete expenses: %v", err)
		return 0, err
	}
	deleted := int(tag.RowsAffected())
	if deleted != len(expenseIds) {
		log.Warnf("expense batch delete matched %d of %d rows, rolling back", deleted, len(expenseIds))
		return 0, ErrExpenseNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		log.Errorf("failed to commit expense batch delete: %v", err)
		return 0, err
	}
	return deleted, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM expense WHERE id = $1 AND user_id = $2`, expenseId, userId)
	if err != nil {
		log.Errorf("failed to delete expense: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) SpentByCategory(ctx context.Context, userId int, planId int) (map[int]decimal.Decimal, error) {
	query := `SELECT category_id, COALESCE(SUM(amount), 0)
				FROM expense WHERE plan_id = $1 AND user_id = $2 GROUP BY category_id`
	rows, err := r.db.Query(ctx, query, planId, userId)
	if err != nil {
		log.Errorf("failed to query spent totals: %v", err)
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int]decimal.Decimal)
	for rows.Next() {
		var categoryId int
		var total decimal.Decimal
		if err := rows.Scan(&categoryId, &total); err != nil {
			log.Errorf("failed to scan spent total: %v", err)
			return nil, err
		}
		totals[categoryId] = total
	}
	return totals, rows.Err()
}

func (r *RepositoryImpl) list(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to query expenses: %v", err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			log.Errorf("failed to scan expense: %v", err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func scanExpense(row pgx.Row) (Expense, error) {
	var expense Expense
	err := row.Scan(
		&expense.Id,
		&expense.PlanId,
		&expense.CategoryId,
		&expense.PlanItemId,
		&expense.Name,
		&expense.Amount,
		&expense.Date,
	)
	return expense, err
}
