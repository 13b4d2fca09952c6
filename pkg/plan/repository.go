package plan

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	CreatePlan(ctx context.Context, userId int, plan Plan) (Plan, error)
	GetPlan(ctx context.Context, userId int, planId int) (Plan, error)
	GetCurrentPlan(ctx context.Context, userId int) (Plan, error)
	ListPlans(ctx context.Context, userId int) ([]Plan, error)
	UpdatePlan(ctx context.Context, userId int, plan Plan) (Plan, error)
	DeletePlan(ctx context.Context, userId int, planId int) (bool, error)
	StoreItem(ctx context.Context, userId int, item PlanItem) (int, error)
	GetItem(ctx context.Context, userId int, itemId int) (PlanItem, error)
	UpdateItem(ctx context.Context, userId int, item PlanItem) (bool, error)
	SetItemCompletion(ctx context.Context, userId int, itemId int, isCompleted bool) (bool, error)
	DeleteItem(ctx context.Context, userId int, itemId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	query := `INSERT INTO plan (user_id, name, currency, is_current)
				VALUES ($1, $2, $3, NOT EXISTS (SELECT 1 FROM plan WHERE user_id = $1))
				RETURNING id, is_current`
	err := r.db.QueryRow(ctx, query, userId, plan.Name, plan.Currency).Scan(&plan.Id, &plan.IsCurrent)
	if err != nil {
		log.Errorf("failed to create plan: %v", err)
		return Plan{}, err
	}
	return plan, nil
}

func (r *RepositoryImpl) GetPlan(ctx context.Context, userId int, planId int) (Plan, error) {
	query := `SELECT id, name, currency, is_current FROM plan WHERE id = $1 AND user_id = $2`
	var plan Plan
	err := r.db.QueryRow(ctx, query, planId, userId).
		Scan(&plan.Id, &plan.Name, &plan.Currency, &plan.IsCurrent)
	if errors.Is(err, pgx.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	} else if err != nil {
		log.Errorf("failed to get plan: %v", err)
		return Plan{}, err
	}

	items, err := r.listItems(ctx, userId, plan.Id)
	if err != nil {
		return Plan{}, err
	}
	plan.Items = items
	return plan, nil
}

func (r *RepositoryImpl) GetCurrentPlan(ctx context.Context, userId int) (Plan, error) {
	query := `SELECT id FROM plan WHERE user_id = $1 AND is_current`
	var planId int
	err := r.db.QueryRow(ctx, query, userId).Scan(&planId)
	if errors.Is(err, pgx.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	} else if err != nil {
		log.Errorf("failed to get current plan: %v", err)
		return Plan{}, err
	}
	return r.GetPlan(ctx, userId, planId)
}

func (r *RepositoryImpl) ListPlans(ctx context.Context, userId int) ([]Plan, error) {
	query := `SELECT id, name, currency, is_current FROM plan WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to query plans: %v", err)
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var plan Plan
		if err := rows.Scan(&plan.Id, &plan.Name, &plan.Currency, &plan.IsCurrent); err != nil {
			log.Errorf("failed to scan plan: %v", err)
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *RepositoryImpl) UpdatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		log.Errorf("failed to begin transaction: %v", err)
		return Plan{}, err
	}
	defer tx.Rollback(ctx)

	if plan.IsCurrent {
		if _, err := tx.Exec(ctx, `UPDATE plan SET is_current = false WHERE user_id = $1 AND id <> $2`, userId, plan.Id); err != nil {
			log.Errorf("failed to clear current plan: %v", err)
			return Plan{}, err
		}
	}
	query := `UPDATE plan SET name = $1, currency = $2, is_current = $3 WHERE id = $4 AND user_id = $5`
	tag, err := tx.Exec(ctx, query, plan.Name, plan.Currency, plan.IsCurrent, plan.Id, userId)
	if err != nil {
		log.Errorf("failed to update plan: %v", err)
		return Plan{}, err
	}
	if tag.RowsAffected() == 0 {
		return Plan{}, ErrPlanNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		log.Errorf("failed to commit plan update: %v", err)
		return Plan{}, err
	}
	return plan, nil
}

func (r *RepositoryImpl) DeletePlan(ctx context.Context, userId int, planId int) (bool, error) {
	var isCurrent bool
	err := r.db.QueryRow(ctx, `SELECT is_current FROM plan WHERE id = $1 AND user_id = $2`, planId, userId).Scan(&isCurrent)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	} else if err != nil {
		log.Errorf("failed to check plan: %v", err)
		return false, err
	}
	if isCurrent {
		return false, ErrDeletingCurrentPlan
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM plan WHERE id = $1 AND user_id = $2`, planId, userId)
	if err != nil {
		log.Errorf("failed to delete plan: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) StoreItem(ctx context.Context, userId int, item PlanItem) (int, error) {
	query := `INSERT INTO plan_item (plan_id, category_id, name, amount, is_fixed_payment, is_completed, user_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		item.PlanId,
		item.CategoryId,
		item.Name,
		item.Amount,
		item.IsFixedPayment,
		item.IsCompleted,
		userId,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to store plan item: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetItem(ctx context.Context, userId int, itemId int) (PlanItem, error) {
	query := `SELECT id, plan_id, category_id, name, amount, is_fixed_payment, is_completed
				FROM plan_item WHERE id = $1 AND user_id = $2`
	var item PlanItem
	err := r.db.QueryRow(ctx, query, itemId, userId).Scan(
		&item.Id,
		&item.PlanId,
		&item.CategoryId,
		&item.Name,
		&item.Amount,
		&item.IsFixedPayment,
		&item.IsCompleted,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return PlanItem{}, ErrItemNotFound
	} else if err != nil {
		log.Errorf("failed to get plan item: %v", err)
		return PlanItem{}, err
	}
	return item, nil
}

func (r *RepositoryImpl) UpdateItem(ctx context.Context, userId int, item PlanItem) (bool, error) {
	query := `UPDATE plan_item SET category_id = $1, name = $2, amount = $3, is_fixed_payment = $4
				WHERE id = $5 AND user_id = $6`
	tag, err := r.db.Exec(ctx, query,
		item.CategoryId,
		item.Name,
		item.Amount,
		item.IsFixedPayment,
		item.Id,
		userId,
	)
	if err != nil {
		log.Errorf("failed to update plan item: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) SetItemCompletion(ctx context.Context, userId int, itemId int, isCompleted bool) (bool, error) {
	query := `UPDATE plan_item SET is_completed = $1 WHERE id = $2 AND user_id = $3`
	tag, err := r.db.Exec(ctx, query, isCompleted, itemId, userId)
	if err != nil {
		log.Errorf("failed to set plan item completion: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) DeleteItem(ctx context.Context, userId int, itemId int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM plan_item WHERE id = $1 AND user_id = $2`, itemId, userId)
	if err != nil {
		log.Errorf("failed to delete plan item: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) listItems(ctx context.Context, userId int, planId int) ([]PlanItem, error) {
	query := `SELECT id, plan_id, category_id, name, amount, is_fixed_payment, is_completed
				FROM plan_item WHERE plan_id = $1 AND user_id = $2 ORDER BY id`
	rows, err := r.db.Query(ctx, query, planId, userId)
	if err != nil {
		log.Errorf("failed to query plan items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []PlanItem
	for rows.Next() {
		var item PlanItem
		if err := rows.Scan(
			&item.Id,
			&item.PlanId,
			&item.CategoryId,
			&item.Name,
			&item.Amount,
			&item.IsFixedPayment,
			&item.IsCompleted,
		); err != nil {
			log.Errorf("failed to scan plan item: %v", err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
