package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, userId int, category Category) (int, error)
	GetById(ctx context.Context, userId int, categoryId int) (Category, error)
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Update(ctx context.Context, userId int, category Category) (bool, error)
	Delete(ctx context.Context, userId int, categoryId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, category Category) (int, error) {
	query := `INSERT INTO category (user_id, name, color, icon) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, userId, category.Name, category.Color, category.Icon).Scan(&id)
	if err != nil {
		log.Errorf("failed to store category: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetById(ctx context.Context, userId int, categoryId int) (Category, error) {
	query := `SELECT id, name, color, icon FROM category WHERE id = $1 AND user_id = $2`
	var category Category
	err := r.db.QueryRow(ctx, query, categoryId, userId).
		Scan(&category.Id, &category.Name, &category.Color, &category.Icon)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		log.Errorf("failed to get category: %v", err)
		return Category{}, err
	}
	return category, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, color, icon FROM category WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to query categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.Id, &category.Name, &category.Color, &category.Icon); err != nil {
			log.Errorf("failed to scan category: %v", err)
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, category Category) (bool, error) {
	query := `UPDATE category SET name = $1, color = $2, icon = $3 WHERE id = $4 AND user_id = $5`
	tag, err := r.db.Exec(ctx, query, category.Name, category.Color, category.Icon, category.Id, userId)
	if err != nil {
		log.Errorf("failed to update category: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM category WHERE id = $1 AND user_id = $2`, categoryId, userId)
	if err != nil {
		log.Errorf("failed to delete category: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
