package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/akinalp/mblog/database"
	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
)

// sqliteAtRelationRepo, AtRelationRepository interface'inin SQLite implementasyonu.
type sqliteAtRelationRepo struct {
	db database.TxQuerier
}

// NewSQLiteAtRelationRepo, constructor — interface döner.
func NewSQLiteAtRelationRepo(db database.TxQuerier) AtRelationRepository {
	return &sqliteAtRelationRepo{db: db}
}

func (r *sqliteAtRelationRepo) Create(ctx context.Context, blogID, userID int64) (*models.AtRelation, error) {
	query := `
		INSERT INTO at_relations (blog_id, user_id)
		VALUES (?, ?)
		RETURNING id, is_read, created_at, updated_at`

	rel := &models.AtRelation{BlogID: blogID, UserID: userID}
	err := r.db.QueryRowContext(ctx, query, blogID, userID).
		Scan(&rel.ID, &rel.IsRead, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: blog or user does not exist", pkg.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create at relation: %w", err)
	}

	return rel, nil
}

func (r *sqliteAtRelationRepo) CountByFilter(ctx context.Context, filter models.AtRelationFilter) (int, error) {
	where, args := filterClause(filter)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM at_relations`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count at relations: %w", err)
	}

	return count, nil
}

// FindBlogsByUser, blog ⋈ at_relations ⋈ users join'i.
// İlişki yalnızca user_id ile filtrelenir — okunmuş ve okunmamışlar birlikte döner.
// Aynı blog'da birden fazla ilişki varsa sıra at_relations.id azalan.
func (r *sqliteAtRelationRepo) FindBlogsByUser(ctx context.Context, userID int64, limit, offset int) (int, []models.AtBlogRecord, error) {
	var count int
	countQuery := `
		SELECT COUNT(*)
		FROM at_relations a
		INNER JOIN blogs b ON b.id = a.blog_id
		WHERE a.user_id = ?`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return 0, nil, fmt.Errorf("failed to count mentioned blogs: %w", err)
	}

	records := []models.AtBlogRecord{}
	if count == 0 {
		return 0, records, nil
	}

	query := `
		SELECT b.id, b.user_id, b.content, b.image, b.created_at, b.updated_at,
		       u.id, u.user_name, u.password, u.nick_name, u.gender, u.picture, u.city,
		       u.created_at, u.updated_at,
		       a.user_id, a.blog_id, a.is_read
		FROM blogs b
		INNER JOIN at_relations a ON a.blog_id = b.id
		INNER JOIN users u ON u.id = b.user_id
		WHERE a.user_id = ?
		ORDER BY b.id DESC, a.id ASC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to find mentioned blogs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.AtBlogRecord
		if err := rows.Scan(
			&rec.Blog.ID, &rec.Blog.UserID, &rec.Blog.Content, &rec.Blog.Image,
			&rec.Blog.CreatedAt, &rec.Blog.UpdatedAt,
			&rec.Author.ID, &rec.Author.UserName, &rec.Author.PasswordHash, &rec.Author.NickName,
			&rec.Author.Gender, &rec.Author.Picture, &rec.Author.City,
			&rec.Author.CreatedAt, &rec.Author.UpdatedAt,
			&rec.AtRelation.UserID, &rec.AtRelation.BlogID, &rec.AtRelation.IsRead,
		); err != nil {
			return 0, nil, fmt.Errorf("failed to scan mentioned blog row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("error iterating mentioned blog rows: %w", err)
	}

	return count, records, nil
}

// Update, patch'teki dolu alanları SET'e, filtredeki dolu alanları WHERE'e çevirir.
// Boş patch store'a gitmez, 0 döner. Boş filtre tüm satırlar demektir.
func (r *sqliteAtRelationRepo) Update(ctx context.Context, patch models.AtRelationPatch, filter models.AtRelationFilter) (int64, error) {
	if patch.Empty() {
		return 0, nil
	}

	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	var args []any
	if patch.IsRead != nil {
		sets = append(sets, "is_read = ?")
		args = append(args, *patch.IsRead)
	}

	where, whereArgs := filterClause(filter)
	args = append(args, whereArgs...)

	query := `UPDATE at_relations SET ` + strings.Join(sets, ", ") + where

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update at relations: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}

// filterClause, nil olmayan filtre alanlarından " WHERE ..." üretir.
func filterClause(filter models.AtRelationFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.UserID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.IsRead != nil {
		conds = append(conds, "is_read = ?")
		args = append(args, *filter.IsRead)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
