package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	models "inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	"inkwell/internal/repository/postgres"
)

// PostgresVersionRepository implements the VersionRepository interface
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *postgres.RepositoryConfig) docsysRepo.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a version. A duplicate (document_id, version_number) surfaces as ConstraintError.
func (r *PostgresVersionRepository) Create(ctx context.Context, v *models.Version) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, version_number, title, body, author)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Versions)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		v.DocumentID,
		v.VersionNumber,
		v.Title,
		v.Body,
		v.Author,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return postgres.TranslateError("create version", err)
	}

	return nil
}

// GetByNumber retrieves a document's version by number
func (r *PostgresVersionRepository) GetByNumber(ctx context.Context, documentID string, number int) (*models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version_number, title, body, author, created_at
		FROM %s
		WHERE document_id = $1 AND version_number = $2
	`, r.tables.Versions)

	v, err := r.scanOne(ctx, query, documentID, number)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidIDError(err) {
			return nil, fmt.Errorf("version %d of document %s: %w", number, documentID, domain.ErrNotFound)
		}
		return nil, postgres.TranslateError("get version", err)
	}
	return v, nil
}

// GetByID retrieves a version by ID
func (r *PostgresVersionRepository) GetByID(ctx context.Context, id string) (*models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version_number, title, body, author, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Versions)

	v, err := r.scanOne(ctx, query, id)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidIDError(err) {
			return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.TranslateError("get version", err)
	}
	return v, nil
}

func (r *PostgresVersionRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*models.Version, error) {
	var v models.Version
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, args...).Scan(
		&v.ID,
		&v.DocumentID,
		&v.VersionNumber,
		&v.Title,
		&v.Body,
		&v.Author,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByDocument lists version metadata without bodies, newest first
func (r *PostgresVersionRepository) ListByDocument(ctx context.Context, documentID string) ([]models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version_number, title, author, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY version_number DESC
	`, r.tables.Versions)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, postgres.TranslateError("list versions", err)
	}
	defer rows.Close()

	versions := []models.Version{}
	for rows.Next() {
		var v models.Version
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.VersionNumber, &v.Title, &v.Author, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}

	return versions, nil
}
