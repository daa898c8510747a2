package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/utils"
	"github.com/MKhiriev/card-privacy/models"
)

const vcardActionsTable = "vcard_actions"

var actionColumns = []string{"id", "action", colIdentifier, "vcard_uid", "collection_path", "details", colCreatedAt}

// actionRepository stores reprocessing events in the vcard_actions table.
type actionRepository struct {
	db     *DB
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewActionRepository constructs an [ActionRepository].
func NewActionRepository(db *DB, logger *logger.Logger) ActionRepository {
	logger.Debug().Msg("creating action repository")
	return &actionRepository{db: db, ids: utils.NewUUIDGenerator(), logger: logger}
}

// LogAction inserts entry. Missing ID and CreatedAt are filled in.
func (r *actionRepository) LogAction(ctx context.Context, entry models.ActionLogEntry) error {
	if entry.ID == "" {
		entry.ID = r.ids.Generate()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	query, args, err := r.db.builder.
		Insert(vcardActionsTable).
		Columns(actionColumns...).
		Values(entry.ID, string(entry.Action), entry.Identifier, nullString(entry.VCardUID), nullString(entry.CollectionPath), nullString(string(entry.Details)), entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// ListActions returns the most recent entries for identifier, newest first.
// A zero limit returns every entry.
func (r *actionRepository) ListActions(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error) {
	log := logger.FromContext(ctx)

	builder := r.db.builder.
		Select(actionColumns...).
		From(vcardActionsTable).
		Where(sq.Eq{colIdentifier: identifier}).
		OrderBy(colCreatedAt+" DESC", "id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entries []models.ActionLogEntry
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries = make([]models.ActionLogEntry, 0)
		for rows.Next() {
			var (
				entry                             models.ActionLogEntry
				action                            string
				vcardUID, collectionPath, details sql.NullString
			)
			if err := rows.Scan(&entry.ID, &action, &entry.Identifier, &vcardUID, &collectionPath, &details, &entry.CreatedAt); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			entry.Action = models.VCardAction(action)
			entry.VCardUID = vcardUID.String
			entry.CollectionPath = collectionPath.String
			if details.Valid && json.Valid([]byte(details.String)) {
				entry.Details = json.RawMessage(details.String)
			}
			entries = append(entries, entry)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*actionRepository.ListActions").Msg("error listing vcard actions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, nil
}

// nullString stores empty optional columns as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
