// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

const (
	colIdentifier = "identifier"
	colCreatedAt  = "created_at"
	colUpdatedAt  = "updated_at"
)

// privacySettingsColumns is the SELECT list shared by every read. The flag
// columns follow models.AllFlags order.
var privacySettingsColumns = func() []string {
	cols := []string{colIdentifier}
	for _, f := range models.AllFlags {
		cols = append(cols, string(f))
	}
	return append(cols, colCreatedAt, colUpdatedAt)
}()

// privacySettingsRepository is the SQL implementation of
// [PrivacySettingsRepository]. It works on both SQLite and PostgreSQL; the
// dialect differences are hidden in [DB].
type privacySettingsRepository struct {
	db       *DB
	defaults DefaultsProvider
	logger   *logger.Logger
	now      func() time.Time
}

// NewPrivacySettingsRepository constructs a [PrivacySettingsRepository].
// defaults is consulted on every Create.
func NewPrivacySettingsRepository(db *DB, defaults DefaultsProvider, logger *logger.Logger) PrivacySettingsRepository {
	logger.Debug().Msg("creating privacy settings repository")
	return &privacySettingsRepository{
		db:       db,
		defaults: defaults,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new record. A second Create for the same identifier
// fails with [ErrPrivacySettingsAlreadyExist]; uniqueness is enforced by the
// primary key, so concurrent callers race on the INSERT and exactly one wins.
func (r *privacySettingsRepository) Create(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx)

	if identifier == "" {
		return nil, ErrEmptyIdentifier
	}
	if err := validateFlagValues(values); err != nil {
		return nil, err
	}

	settings := &models.PrivacySettings{
		Identifier: identifier,
		CreatedAt:  r.now(),
	}
	if r.defaults != nil {
		settings.PrivacyFlags = r.defaults.DefaultFlags()
	}
	settings.Apply(values)

	row := []any{settings.Identifier}
	for _, f := range models.AllFlags {
		row = append(row, settings.Get(f))
	}
	row = append(row, settings.CreatedAt, nil)

	query, args, err := r.db.builder.
		Insert(settings.TableName()).
		Columns(privacySettingsColumns...).
		Values(row...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return nil, ErrPrivacySettingsAlreadyExist
		}
		log.Err(err).Str("func", "*privacySettingsRepository.Create").Msg("error inserting privacy settings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return settings, nil
}

// Get returns the stored record or nil when none exists. Transient driver
// errors are retried.
func (r *privacySettingsRepository) Get(ctx context.Context, identifier string) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectByIdentifier(identifier).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var settings *models.PrivacySettings
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		settings, scanErr = scanPrivacySettings(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*privacySettingsRepository.Get").Msg("error reading privacy settings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return settings, nil
}

// Update applies values to an existing record inside a transaction and
// returns the result. It returns nil when no record exists.
func (r *privacySettingsRepository) Update(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx)

	if err := validateFlagValues(values); err != nil {
		return nil, err
	}

	update := r.db.builder.
		Update(models.PrivacySettings{}.TableName()).
		Set(colUpdatedAt, r.now()).
		Where(sq.Eq{colIdentifier: identifier})
	for _, f := range models.AllFlags {
		if v, ok := values[f]; ok {
			update = update.Set(string(f), v)
		}
	}

	updateQuery, updateArgs, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	selectQuery, selectArgs, err := r.selectByIdentifier(identifier).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*privacySettingsRepository.Update").Msg("error starting transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		log.Err(err).Str("func", "*privacySettingsRepository.Update").Msg("error updating privacy settings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return nil, nil
	}

	settings, err := scanPrivacySettings(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		log.Err(err).Str("func", "*privacySettingsRepository.Update").Msg("error reading updated privacy settings")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return settings, nil
}

// Delete removes the record and reports whether one existed.
func (r *privacySettingsRepository) Delete(ctx context.Context, identifier string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(models.PrivacySettings{}.TableName()).
		Where(sq.Eq{colIdentifier: identifier}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*privacySettingsRepository.Delete").Msg("error deleting privacy settings")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

func (r *privacySettingsRepository) selectByIdentifier(identifier string) sq.SelectBuilder {
	return r.db.builder.
		Select(privacySettingsColumns...).
		From(models.PrivacySettings{}.TableName()).
		Where(sq.Eq{colIdentifier: identifier})
}

func scanPrivacySettings(row *sql.Row) (*models.PrivacySettings, error) {
	var (
		s         models.PrivacySettings
		updatedAt sql.NullTime
	)

	dest := []any{&s.Identifier}
	for range models.AllFlags {
		dest = append(dest, new(bool))
	}
	dest = append(dest, &s.CreatedAt, &updatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	for i, f := range models.AllFlags {
		s.Set(f, *dest[i+1].(*bool))
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		s.UpdatedAt = &t
	}

	return &s, nil
}

func validateFlagValues(values models.FlagValues) error {
	for f := range values {
		if _, err := models.ParseFlag(string(f)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFieldName, err)
		}
	}
	return nil
}
