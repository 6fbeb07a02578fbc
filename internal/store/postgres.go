package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fabrica/api/internal/batch"
	"fabrica/api/internal/calday"
	"fabrica/api/internal/lifecycle"
	"fabrica/api/internal/seqcode"
	"fabrica/api/internal/util"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict")
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// inTx runs fn inside one transaction, rolling back on any error.
func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// --- Users ---

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.DisplayName, user.Email, user.PasswordHash, user.Role)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, email, password_hash, role, deactivated_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.DisplayName, &user.Email, &user.PasswordHash, &user.Role, &user.DeactivatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup user by email: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, email, password_hash, role, deactivated_at
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.DisplayName, &user.Email, &user.PasswordHash, &user.Role, &user.DeactivatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, email, role, deactivated_at, created_at
		FROM users ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	items := make([]User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.DisplayName, &user.Email, &user.Role, &user.DeactivatedAt, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) UpdateUserRole(ctx context.Context, userID, role string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET role=$2, updated_at=NOW() WHERE id=$1`, userID, role)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Refresh sessions (Postgres fallback when Redis is not configured) ---

func (s *PostgresStore) SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET user_id=EXCLUDED.user_id, expires_at=EXCLUDED.expires_at, revoked_at=NULL
	`, tokenHash, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

// LookupRefreshSession returns the user id behind a live refresh token.
func (s *PostgresStore) LookupRefreshSession(ctx context.Context, tokenHash string) (string, error) {
	const query = `
		SELECT user_id FROM refresh_sessions
		WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`
	var userID string
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup refresh session: %w", err)
	}
	return userID, nil
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE refresh_sessions SET revoked_at=NOW() WHERE token_hash=$1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

// --- Identifier allocation ---

// AllocateCode issues the next code for (prefix, yearDigits). The counter
// bump and the consuming insert happen in one transaction; the unique index
// on allocated_codes.code turns any race into ErrConflict instead of a
// duplicate code.
func (s *PostgresStore) AllocateCode(ctx context.Context, prefix string, yearDigits int) (AllocatedCode, error) {
	var allocated AllocatedCode
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var seq int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO sequence_counters (prefix, year_digits, value)
			VALUES ($1, $2, 1)
			ON CONFLICT (prefix, year_digits) DO UPDATE SET value = sequence_counters.value + 1
			RETURNING value
		`, prefix, yearDigits).Scan(&seq)
		if err != nil {
			return fmt.Errorf("bump sequence counter: %w", err)
		}

		code := seqcode.Format(prefix, yearDigits, seq)
		err = tx.QueryRowContext(ctx, `
			INSERT INTO allocated_codes (code, prefix, year_digits, seq)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, code, prefix, yearDigits, seq).Scan(&allocated.CreatedAt)
		if isUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return fmt.Errorf("insert allocated code: %w", err)
		}
		allocated.Code = code
		allocated.Prefix = prefix
		allocated.YearDigits = yearDigits
		allocated.Seq = seq
		return nil
	})
	if err != nil {
		return AllocatedCode{}, err
	}
	return allocated, nil
}

// NextRevision issues the next 0-based revision for a code family under the
// same counter-plus-unique-constraint contract as AllocateCode.
func (s *PostgresStore) NextRevision(ctx context.Context, code string) (int, error) {
	var revision int
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO revision_counters (code, value)
			VALUES ($1, 0)
			ON CONFLICT (code) DO UPDATE SET value = revision_counters.value + 1
			RETURNING value
		`, code).Scan(&revision)
		if err != nil {
			return fmt.Errorf("bump revision counter: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO code_revisions (code, revision) VALUES ($1, $2)
		`, code, revision)
		if isUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return fmt.Errorf("insert code revision: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revision, nil
}

// --- Production blocks ---

const blockColumns = `
	id, article_code, article_desc, client_name, order_number,
	ordered_units, served_units, pending_units, units, status,
	deadline, order_date, planned_date, planned_reactor, planned_shift,
	real_kg, real_duration, operator_notes, batch_label, parent_id, erp_id,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlock(row rowScanner) (ProductionBlock, error) {
	var block ProductionBlock
	var deadline, orderDate, plannedDate sql.NullTime
	err := row.Scan(
		&block.ID, &block.ArticleCode, &block.ArticleDesc, &block.ClientName, &block.OrderNumber,
		&block.OrderedUnits, &block.ServedUnits, &block.PendingUnits, &block.Units, &block.Status,
		&deadline, &orderDate, &plannedDate, &block.PlannedReactor, &block.PlannedShift,
		&block.RealKg, &block.RealDuration, &block.OperatorNotes, &block.BatchLabel, &block.ParentID, &block.ErpID,
		&block.CreatedAt, &block.UpdatedAt,
	)
	if err != nil {
		return ProductionBlock{}, err
	}
	block.Deadline = dayFromNullTime(deadline)
	block.OrderDate = dayFromNullTime(orderDate)
	block.PlannedDate = dayFromNullTime(plannedDate)
	return block, nil
}

// DATE columns arrive at midnight with no meaningful zone; the calendar
// components are the value, so no timezone conversion belongs here.
func dayFromNullTime(nt sql.NullTime) *calday.Day {
	if !nt.Valid {
		return nil
	}
	day := calday.New(nt.Time.Year(), nt.Time.Month(), nt.Time.Day())
	return &day
}

func dayParam(d *calday.Day) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func (s *PostgresStore) CreateBlock(ctx context.Context, block ProductionBlock) (ProductionBlock, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO production_blocks (
			id, article_code, article_desc, client_name, order_number,
			ordered_units, served_units, pending_units, units, status,
			deadline, order_date, batch_label, parent_id, erp_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`, block.ID, block.ArticleCode, block.ArticleDesc, block.ClientName, block.OrderNumber,
		block.OrderedUnits, block.ServedUnits, block.PendingUnits, block.Units, block.Status,
		dayParam(block.Deadline), dayParam(block.OrderDate), block.BatchLabel, block.ParentID, block.ErpID,
	).Scan(&block.CreatedAt, &block.UpdatedAt)
	if isUniqueViolation(err) {
		return ProductionBlock{}, ErrConflict
	}
	if err != nil {
		return ProductionBlock{}, fmt.Errorf("insert block: %w", err)
	}
	return block, nil
}

func (s *PostgresStore) GetBlock(ctx context.Context, blockID string) (ProductionBlock, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+blockColumns+` FROM production_blocks WHERE id=$1`, blockID)
	block, err := scanBlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductionBlock{}, ErrNotFound
	}
	if err != nil {
		return ProductionBlock{}, fmt.Errorf("get block: %w", err)
	}
	return block, nil
}

func (s *PostgresStore) ListBlocks(ctx context.Context) ([]ProductionBlock, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+blockColumns+` FROM production_blocks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	items := make([]ProductionBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		items = append(items, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return items, nil
}

// ListPlannedBlocks returns PLANNED blocks carrying a planned date, the
// input set for conflict detection.
func (s *PostgresStore) ListPlannedBlocks(ctx context.Context) ([]ProductionBlock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blockColumns+`
		FROM production_blocks
		WHERE status=$1 AND planned_date IS NOT NULL
		ORDER BY planned_date
	`, lifecycle.StatusPlanned)
	if err != nil {
		return nil, fmt.Errorf("list planned blocks: %w", err)
	}
	defer rows.Close()

	items := make([]ProductionBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planned block: %w", err)
		}
		items = append(items, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate planned blocks: %w", err)
	}
	return items, nil
}

func getBlockForUpdate(ctx context.Context, tx *sql.Tx, blockID string) (ProductionBlock, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+blockColumns+` FROM production_blocks WHERE id=$1 FOR UPDATE`, blockID)
	block, err := scanBlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductionBlock{}, ErrNotFound
	}
	if err != nil {
		return ProductionBlock{}, fmt.Errorf("lock block: %w", err)
	}
	return block, nil
}

// PlanBlock moves a block to PLANNED with the given planning fields. The
// status check and the update share one transaction and a row lock.
func (s *PostgresStore) PlanBlock(ctx context.Context, blockID string, date calday.Day, reactor, shift string) (ProductionBlock, error) {
	var planned ProductionBlock
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		block, err := getBlockForUpdate(ctx, tx, blockID)
		if err != nil {
			return err
		}
		if err := lifecycle.Validate(block.Status, lifecycle.StatusPlanned); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, `
			UPDATE production_blocks
			SET status=$2, planned_date=$3, planned_reactor=$4, planned_shift=$5, updated_at=NOW()
			WHERE id=$1
			RETURNING `+blockColumns+`
		`, blockID, lifecycle.StatusPlanned, date.String(), reactor, shift)
		planned, err = scanBlock(row)
		if err != nil {
			return fmt.Errorf("plan block: %w", err)
		}
		return nil
	})
	if err != nil {
		return ProductionBlock{}, err
	}
	return planned, nil
}

// RecordExecution moves a PLANNED block to PRODUCED with its execution data.
func (s *PostgresStore) RecordExecution(ctx context.Context, blockID string, realKg, realDuration *float64, notes *string) (ProductionBlock, error) {
	var produced ProductionBlock
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		block, err := getBlockForUpdate(ctx, tx, blockID)
		if err != nil {
			return err
		}
		if err := lifecycle.Validate(block.Status, lifecycle.StatusProduced); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, `
			UPDATE production_blocks
			SET status=$2, real_kg=$3, real_duration=$4, operator_notes=$5, updated_at=NOW()
			WHERE id=$1
			RETURNING `+blockColumns+`
		`, blockID, lifecycle.StatusProduced, realKg, realDuration, notes)
		produced, err = scanBlock(row)
		if err != nil {
			return fmt.Errorf("record execution: %w", err)
		}
		return nil
	})
	if err != nil {
		return ProductionBlock{}, err
	}
	return produced, nil
}

// CancelBlock moves a block to CANCELLED from any state.
func (s *PostgresStore) CancelBlock(ctx context.Context, blockID string) (ProductionBlock, error) {
	var cancelled ProductionBlock
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		block, err := getBlockForUpdate(ctx, tx, blockID)
		if err != nil {
			return err
		}
		if err := lifecycle.Validate(block.Status, lifecycle.StatusCancelled); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, `
			UPDATE production_blocks SET status=$2, updated_at=NOW() WHERE id=$1
			RETURNING `+blockColumns+`
		`, blockID, lifecycle.StatusCancelled)
		cancelled, err = scanBlock(row)
		if err != nil {
			return fmt.Errorf("cancel block: %w", err)
		}
		return nil
	})
	if err != nil {
		return ProductionBlock{}, err
	}
	return cancelled, nil
}

// SplitBlock partitions an oversized block into capacity-bounded children
// and deletes the source, all in one transaction. Children copy descriptive
// fields, start PENDING, and reference the source through parent_id. The
// limit is checked under the row lock so a concurrent mutation cannot leave
// a stale split.
func (s *PostgresStore) SplitBlock(ctx context.Context, blockID string, limit int) ([]ProductionBlock, error) {
	var children []ProductionBlock
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		source, err := getBlockForUpdate(ctx, tx, blockID)
		if err != nil {
			return err
		}

		sourceErpID := ""
		if source.ErpID != nil {
			sourceErpID = *source.ErpID
		}
		parts, err := batch.Split(source.Units, limit, sourceErpID)
		if err != nil {
			return err
		}

		children = make([]ProductionBlock, 0, len(parts))
		for _, part := range parts {
			child := ProductionBlock{
				ID:           util.NewID("blk"),
				ArticleCode:  source.ArticleCode,
				ArticleDesc:  source.ArticleDesc,
				ClientName:   source.ClientName,
				OrderNumber:  source.OrderNumber,
				OrderedUnits: source.OrderedUnits,
				ServedUnits:  source.ServedUnits,
				PendingUnits: source.PendingUnits,
				Units:        part.Units,
				Status:       lifecycle.Initial,
				Deadline:     source.Deadline,
				OrderDate:    source.OrderDate,
				BatchLabel:   part.Label,
				ParentID:     &source.ID,
			}
			if part.ErpID != "" {
				erpID := part.ErpID
				child.ErpID = &erpID
			}
			err := tx.QueryRowContext(ctx, `
				INSERT INTO production_blocks (
					id, article_code, article_desc, client_name, order_number,
					ordered_units, served_units, pending_units, units, status,
					deadline, order_date, batch_label, parent_id, erp_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
				RETURNING created_at, updated_at
			`, child.ID, child.ArticleCode, child.ArticleDesc, child.ClientName, child.OrderNumber,
				child.OrderedUnits, child.ServedUnits, child.PendingUnits, child.Units, child.Status,
				dayParam(child.Deadline), dayParam(child.OrderDate), child.BatchLabel, child.ParentID, child.ErpID,
			).Scan(&child.CreatedAt, &child.UpdatedAt)
			if isUniqueViolation(err) {
				return ErrConflict
			}
			if err != nil {
				return fmt.Errorf("insert sub-batch %s: %w", part.Label, err)
			}
			children = append(children, child)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM production_blocks WHERE id=$1`, blockID); err != nil {
			return fmt.Errorf("delete split source: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

// UnplanBlocks applies the PLANNED -> PENDING transition to every listed
// block in one statement: planning fields cleared, nothing else touched.
// Returns the number of blocks actually unplanned.
func (s *PostgresStore) UnplanBlocks(ctx context.Context, blockIDs []string) (int, error) {
	if len(blockIDs) == 0 {
		return 0, nil
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE production_blocks
		SET status=$1, planned_date=NULL, planned_reactor=NULL, planned_shift=NULL, updated_at=NOW()
		WHERE id = ANY($2) AND status=$3
	`, lifecycle.StatusPending, blockIDs, lifecycle.StatusPlanned)
	if err != nil {
		return 0, fmt.Errorf("unplan blocks: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unplan blocks: %w", err)
	}
	return int(affected), nil
}

func (s *PostgresStore) DeleteBlock(ctx context.Context, blockID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM production_blocks WHERE id=$1`, blockID)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBlocks removes the listed blocks, best effort: missing ids are
// skipped and the count of deleted rows is reported.
func (s *PostgresStore) DeleteBlocks(ctx context.Context, blockIDs []string) (int, error) {
	if len(blockIDs) == 0 {
		return 0, nil
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM production_blocks WHERE id = ANY($1)`, blockIDs)
	if err != nil {
		return 0, fmt.Errorf("delete blocks: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete blocks: %w", err)
	}
	return int(affected), nil
}

func (s *PostgresStore) DeletePendingBlocks(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM production_blocks WHERE status=$1`, lifecycle.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("delete pending blocks: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete pending blocks: %w", err)
	}
	return int(affected), nil
}

func (s *PostgresStore) DeleteAllBlocks(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM production_blocks`)
	if err != nil {
		return 0, fmt.Errorf("delete all blocks: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all blocks: %w", err)
	}
	return int(affected), nil
}

// --- Reactors ---

func (s *PostgresStore) ListReactors(ctx context.Context) ([]Reactor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, plant, capacity_kg, daily_target_kg, created_at
		FROM reactors ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list reactors: %w", err)
	}
	defer rows.Close()

	items := make([]Reactor, 0)
	for rows.Next() {
		var reactor Reactor
		if err := rows.Scan(&reactor.ID, &reactor.Name, &reactor.Plant, &reactor.CapacityKg, &reactor.DailyTargetKg, &reactor.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reactor: %w", err)
		}
		items = append(items, reactor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reactors: %w", err)
	}
	return items, nil
}

// ReplaceReactors swaps the reactor set wholesale in one transaction.
func (s *PostgresStore) ReplaceReactors(ctx context.Context, reactors []Reactor) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reactors`); err != nil {
			return fmt.Errorf("clear reactors: %w", err)
		}
		for _, reactor := range reactors {
			id := reactor.ID
			if id == "" {
				id = util.NewID("rx")
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO reactors (id, name, plant, capacity_kg, daily_target_kg)
				VALUES ($1, $2, $3, $4, $5)
			`, id, reactor.Name, reactor.Plant, reactor.CapacityKg, reactor.DailyTargetKg)
			if isUniqueViolation(err) {
				return ErrConflict
			}
			if err != nil {
				return fmt.Errorf("insert reactor %s: %w", reactor.Name, err)
			}
		}
		return nil
	})
}

// --- Holidays ---

func (s *PostgresStore) ListHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, name FROM holidays ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	items := make([]Holiday, 0)
	for rows.Next() {
		var holiday Holiday
		if err := rows.Scan(&holiday.Day, &holiday.Name); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		items = append(items, holiday)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holidays: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) ReplaceHolidays(ctx context.Context, holidays []Holiday) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM holidays`); err != nil {
			return fmt.Errorf("clear holidays: %w", err)
		}
		for _, holiday := range holidays {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO holidays (day, name) VALUES ($1, $2)
				ON CONFLICT (day) DO UPDATE SET name=EXCLUDED.name
			`, holiday.Day.String(), holiday.Name)
			if err != nil {
				return fmt.Errorf("insert holiday %s: %w", holiday.Day, err)
			}
		}
		return nil
	})
}

// --- Maintenance windows ---

func (s *PostgresStore) ListMaintenanceWindows(ctx context.Context) ([]MaintenanceWindow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reactor_name, start_date, end_date, reason
		FROM maintenance_windows ORDER BY start_date
	`)
	if err != nil {
		return nil, fmt.Errorf("list maintenance windows: %w", err)
	}
	defer rows.Close()

	items := make([]MaintenanceWindow, 0)
	for rows.Next() {
		var window MaintenanceWindow
		if err := rows.Scan(&window.ID, &window.ReactorName, &window.StartDate, &window.EndDate, &window.Reason); err != nil {
			return nil, fmt.Errorf("scan maintenance window: %w", err)
		}
		items = append(items, window)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate maintenance windows: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) ReplaceMaintenanceWindows(ctx context.Context, windows []MaintenanceWindow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM maintenance_windows`); err != nil {
			return fmt.Errorf("clear maintenance windows: %w", err)
		}
		for _, window := range windows {
			id := window.ID
			if id == "" {
				id = util.NewID("mw")
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO maintenance_windows (id, reactor_name, start_date, end_date, reason)
				VALUES ($1, $2, $3, $4, $5)
			`, id, window.ReactorName, window.StartDate.String(), window.EndDate.String(), window.Reason)
			if err != nil {
				return fmt.Errorf("insert maintenance window: %w", err)
			}
		}
		return nil
	})
}
