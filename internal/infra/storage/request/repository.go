package request

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/psqlbuilder"
)

const table = "session_requests"

var columns = []string{
	"id",
	"trainer_id",
	"client_id",
	"requested_date",
	"requested_start",
	"requested_end",
	"status",
	"message",
	"decline_reason",
	"session_id",
	"created_at",
	"updated_at",
}

// Repository входящие заявки клиентов на сессии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку
func (r *Repository) Create(ctx context.Context, req *domain.SessionRequest) (*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("trainer_id", "client_id", "requested_date", "requested_start", "requested_end", "status", "message").
		Values(req.TrainerID, req.ClientID, domain.DateOnly(req.RequestedDate), req.RequestedStart, req.RequestedEnd, req.Status, req.Message).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы заявку нельзя было разрешить дважды
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// GetByTrainer возвращает заявки тренера, опционально по статусу
// Сначала новые
func (r *Repository) GetByTrainer(ctx context.Context, trainerID int64, status *domain.RequestStatus) ([]*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		OrderBy("created_at DESC", "id DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.SessionRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTrainer - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTrainer - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// MarkApproved переводит заявку в approved и связывает с созданной сессией
func (r *Repository) MarkApproved(ctx context.Context, id int64, sessionID int64) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.RequestApproved).
		Set("session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.RequestPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkApproved - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkApproved", query, args)
}

// MarkDeclined переводит заявку в declined
func (r *Repository) MarkDeclined(ctx context.Context, id int64, reason *string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.RequestDeclined).
		Set("decline_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.RequestPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDeclined - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "MarkDeclined", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, op string, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	// Заявка не найдена или уже разрешена
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.SessionRequest, error) {
	var req domain.SessionRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.TrainerID,
		&req.ClientID,
		&req.RequestedDate,
		&req.RequestedStart,
		&req.RequestedEnd,
		&req.Status,
		&req.Message,
		&req.DeclineReason,
		&req.SessionID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}
