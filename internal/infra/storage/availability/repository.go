package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/psqlbuilder"
)

const table = "trainer_availability"

// Repository недельный шаблон доступности тренера
// Одна строка - один интервал дня недели
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблона
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTrainer возвращает шаблон на всю неделю, упорядоченный по (день, начало)
func (r *Repository) GetByTrainer(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error) {
	return r.selectSlots(ctx, "GetByTrainer", squirrel.Eq{"trainer_id": trainerID}, false)
}

// GetByDay возвращает интервалы одного дня недели, упорядоченные по началу
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetByDay(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error) {
	return r.selectSlots(ctx, "GetByDay", squirrel.Eq{"trainer_id": trainerID, "day_of_week": dayOfWeek}, dbmetrics.IsInTransaction(ctx))
}

// ReplaceDay атомарно заменяет интервалы дня (delete + insert)
// Должен вызываться внутри транзакции
func (r *Repository) ReplaceDay(ctx context.Context, trainerID int64, dayOfWeek int, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"trainer_id": trainerID, "day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceDay - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceDay - execute delete: %v", ErrExecQuery, err)
	}

	if len(slots) == 0 {
		return []domain.AvailabilitySlot{}, nil
	}

	insert := psqlbuilder.Insert(table).
		Columns("trainer_id", "day_of_week", "start_time", "end_time", "is_available")
	for _, s := range slots {
		insert = insert.Values(trainerID, dayOfWeek, s.Start, s.End, s.IsAvailable)
	}

	query, args, err = insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceDay - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceDay - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Postgres возвращает RETURNING в порядке VALUES
	result := make([]domain.AvailabilitySlot, len(slots))
	i := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ReplaceDay - scan id: %v", ErrScanRow, err)
		}
		result[i] = slots[i]
		result[i].ID = id
		result[i].TrainerID = trainerID
		result[i].DayOfWeek = dayOfWeek
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReplaceDay - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) selectSlots(ctx context.Context, op string, where squirrel.Eq, forUpdate bool) ([]domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "trainer_id", "day_of_week", "start_time", "end_time", "is_available").
		From(table).
		Where(where).
		OrderBy("day_of_week ASC", "start_time ASC", "end_time ASC", "id ASC")

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]domain.AvailabilitySlot, 0)
	for rows.Next() {
		var s domain.AvailabilitySlot
		if err := rows.Scan(&s.ID, &s.TrainerID, &s.DayOfWeek, &s.Start, &s.End, &s.IsAvailable); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}
