package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"field-service/internal/entities"
	db "field-service/internal/infrastructure/bd"
	"field-service/pkg/types"
)

const occurrenceJournalTable = "occurrence_journal"

var occurrenceJournalColumns = []string{
	"id", "request_id", "order_id", "technician_id", "action",
	"ocorrencia", "descricao_ocorrencia", "mensagem", "created_at",
}

var occurrenceJournalAllowedFields = map[string]string{
	"order_id":      "order_id",
	"tecnico_id":    "technician_id",
	"technician_id": "technician_id",
	"action":        "action",
	"created_at":    "created_at",
	"id":            "id",
}

type OccurrenceJournalRepositoryInterface interface {
	Create(ctx context.Context, record *entities.OccurrenceRecord) error
	List(ctx context.Context, filter types.Filter) ([]entities.OccurrenceRecord, uint64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type OccurrenceJournalRepository struct {
	storage querier
	psql    sq.StatementBuilderType
	logger  *zap.Logger
}

func NewOccurrenceJournalRepository(storage querier, logger *zap.Logger) OccurrenceJournalRepositoryInterface {
	return &OccurrenceJournalRepository{
		storage: storage,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger.Named("occurrence_journal_repository"),
	}
}

// Create inserts the row and fills ID and CreatedAt. A repeated request id is ignored.
func (r *OccurrenceJournalRepository) Create(ctx context.Context, record *entities.OccurrenceRecord) error {
	query, args, err := r.psql.Insert(occurrenceJournalTable).
		Columns("request_id", "order_id", "technician_id", "action", "ocorrencia", "descricao_ocorrencia", "mensagem").
		Values(record.RequestID, record.OrderID, record.TechnicianID, string(record.Action),
			record.Ocorrencia, record.DescricaoOcorrencia, record.Mensagem).
		Suffix("ON CONFLICT (request_id) DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build journal insert: %w", err)
	}

	err = r.storage.QueryRow(ctx, query, args...).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			r.logger.Debug("journal row already exists", zap.String("requestID", record.RequestID.String()))
			return nil
		}
		return fmt.Errorf("failed to insert journal row: %w", err)
	}
	return nil
}

func (r *OccurrenceJournalRepository) List(ctx context.Context, filter types.Filter) ([]entities.OccurrenceRecord, uint64, error) {
	countQuery, countArgs, err := db.ApplyFilters(
		r.psql.Select("COUNT(*)").From(occurrenceJournalTable), filter, occurrenceJournalAllowedFields,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build journal count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count journal rows: %w", err)
	}
	if total == 0 {
		return []entities.OccurrenceRecord{}, 0, nil
	}

	builder := r.psql.Select(occurrenceJournalColumns...).From(occurrenceJournalTable)
	builder = db.ApplyListParams(builder, filter, occurrenceJournalAllowedFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("created_at DESC", "id DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build journal select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	records := make([]entities.OccurrenceRecord, 0)
	for rows.Next() {
		var (
			rec    entities.OccurrenceRecord
			action string
		)
		if err := rows.Scan(
			&rec.ID, &rec.RequestID, &rec.OrderID, &rec.TechnicianID, &action,
			&rec.Ocorrencia, &rec.DescricaoOcorrencia, &rec.Mensagem, &rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal row: %w", err)
		}
		rec.Action = entities.ActionKey(action)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate journal rows: %w", err)
	}

	return records, total, nil
}

func (r *OccurrenceJournalRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := r.psql.Delete(occurrenceJournalTable).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build journal delete: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	return tag.RowsAffected(), nil
}
