package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"field-service/internal/authz"
	"field-service/internal/dto"
	"field-service/internal/entities"
	"field-service/internal/repositories"
	"field-service/pkg/types"
	"field-service/pkg/utils"
)

const (
	journalSheet     = "Ocorrências"
	journalExportMax = 100000
	journalTimeFmt   = "02/01/2006 15:04"
)

type JournalServiceInterface interface {
	ListOccurrences(ctx context.Context, filter types.Filter) ([]dto.OccurrenceRecordDTO, uint64, error)
	ExportOccurrences(ctx context.Context, filter types.Filter) (*excelize.File, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

type JournalService struct {
	repo       repositories.OccurrenceJournalRepositoryInterface
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewJournalService(repo repositories.OccurrenceJournalRepositoryInterface, gatekeeper *authz.Gatekeeper, logger *zap.Logger) JournalServiceInterface {
	return &JournalService{repo: repo, gatekeeper: gatekeeper, logger: logger.Named("journal_service")}
}

func (s *JournalService) ListOccurrences(ctx context.Context, filter types.Filter) ([]dto.OccurrenceRecordDTO, uint64, error) {
	if _, err := s.gatekeeper.Authorize(ctx, authz.OccurrencesView, nil); err != nil {
		return nil, 0, err
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.OccurrenceRecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, occurrenceRecordToDTO(rec))
	}
	return out, total, nil
}

func (s *JournalService) ExportOccurrences(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	if _, err := s.gatekeeper.Authorize(ctx, authz.OccurrencesView, nil); err != nil {
		return nil, err
	}

	filter.WithPagination = true
	filter.Limit = journalExportMax
	filter.Offset = 0
	records, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f, err := BuildJournalWorkbook(records)
	if err != nil {
		return nil, err
	}
	s.logger.Info("journal exported", zap.Int("rows", len(records)))
	return f, nil
}

// Prune deletes journal rows older than the given age.
func (s *JournalService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	n, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("journal pruned", zap.Int64("rows", n), zap.Time("cutoff", cutoff))
	return n, nil
}

var journalHeaders = []string{
	"ID", "OS", "Técnico", "Ação", "Ocorrência", "Justificativa", "Mensagem", "Registrada em",
}

func BuildJournalWorkbook(records []entities.OccurrenceRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", journalSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(journalSheet, "A1", &journalHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(journalSheet, "A1", "H1", style)
	}

	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			rec.ID, rec.OrderID, rec.TechnicianID, rec.Action.Label(), rec.Ocorrencia,
			rec.DescricaoOcorrencia.String, rec.Mensagem, rec.CreatedAt.Format(journalTimeFmt),
		}
		if err := f.SetSheetRow(journalSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(journalSheet, "D", "E", 25)
	_ = f.SetColWidth(journalSheet, "F", "G", 45)
	_ = f.SetColWidth(journalSheet, "H", "H", 18)
	return f, nil
}

func occurrenceRecordToDTO(rec entities.OccurrenceRecord) dto.OccurrenceRecordDTO {
	out := dto.OccurrenceRecordDTO{
		ID:           rec.ID,
		RequestID:    rec.RequestID.String(),
		OrderID:      rec.OrderID,
		TechnicianID: rec.TechnicianID,
		Action:       string(rec.Action),
		Ocorrencia:   rec.Ocorrencia,
		Mensagem:     rec.Mensagem,
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.DescricaoOcorrencia.Valid {
		out.DescricaoOcorrencia = utils.ToPtr(rec.DescricaoOcorrencia.String)
	}
	return out
}
