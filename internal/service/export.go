package service

import (
	"context"
	"fmt"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// ExportService assembles a flat export of every trip and its sections.
type ExportService struct {
	trips    repo.TripRepo
	sections repo.SectionRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, sections repo.SectionRepo) *ExportService {
	return &ExportService{trips: trips, sections: sections}
}

// Export returns one ExportRow per section across all trips.
// Trips with no sections contribute one row with empty section fields.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:         t.ID.String(),
			PlaceName:      t.PlaceName,
			TripStartDate:  t.StartDate.UTC().Format("2006-01-02"),
			TripEndDate:    t.EndDate.UTC().Format("2006-01-02"),
			NumberOfPeople: t.NumberOfPeople,
			CreatedBy:      t.CreatedBy.String(),
			Activities:     []string{},
		}

		sections, err := s.sections.ListByTrip(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: trip %s: %w", t.ID, err)
		}
		if len(sections) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, sec := range sections {
			row := base
			row.SectionOrdinal = sec.Ordinal
			row.SectionPlace = sec.Place
			start, end := sec.StartDate, sec.EndDate
			row.SectionStartDate = &start
			row.SectionEndDate = &end
			row.SectionBudget = sec.Budget
			row.Activities = sec.Activities
			rows = append(rows, row)
		}
	}
	return rows, nil
}
