package service

import (
	"context"

	"github.com/ScrApErxeb/Gestion-CAVE/internal/dto"
	"github.com/ScrApErxeb/Gestion-CAVE/internal/repository"
)

// JournalService exposes the audit trail, read-only. Entries are appended
// by the mutating workflows, never through the API.
type JournalService interface {
	List(ctx context.Context, filter dto.JournalFilter) (*dto.JournalListResponse, error)
}

type journalService struct {
	repo repository.JournalRepository
}

func NewJournalService(repo repository.JournalRepository) JournalService {
	return &journalService{repo: repo}
}

func (s *journalService) List(ctx context.Context, filter dto.JournalFilter) (*dto.JournalListResponse, error) {
	entrees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.JournalListResponse{
		Data:  make([]dto.JournalEntryResponse, 0, len(entrees)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range entrees {
		e := &entrees[i]
		item := dto.JournalEntryResponse{
			ID:          e.ID,
			Action:      e.Action,
			Description: e.Description,
			Statut:      e.Statut,
			Date:        e.CreatedAt.Format(dateTimeFormat),
		}
		if e.Utilisateur != nil {
			item.Utilisateur = &e.Utilisateur.Username
		}
		resp.Data = append(resp.Data, item)
	}
	return resp, nil
}
