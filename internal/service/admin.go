package service

import (
	"context"
	"log/slog"

	"github.com/pemira-fti/backend/internal/models"
	"github.com/pemira-fti/backend/internal/storage"
)

// VoterSummary is the admin-facing view of a voter. It never carries the
// password hash or the enrollment photo.
type VoterSummary struct {
	NPM        string `json:"npm"`
	Name       string `json:"name"`
	Region     string `json:"region"`
	ClassLabel string `json:"class_label"`
	HasVoted   bool   `json:"has_voted"`
	CreatedAt  int64  `json:"created_at"`
}

// AdminService serves the admin dashboard read paths.
type AdminService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewAdminService creates an admin dashboard service.
func NewAdminService(store storage.Store, logger *slog.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

// Voters lists all registered voters.
func (s *AdminService) Voters(ctx context.Context) ([]VoterSummary, error) {
	voters, err := s.store.ListVoters(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]VoterSummary, 0, len(voters))
	for _, voter := range voters {
		summaries = append(summaries, VoterSummary{
			NPM:        voter.NPM,
			Name:       voter.Name,
			Region:     voter.Region,
			ClassLabel: voter.ClassLabel,
			HasVoted:   voter.HasVoted,
			CreatedAt:  voter.CreatedAt,
		})
	}
	return summaries, nil
}

// Logs returns the most recent audit entries, newest first.
func (s *AdminService) Logs(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return s.store.RecentAudit(ctx, limit)
}

// Summary returns turnout counts.
func (s *AdminService) Summary(ctx context.Context) (*models.Participation, error) {
	return s.store.Participation(ctx)
}
