package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pemira-fti/backend/internal/auth"
	"github.com/pemira-fti/backend/internal/models"
	"github.com/pemira-fti/backend/internal/storage"
	"github.com/pemira-fti/backend/internal/verify"
)

// DocumentVerifier checks the enrollment document for required identity
// tokens.
type DocumentVerifier interface {
	Verify(identityKey, displayName string, doc []byte) bool
}

// FaceDetector checks the enrollment photo for a detectable face region.
type FaceDetector interface {
	HasFace(img []byte) bool
}

// RegistrationRequest carries the submitted form fields and uploaded files.
type RegistrationRequest struct {
	NPM        string
	Name       string
	Region     string
	ClassLabel string
	Password   string
	Document   []byte
	Photo      []byte
}

// RegistrationService admits new voters: field completeness, document
// verification, face presence, credential hashing, atomic insert.
type RegistrationService struct {
	store           storage.Store
	documents       DocumentVerifier
	faces           FaceDetector
	pool            *verify.Pool
	location        string
	auditDuplicates bool
	logger          *slog.Logger
}

// NewRegistrationService creates a registration pipeline. auditDuplicates
// controls whether rejected duplicate registrations still write an audit
// entry.
func NewRegistrationService(
	store storage.Store,
	documents DocumentVerifier,
	faces FaceDetector,
	pool *verify.Pool,
	location string,
	auditDuplicates bool,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		store:           store,
		documents:       documents,
		faces:           faces,
		pool:            pool,
		location:        location,
		auditDuplicates: auditDuplicates,
		logger:          logger,
	}
}

// Register runs the verification pipeline and, on success, creates the
// voter. Steps short-circuit on first failure; the voter row and its audit
// entry land atomically or not at all.
func (s *RegistrationService) Register(ctx context.Context, req RegistrationRequest) (*models.Voter, error) {
	if req.NPM == "" || req.Name == "" || req.Password == "" ||
		len(req.Document) == 0 || len(req.Photo) == 0 {
		registrationsTotal.WithLabelValues(outcomeIncomplete).Inc()
		return nil, ErrIncompleteSubmission
	}

	docOK, err := s.timedCheck(ctx, "document", func() bool {
		return s.documents.Verify(req.NPM, req.Name, req.Document)
	})
	if err != nil {
		registrationsTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}
	if !docOK {
		s.logger.Info("registration rejected by document check", "npm", req.NPM)
		registrationsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, ErrVerificationFailed
	}

	faceOK, err := s.timedCheck(ctx, "face", func() bool {
		return s.faces.HasFace(req.Photo)
	})
	if err != nil {
		registrationsTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}
	if !faceOK {
		s.logger.Info("registration rejected by face check", "npm", req.NPM)
		registrationsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, ErrVerificationFailed
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		registrationsTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	voter := &models.Voter{
		NPM:          req.NPM,
		Name:         req.Name,
		Region:       req.Region,
		ClassLabel:   req.ClassLabel,
		PasswordHash: hash,
		Photo:        base64.StdEncoding.EncodeToString(req.Photo),
		CreatedAt:    time.Now().Unix(),
	}

	err = s.store.RegisterVoter(ctx, voter, s.auditEntry(req.NPM, models.AuditAccountCreated))
	if errors.Is(err, storage.ErrDuplicateVoter) {
		registrationsTotal.WithLabelValues(outcomeDuplicate).Inc()
		if s.auditDuplicates {
			if auditErr := s.store.AppendAudit(ctx, s.auditEntry(req.NPM, "duplicate registration rejected")); auditErr != nil {
				s.logger.Error("failed to audit duplicate registration", "npm", req.NPM, "error", auditErr)
			}
		}
		return nil, ErrDuplicateIdentity
	}
	if err != nil {
		registrationsTotal.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("failed to register voter: %w", err)
	}

	s.logger.Info("voter registered", "npm", voter.NPM, "region", voter.Region)
	registrationsTotal.WithLabelValues(outcomeOK).Inc()
	return voter, nil
}

// timedCheck runs a verification step on the bounded pool and records its
// duration.
func (s *RegistrationService) timedCheck(ctx context.Context, name string, check func() bool) (bool, error) {
	start := time.Now()
	ok, err := s.pool.Do(ctx, check)
	if err != nil {
		return false, fmt.Errorf("%s check did not run: %w", name, err)
	}
	verificationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return ok, nil
}

func (s *RegistrationService) auditEntry(npm, action string) *models.AuditEntry {
	return &models.AuditEntry{
		NPM:      npm,
		At:       time.Now().Unix(),
		Location: s.location,
		Action:   action,
	}
}
