package sqlite

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pemira-fti/backend/internal/models"
	"github.com/pemira-fti/backend/internal/storage"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "pemira-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})
	return store
}

func testVoter(npm string) *models.Voter {
	return &models.Voter{
		NPM:          npm,
		Name:         "Jane Doe",
		Region:       "Region 1",
		ClassLabel:   "3KA01",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Photo:        "aGVsbG8=",
		CreatedAt:    time.Now().Unix(),
	}
}

func testAudit(npm, action string) *models.AuditEntry {
	return &models.AuditEntry{
		NPM:      npm,
		At:       time.Now().Unix(),
		Location: "Jakarta",
		Action:   action,
	}
}

func TestRegisterVoter_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	want := testVoter("A123")
	if err := store.RegisterVoter(ctx, want, testAudit("A123", models.AuditAccountCreated)); err != nil {
		t.Fatalf("RegisterVoter failed: %v", err)
	}

	got, err := store.GetVoter(ctx, "A123")
	if err != nil {
		t.Fatalf("GetVoter failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected voter, got nil")
	}
	if got.Name != want.Name || got.Region != want.Region || got.ClassLabel != want.ClassLabel {
		t.Errorf("voter fields mismatch: got %+v", got)
	}
	if got.HasVoted {
		t.Error("new voter must start with HasVoted false")
	}
	if got.Photo != want.Photo {
		t.Error("photo was not persisted")
	}

	entries, err := store.RecentAudit(ctx, 10)
	if err != nil {
		t.Fatalf("RecentAudit failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != models.AuditAccountCreated {
		t.Errorf("expected one 'account created' audit entry, got %+v", entries)
	}
}

func TestGetVoter_NotFound(t *testing.T) {
	store := setupTestStore(t)

	voter, err := store.GetVoter(context.Background(), "Z999")
	if err != nil {
		t.Fatalf("GetVoter failed: %v", err)
	}
	if voter != nil {
		t.Errorf("expected nil for unknown NPM, got %+v", voter)
	}
}

func TestRegisterVoter_Duplicate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.RegisterVoter(ctx, testVoter("A123"), nil); err != nil {
		t.Fatalf("first RegisterVoter failed: %v", err)
	}

	err := store.RegisterVoter(ctx, testVoter("A123"), testAudit("A123", models.AuditAccountCreated))
	if !errors.Is(err, storage.ErrDuplicateVoter) {
		t.Fatalf("expected ErrDuplicateVoter, got %v", err)
	}

	// Exactly one row, and the rejected attempt wrote no audit entry.
	voters, err := store.ListVoters(ctx)
	if err != nil {
		t.Fatalf("ListVoters failed: %v", err)
	}
	if len(voters) != 1 {
		t.Errorf("expected exactly one voter row, got %d", len(voters))
	}
	entries, err := store.RecentAudit(ctx, 10)
	if err != nil {
		t.Fatalf("RecentAudit failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("duplicate registration must not write audit entries, got %d", len(entries))
	}
}

func TestCastBallot(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.RegisterVoter(ctx, testVoter("A123"), nil); err != nil {
		t.Fatalf("RegisterVoter failed: %v", err)
	}

	ballot := &models.Ballot{ID: uuid.New().String(), Candidate: "Kandidat 01", CastAt: time.Now().Unix()}
	if err := store.CastBallot(ctx, "A123", ballot, testAudit("A123", models.AuditBallotCast)); err != nil {
		t.Fatalf("CastBallot failed: %v", err)
	}

	voter, err := store.GetVoter(ctx, "A123")
	if err != nil {
		t.Fatalf("GetVoter failed: %v", err)
	}
	if !voter.HasVoted {
		t.Error("expected HasVoted true after cast")
	}

	tallies, err := store.TallyBallots(ctx)
	if err != nil {
		t.Fatalf("TallyBallots failed: %v", err)
	}
	if len(tallies) != 1 || tallies[0].Candidate != "Kandidat 01" || tallies[0].Count != 1 {
		t.Errorf("unexpected tallies: %+v", tallies)
	}
}

func TestCastBallot_SecondCastRejected(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.RegisterVoter(ctx, testVoter("A123"), nil); err != nil {
		t.Fatalf("RegisterVoter failed: %v", err)
	}

	first := &models.Ballot{ID: uuid.New().String(), Candidate: "Kandidat 01", CastAt: time.Now().Unix()}
	if err := store.CastBallot(ctx, "A123", first, nil); err != nil {
		t.Fatalf("first CastBallot failed: %v", err)
	}

	second := &models.Ballot{ID: uuid.New().String(), Candidate: "Kandidat 02", CastAt: time.Now().Unix()}
	if err := store.CastBallot(ctx, "A123", second, nil); !errors.Is(err, storage.ErrVoteAlreadyCast) {
		t.Fatalf("expected ErrVoteAlreadyCast, got %v", err)
	}

	tallies, err := store.TallyBallots(ctx)
	if err != nil {
		t.Fatalf("TallyBallots failed: %v", err)
	}
	total := 0
	for _, tally := range tallies {
		total += tally.Count
	}
	if total != 1 {
		t.Errorf("expected exactly one ballot, got %d", total)
	}
}

func TestCastBallot_UnknownVoter(t *testing.T) {
	store := setupTestStore(t)

	ballot := &models.Ballot{ID: uuid.New().String(), Candidate: "Kandidat 01", CastAt: time.Now().Unix()}
	err := store.CastBallot(context.Background(), "Z999", ballot, nil)
	if !errors.Is(err, storage.ErrVoterNotFound) {
		t.Fatalf("expected ErrVoterNotFound, got %v", err)
	}
}

// TestCastBallot_Concurrent verifies the one-vote guarantee under concurrent
// execution: of N simultaneous casts for the same voter exactly one commits,
// leaving exactly one ballot row.
func TestCastBallot_Concurrent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.RegisterVoter(ctx, testVoter("A123"), nil); err != nil {
		t.Fatalf("RegisterVoter failed: %v", err)
	}

	const attempts = 10
	var successes, rejections atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ballot := &models.Ballot{ID: uuid.New().String(), Candidate: "Kandidat 01", CastAt: time.Now().Unix()}
			err := store.CastBallot(ctx, "A123", ballot, testAudit("A123", models.AuditBallotCast))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, storage.ErrVoteAlreadyCast):
				rejections.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("expected exactly one successful cast, got %d", successes.Load())
	}
	if rejections.Load() != attempts-1 {
		t.Errorf("expected %d rejections, got %d", attempts-1, rejections.Load())
	}

	tallies, err := store.TallyBallots(ctx)
	if err != nil {
		t.Fatalf("TallyBallots failed: %v", err)
	}
	total := 0
	for _, tally := range tallies {
		total += tally.Count
	}
	if total != 1 {
		t.Errorf("expected exactly one ballot row, got %d", total)
	}

	entries, err := store.RecentAudit(ctx, attempts)
	if err != nil {
		t.Fatalf("RecentAudit failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected one audit entry for the single committed cast, got %d", len(entries))
	}
}

func TestRecentAudit_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, action := range []string{"first", "second", "third"} {
		if err := store.AppendAudit(ctx, testAudit("A123", action)); err != nil {
			t.Fatalf("AppendAudit failed: %v", err)
		}
	}

	entries, err := store.RecentAudit(ctx, 2)
	if err != nil {
		t.Fatalf("RecentAudit failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "third" || entries[1].Action != "second" {
		t.Errorf("expected newest-first order, got %q then %q", entries[0].Action, entries[1].Action)
	}
}

func TestParticipation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, npm := range []string{"A1", "A2", "A3"} {
		if err := store.RegisterVoter(ctx, testVoter(npm), nil); err != nil {
			t.Fatalf("RegisterVoter failed: %v", err)
		}
	}
	ballot := &models.Ballot{ID: uuid.New().String(), Candidate: "Kandidat 01", CastAt: time.Now().Unix()}
	if err := store.CastBallot(ctx, "A2", ballot, nil); err != nil {
		t.Fatalf("CastBallot failed: %v", err)
	}

	p, err := store.Participation(ctx)
	if err != nil {
		t.Fatalf("Participation failed: %v", err)
	}
	if p.Total != 3 || p.Voted != 1 || p.NotVoted != 2 {
		t.Errorf("unexpected participation: %+v", p)
	}
}
