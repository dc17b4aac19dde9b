package ladder_test

import (
	"testing"

	"tcgladder/internal/ladder"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"
	"tcgladder/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recordingEvents captures event sink calls for assertions.
type recordingEvents struct {
	updates []models.EloUpdate
	scores  map[uint][2]float64
	cleared []string
}

func newRecordingEvents() *recordingEvents {
	return &recordingEvents{scores: map[uint][2]float64{}}
}

func (r *recordingEvents) PublishEloUpdate(update models.EloUpdate) {
	r.updates = append(r.updates, update)
}

func (r *recordingEvents) SetUserScores(userID uint, _ string, lifetime, seasonal float64) {
	r.scores[userID] = [2]float64{lifetime, seasonal}
}

func (r *recordingEvents) ClearTrack(track string) {
	r.cleared = append(r.cleared, track)
}

func setupMatch(t *testing.T, db *gorm.DB, svc *ladder.MatchService, format string) (*models.Match, *models.User, *models.User) {
	t.Helper()
	p1 := createUser(t, db, "p1-"+t.Name(), 1500, 1200)
	p2 := createUser(t, db, "p2-"+t.Name(), 1500, 1200)
	match, err := svc.AdminCreate(p1.ID, p2.ID, "control", "aggro", format)
	require.NoError(t, err)
	return match, p1, p2
}

func TestAdminCreateCanonicalOrdering(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewMatchService(db, zap.NewNop(), nil)

	alice := createUser(t, db, "alice", 1700, 1250)
	bob := createUser(t, db, "bob", 1400, 1100)

	// Passing the higher ID first still yields canonical ordering.
	match, err := svc.AdminCreate(bob.ID, alice.ID, "goblins", "azorius", models.FormatBestOf1)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, match.Player1ID)
	assert.Equal(t, bob.ID, match.Player2ID)
	assert.Equal(t, "azorius", match.Deck1)
	assert.Equal(t, "goblins", match.Deck2)
	assert.Equal(t, 1700.0, match.EloLifetimeStartP1)
	assert.Equal(t, 1100.0, match.EloSeasonalStartP2)

	_, err = svc.AdminCreate(alice.ID, alice.ID, "a", "b", models.FormatBestOf1)
	assert.ErrorIs(t, err, ladder.ErrSamePlayers)

	_, err = svc.AdminCreate(alice.ID, bob.ID, "a", "b", "bo7")
	assert.ErrorIs(t, err, ladder.ErrInvalidFormat)
}

func TestSubmitReportGuards(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewMatchService(db, zap.NewNop(), nil)
	match, p1, p2 := setupMatch(t, db, svc, models.FormatBestOf3)

	outsider := createUser(t, db, "outsider", 1500, 1200)

	_, err := svc.SubmitReport(match.ID, outsider.ID, p1.ID, 2)
	assert.ErrorIs(t, err, ladder.ErrNotParticipant)

	_, err = svc.SubmitReport(match.ID, p1.ID, outsider.ID, 2)
	assert.ErrorIs(t, err, ladder.ErrInvalidWinner)

	_, err = svc.SubmitReport(match.ID, p1.ID, p1.ID, 4)
	assert.ErrorIs(t, err, ladder.ErrInvalidGamesWon)

	// Claiming p1 won while the split says p2 took two games.
	_, err = svc.SubmitReport(match.ID, p1.ID, p1.ID, 1)
	assert.ErrorIs(t, err, ladder.ErrInconsistentReport)

	_, err = svc.SubmitReport(999, p1.ID, p1.ID, 2)
	assert.ErrorIs(t, err, repositories.ErrMatchNotFound)
	_ = p2
}

func TestAgreeingReportsResolveAndPayOnce(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	events := newRecordingEvents()
	svc := ladder.NewMatchService(db, zap.NewNop(), events)
	match, p1, p2 := setupMatch(t, db, svc, models.FormatBestOf1)

	status, err := svc.SubmitReport(match.ID, p1.ID, p1.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.MatchPending, status)

	status, err = svc.SubmitReport(match.ID, p2.ID, p1.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, status)

	users := &repositories.UserRepository{DB: db}
	winner, err := users.GetUserByID(p1.ID)
	require.NoError(t, err)
	loser, err := users.GetUserByID(p2.ID)
	require.NoError(t, err)

	// Equal ratings, BO1: exactly ±16 on both tracks, zero-sum.
	assert.InDelta(t, 1516, winner.EloLifetime, 1e-9)
	assert.InDelta(t, 1484, loser.EloLifetime, 1e-9)
	assert.InDelta(t, 1216, winner.EloSeasonal, 1e-9)
	assert.InDelta(t, 1184, loser.EloSeasonal, 1e-9)
	assert.Equal(t, 1, winner.MatchesPlayed)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 1, loser.MatchesPlayed)
	assert.Equal(t, 0, loser.Wins)

	resolved, err := svc.Get(match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, resolved.Status)
	require.NotNil(t, resolved.WinnerID)
	assert.Equal(t, p1.ID, *resolved.WinnerID)
	require.NotNil(t, resolved.ResolvedP1GamesWon)
	assert.Equal(t, 1, *resolved.ResolvedP1GamesWon)

	// Re-entering the resolution path is rejected, not re-applied.
	_, err = svc.SubmitReport(match.ID, p1.ID, p1.ID, 1)
	assert.ErrorIs(t, err, ladder.ErrAlreadyResolved)
	_, err = svc.AdminResolve(match.ID, 1)
	assert.ErrorIs(t, err, ladder.ErrAlreadyResolved)

	winner, _ = users.GetUserByID(p1.ID)
	assert.InDelta(t, 1516, winner.EloLifetime, 1e-9)
	assert.Equal(t, 1, winner.MatchesPlayed)

	// Post-commit events carry both tracks for both players.
	assert.Len(t, events.updates, 4)
	assert.Contains(t, events.scores, p1.ID)
	assert.Contains(t, events.scores, p2.ID)
}

func TestIdenticalResubmissionIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewMatchService(db, zap.NewNop(), nil)
	match, p1, _ := setupMatch(t, db, svc, models.FormatBestOf3)

	for i := 0; i < 3; i++ {
		status, err := svc.SubmitReport(match.ID, p1.ID, p1.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, models.MatchPending, status)
	}

	matches := &repositories.MatchRepository{DB: db}
	reports, err := matches.GetReports(match.ID)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestDisagreeingReportsDispute(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewMatchService(db, zap.NewNop(), nil)
	match, p1, p2 := setupMatch(t, db, svc, models.FormatBestOf3)

	status, err := svc.SubmitReport(match.ID, p1.ID, p1.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.MatchPending, status)

	// p2 agrees on the winner but not the split: still a dispute.
	status, err = svc.SubmitReport(match.ID, p2.ID, p1.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, models.MatchDisputed, status)

	// No rating movement on dispute.
	users := &repositories.UserRepository{DB: db}
	for _, id := range []uint{p1.ID, p2.ID} {
		u, err := users.GetUserByID(id)
		require.NoError(t, err)
		assert.InDelta(t, 1500, u.EloLifetime, 1e-9)
		assert.Equal(t, 0, u.MatchesPlayed)
	}

	// Participants may still overwrite their report while disputed, but
	// agreement no longer auto-resolves; an admin owns the match now.
	status, err = svc.SubmitReport(match.ID, p2.ID, p1.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.MatchDisputed, status)

	resolved, err := svc.AdminResolve(match.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, resolved.Status)
	require.NotNil(t, resolved.WinnerID)
	assert.Equal(t, p1.ID, *resolved.WinnerID)

	u, _ := users.GetUserByID(p1.ID)
	assert.InDelta(t, 1516, u.EloLifetime, 1e-9)
	assert.Equal(t, 1, u.Wins)
}

func TestAdminResolveGuards(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewMatchService(db, zap.NewNop(), nil)
	match, _, _ := setupMatch(t, db, svc, models.FormatBestOf3)

	_, err := svc.AdminResolve(match.ID, 5)
	assert.ErrorIs(t, err, ladder.ErrInvalidGamesWon)

	_, err = svc.AdminResolve(999, 2)
	assert.ErrorIs(t, err, repositories.ErrMatchNotFound)

	// Direct resolution works straight from Pending.
	resolved, err := svc.AdminResolve(match.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, resolved.Status)
	assert.Equal(t, match.Player2ID, *resolved.WinnerID)
}

func TestResolutionUsesFrozenSnapshots(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewMatchService(db, zap.NewNop(), nil)
	match, p1, _ := setupMatch(t, db, svc, models.FormatBestOf1)

	// p1's rating moves after the snapshot was taken; the payout must not
	// care.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", p1.ID).
		UpdateColumn("elo_lifetime", 2000).Error)

	_, err := svc.AdminResolve(match.ID, 1)
	require.NoError(t, err)

	users := &repositories.UserRepository{DB: db}
	u, err := users.GetUserByID(p1.ID)
	require.NoError(t, err)

	// Delta computed against the 1500 snapshot (+16), applied to the
	// current value.
	assert.InDelta(t, 2016, u.EloLifetime, 1e-9)
}
