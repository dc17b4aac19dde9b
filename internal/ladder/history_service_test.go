package ladder_test

import (
	"math"
	"testing"

	"tcgladder/internal/ladder"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"
	"tcgladder/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRatingHistoryValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewHistoryService(db)

	_, err := svc.RatingHistory("nobody", models.TrackLifetime)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	createUser(t, db, "someone", 1500, 1200)
	_, err = svc.RatingHistory("someone", "weekly")
	assert.ErrorIs(t, err, ladder.ErrInvalidTrack)
}

func TestRatingHistoryStartsAtBaseline(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := ladder.NewHistoryService(db)

	createUser(t, db, "fresh", 1500, 1200)

	points, err := svc.RatingHistory("fresh", models.TrackLifetime)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1500, points[0].Elo)

	seasonal, err := svc.RatingHistory("fresh", models.TrackSeasonal)
	require.NoError(t, err)
	require.Len(t, seasonal, 1)
	assert.Equal(t, 1200, seasonal[0].Elo)
}

// Replaying completed matches must land exactly on the values resolution
// committed, because both consume the same frozen snapshots and the same
// engine.
func TestRatingHistoryReproducesCommittedRatings(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	matchSvc := ladder.NewMatchService(db, zap.NewNop(), nil)
	historySvc := ladder.NewHistoryService(db)

	hero := createUser(t, db, "hero", 1500, 1200)
	rival := createUser(t, db, "rival", 1500, 1200)

	// Two matches resolved in sequence; the second snapshots the ratings
	// the first one produced.
	first, err := matchSvc.AdminCreate(hero.ID, rival.ID, "a", "b", models.FormatBestOf1)
	require.NoError(t, err)
	_, err = matchSvc.AdminResolve(first.ID, 1)
	require.NoError(t, err)

	second, err := matchSvc.AdminCreate(hero.ID, rival.ID, "a", "b", models.FormatBestOf3)
	require.NoError(t, err)
	_, err = matchSvc.AdminResolve(second.ID, 1)
	require.NoError(t, err)

	users := &repositories.UserRepository{DB: db}
	current, err := users.GetUserByID(hero.ID)
	require.NoError(t, err)

	for _, track := range []string{models.TrackLifetime, models.TrackSeasonal} {
		points, err := historySvc.RatingHistory("hero", track)
		require.NoError(t, err)
		require.Len(t, points, 3, "baseline plus two matches")

		stored := current.EloLifetime
		if track == models.TrackSeasonal {
			stored = current.EloSeasonal
		}
		assert.Equal(t, int(math.Round(stored)), points[len(points)-1].Elo,
			"replayed %s rating must equal the committed value", track)
	}

	// The opponent's replay mirrors it from their side.
	rivalNow, err := users.GetUserByID(rival.ID)
	require.NoError(t, err)
	points, err := historySvc.RatingHistory("rival", models.TrackLifetime)
	require.NoError(t, err)
	assert.Equal(t, int(math.Round(rivalNow.EloLifetime)), points[len(points)-1].Elo)
}

func TestRatingHistorySkipsUnresolvedMatches(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	matchSvc := ladder.NewMatchService(db, zap.NewNop(), nil)
	historySvc := ladder.NewHistoryService(db)

	hero := createUser(t, db, "hero", 1500, 1200)
	rival := createUser(t, db, "rival", 1500, 1200)

	_, err := matchSvc.AdminCreate(hero.ID, rival.ID, "a", "b", models.FormatBestOf1)
	require.NoError(t, err)

	points, err := historySvc.RatingHistory("hero", models.TrackLifetime)
	require.NoError(t, err)
	assert.Len(t, points, 1, "pending matches contribute nothing")
}
