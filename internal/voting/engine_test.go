package voting

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyhub/backend/internal/database"
	"github.com/studyhub/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupEngineDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedPost(t *testing.T, db *gorm.DB) (models.Post, models.User) {
	t.Helper()
	user := models.User{
		ID:         uuid.New(),
		OrgID:      "uni-a",
		ExternalID: "ext-" + uuid.NewString(),
		Name:       "Voter",
		Email:      uuid.NewString() + "@example.edu",
		Role:       models.RoleGeneral,
	}
	require.NoError(t, db.Create(&user).Error)

	course := models.Course{ID: uuid.New(), OrgID: "uni-a", Name: "Algorithms " + uuid.NewString()}
	require.NoError(t, db.Create(&course).Error)

	post := models.Post{
		ID:       uuid.New(),
		OrgID:    "uni-a",
		CourseID: course.ID,
		UserID:   user.ID,
		Title:    "Week 3 recap",
		Content:  "Summary of the lecture",
	}
	require.NoError(t, db.Create(&post).Error)
	return post, user
}

func newPostEngine(db *gorm.DB) *Engine[models.Post, models.PostVote] {
	return NewEngine[models.Post, models.PostVote](db, "post_id",
		func(entityID, actorID uuid.UUID, choice Choice) models.PostVote {
			return models.PostVote{
				ID:     uuid.New(),
				PostID: entityID,
				UserID: actorID,
				Choice: string(choice),
			}
		})
}

func TestCastRecordsFreshVote(t *testing.T) {
	db := setupEngineDB(t)
	post, user := seedPost(t, db)
	engine := newPostEngine(db)
	ctx := context.Background()

	res, err := engine.Cast(ctx, post.ID, user.ID, Positive)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecorded, res.Outcome)
	assert.Equal(t, 1, res.Positive)
	assert.Equal(t, 0, res.Negative)

	rec, err := engine.CurrentChoice(ctx, post.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, string(Positive), rec.Choice)
}

func TestCastSameChoiceCancels(t *testing.T) {
	db := setupEngineDB(t)
	post, user := seedPost(t, db)
	engine := newPostEngine(db)
	ctx := context.Background()

	_, err := engine.Cast(ctx, post.ID, user.ID, Negative)
	require.NoError(t, err)

	res, err := engine.Cast(ctx, post.ID, user.ID, Negative)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCanceled, res.Outcome)
	assert.Equal(t, 0, res.Positive)
	assert.Equal(t, 0, res.Negative)

	rec, err := engine.CurrentChoice(ctx, post.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCastOppositeChoiceSwitches(t *testing.T) {
	db := setupEngineDB(t)
	post, user := seedPost(t, db)
	engine := newPostEngine(db)
	ctx := context.Background()

	_, err := engine.Cast(ctx, post.ID, user.ID, Positive)
	require.NoError(t, err)

	res, err := engine.Cast(ctx, post.ID, user.ID, Negative)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSwitched, res.Outcome)
	assert.Equal(t, 0, res.Positive)
	assert.Equal(t, 1, res.Negative)

	rec, err := engine.CurrentChoice(ctx, post.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, string(Negative), rec.Choice)
}

func TestCastCancelThenRevote(t *testing.T) {
	db := setupEngineDB(t)
	post, user := seedPost(t, db)
	engine := newPostEngine(db)
	ctx := context.Background()

	_, err := engine.Cast(ctx, post.ID, user.ID, Positive)
	require.NoError(t, err)
	_, err = engine.Cast(ctx, post.ID, user.ID, Positive)
	require.NoError(t, err)

	res, err := engine.Cast(ctx, post.ID, user.ID, Positive)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecorded, res.Outcome)
	assert.Equal(t, 1, res.Positive)
}

// Counters track ledger cardinality across multiple voters.
func TestCountersMatchLedger(t *testing.T) {
	db := setupEngineDB(t)
	post, first := seedPost(t, db)
	engine := newPostEngine(db)
	ctx := context.Background()

	voters := []uuid.UUID{first.ID}
	for i := 0; i < 4; i++ {
		u := models.User{
			ID:         uuid.New(),
			OrgID:      "uni-a",
			ExternalID: "ext-" + uuid.NewString(),
			Name:       "Voter",
			Email:      uuid.NewString() + "@example.edu",
			Role:       models.RoleGeneral,
		}
		require.NoError(t, db.Create(&u).Error)
		voters = append(voters, u.ID)
	}

	// 3 positive, 2 negative, then one positive voter flips and one
	// negative voter cancels.
	for i, id := range voters {
		choice := Positive
		if i >= 3 {
			choice = Negative
		}
		_, err := engine.Cast(ctx, post.ID, id, choice)
		require.NoError(t, err)
	}
	_, err := engine.Cast(ctx, post.ID, voters[0], Negative)
	require.NoError(t, err)
	res, err := engine.Cast(ctx, post.ID, voters[3], Negative)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Positive)
	assert.Equal(t, 2, res.Negative)

	var ledgerPos, ledgerNeg int64
	require.NoError(t, db.Model(&models.PostVote{}).
		Where("post_id = ? AND choice = ?", post.ID, string(Positive)).Count(&ledgerPos).Error)
	require.NoError(t, db.Model(&models.PostVote{}).
		Where("post_id = ? AND choice = ?", post.ID, string(Negative)).Count(&ledgerNeg).Error)
	assert.EqualValues(t, res.Positive, ledgerPos)
	assert.EqualValues(t, res.Negative, ledgerNeg)
}

// A drifted counter must never go negative: cancelling against a zero
// counter clamps at zero.
func TestCancelClampsCounterAtZero(t *testing.T) {
	db := setupEngineDB(t)
	post, user := seedPost(t, db)
	engine := newPostEngine(db)
	ctx := context.Background()

	_, err := engine.Cast(ctx, post.ID, user.ID, Positive)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Update("upvotes", 0).Error)

	res, err := engine.Cast(ctx, post.ID, user.ID, Positive)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCanceled, res.Outcome)
	assert.Equal(t, 0, res.Positive)
}

func TestCastRejectsInvalidChoice(t *testing.T) {
	db := setupEngineDB(t)
	post, user := seedPost(t, db)
	engine := newPostEngine(db)

	_, err := engine.Cast(context.Background(), post.ID, user.ID, Choice("sideways"))
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestCastUnknownEntity(t *testing.T) {
	db := setupEngineDB(t)
	_, user := seedPost(t, db)
	engine := newPostEngine(db)

	_, err := engine.Cast(context.Background(), uuid.New(), user.ID, Positive)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseChoiceVocabularies(t *testing.T) {
	cases := map[string]Choice{
		"upvote":    Positive,
		"helpful":   Positive,
		"positive":  Positive,
		"downvote":  Negative,
		"unhelpful": Negative,
		"negative":  Negative,
	}
	for in, want := range cases {
		got, err := ParseChoice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseChoice("meh")
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestLockForUpdateByDialect(t *testing.T) {
	db := setupEngineDB(t)

	// SQLite allows one writer at a time and rejects FOR UPDATE syntax,
	// so the lock clause must stay off.
	stmt := lockForUpdate(db.Session(&gorm.Session{DryRun: true})).
		Find(&[]models.Post{}).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")

	// On Postgres the entity row must be locked inside the cast
	// transaction so two switch branches cannot both read the old
	// ledger row and double-count.
	pg, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=vote dbname=vote",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	stmt = lockForUpdate(pg.Session(&gorm.Session{DryRun: true})).
		Find(&[]models.Post{}).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}
