package voting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidChoice = errors.New("invalid vote choice")
	ErrNotFound      = errors.New("votable entity not found")
)

// Entity is a model carrying a positive/negative counter pair.
type Entity interface {
	VoteCounterColumns() (positive, negative string)
	VoteCounts() (positive, negative int)
}

// Record is one vote-ledger row: the actor's current choice on an entity.
type Record interface {
	VoteChoice() string
}

// Result is the effective state after a cast, with counters as settled
// by the same transaction.
type Result struct {
	Outcome  Outcome `json:"status"`
	Positive int     `json:"positive_count"`
	Negative int     `json:"negative_count"`
}

// Engine applies vote intents against one entity kind, keeping ledger
// and counters consistent. E is the votable model, R its ledger row.
// Posts and notes each get an Engine instance; the toggle semantics
// are identical.
type Engine[E Entity, R Record] struct {
	db        *gorm.DB
	entityKey string // ledger column referencing the entity, e.g. "post_id"
	newRecord func(entityID, actorID uuid.UUID, choice Choice) R
}

func NewEngine[E Entity, R Record](db *gorm.DB, entityKey string, newRecord func(entityID, actorID uuid.UUID, choice Choice) R) *Engine[E, R] {
	return &Engine[E, R]{db: db, entityKey: entityKey, newRecord: newRecord}
}

// Cast applies one vote intent. No prior ledger row records the vote;
// a row with the same choice cancels it; a row with the other choice
// switches it. Ledger and counter mutations commit atomically.
func (e *Engine[E, R]) Cast(ctx context.Context, entityID, actorID uuid.UUID, choice Choice) (*Result, error) {
	if choice != Positive && choice != Negative {
		return nil, ErrInvalidChoice
	}

	// Two concurrent first votes by the same actor race on the ledger's
	// unique index. The losing insert retries once and lands in the
	// switch/cancel branch instead.
	for attempt := 0; ; attempt++ {
		res, err := e.cast(ctx, entityID, actorID, choice)
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 {
			continue
		}
		return res, err
	}
}

func (e *Engine[E, R]) cast(ctx context.Context, entityID, actorID uuid.UUID, choice Choice) (*Result, error) {
	res := &Result{}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row-lock the entity so concurrent casts against it serialize;
		// without it two switch branches can both read the old ledger
		// row and double-count.
		var entity E
		if err := lockForUpdate(tx).First(&entity, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		posCol, negCol := entity.VoteCounterColumns()
		matchCol, otherCol := posCol, negCol
		if choice == Negative {
			matchCol, otherCol = negCol, posCol
		}

		var rec R
		err := tx.Where(e.entityKey+" = ? AND user_id = ?", entityID, actorID).First(&rec).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := e.newRecord(entityID, actorID, choice)
			if err := tx.Create(&fresh).Error; err != nil {
				return err // a duplicated-key error bubbles up to the retry loop
			}
			if err := adjustCounter(tx, &entity, entityID, matchCol, +1); err != nil {
				return err
			}
			res.Outcome = OutcomeRecorded
		case err != nil:
			return err
		case rec.VoteChoice() == string(choice):
			if err := tx.Delete(&rec).Error; err != nil {
				return err
			}
			if err := adjustCounter(tx, &entity, entityID, matchCol, -1); err != nil {
				return err
			}
			res.Outcome = OutcomeCanceled
		default:
			if err := tx.Model(&rec).Update("choice", string(choice)).Error; err != nil {
				return err
			}
			if err := adjustCounter(tx, &entity, entityID, matchCol, +1); err != nil {
				return err
			}
			if err := adjustCounter(tx, &entity, entityID, otherCol, -1); err != nil {
				return err
			}
			res.Outcome = OutcomeSwitched
		}

		var settled E
		if err := tx.First(&settled, "id = ?", entityID).Error; err != nil {
			return err
		}
		res.Positive, res.Negative = settled.VoteCounts()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CurrentChoice returns the actor's live ledger entry for the entity,
// or nil when the actor has no active vote.
func (e *Engine[E, R]) CurrentChoice(ctx context.Context, entityID, actorID uuid.UUID) (*R, error) {
	var rec R
	err := e.db.WithContext(ctx).
		Where(e.entityKey+" = ? AND user_id = ?", entityID, actorID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// lockForUpdate adds a FOR UPDATE row lock where the dialect supports
// it. SQLite allows a single writer and has no locking clause.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// adjustCounter moves a counter column by one, clamping decrements at
// zero so concurrent cancels can never drive it negative.
func adjustCounter[E Entity](tx *gorm.DB, entity *E, entityID uuid.UUID, col string, delta int) error {
	var expr clause.Expr
	if delta > 0 {
		expr = gorm.Expr(col + " + 1")
	} else {
		expr = gorm.Expr("CASE WHEN " + col + " > 0 THEN " + col + " - 1 ELSE 0 END")
	}
	return tx.Model(entity).Where("id = ?", entityID).Update(col, expr).Error
}
