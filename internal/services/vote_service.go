package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/voting"
	"gorm.io/gorm"
)

// VoteService fronts the two vote engines with the banned-actor gate.
// Post and note voting share one generic engine; only the ledger
// constructors differ.
type VoteService struct {
	gate  *AuthorizationGate
	posts *voting.Engine[models.Post, models.PostVote]
	notes *voting.Engine[models.Note, models.NoteVote]
}

func NewVoteService(db *gorm.DB, gate *AuthorizationGate) *VoteService {
	return &VoteService{
		gate: gate,
		posts: voting.NewEngine[models.Post, models.PostVote](db, "post_id",
			func(entityID, actorID uuid.UUID, choice voting.Choice) models.PostVote {
				return models.PostVote{
					ID:     uuid.New(),
					PostID: entityID,
					UserID: actorID,
					Choice: string(choice),
				}
			}),
		notes: voting.NewEngine[models.Note, models.NoteVote](db, "note_id",
			func(entityID, actorID uuid.UUID, choice voting.Choice) models.NoteVote {
				return models.NoteVote{
					ID:     uuid.New(),
					NoteID: entityID,
					UserID: actorID,
					Choice: string(choice),
				}
			}),
	}
}

func (s *VoteService) CastPostVote(ctx context.Context, actorID, postID uuid.UUID, choice voting.Choice) (*voting.Result, error) {
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	return s.posts.Cast(ctx, postID, actorID, choice)
}

func (s *VoteService) CastNoteVote(ctx context.Context, actorID, noteID uuid.UUID, choice voting.Choice) (*voting.Result, error) {
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	return s.notes.Cast(ctx, noteID, actorID, choice)
}
