package handlers

import (
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
	"github.com/studyhub/backend/internal/voting"
)

type NoteHandler struct {
	noteService *services.NoteService
	voteService *services.VoteService
}

func NewNoteHandler(noteService *services.NoteService, voteService *services.VoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService, voteService: voteService}
}

// Upload accepts a multipart form: file, title, optional tags as a
// JSON array. The note lands in the review queue.
func (h *NoteHandler) Upload(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid course ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "File is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "Could not read file")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Could not read file")
	}

	title := c.FormValue("title")
	var tags []string
	if raw := c.FormValue("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return badRequest(c, "Tags must be a JSON string array")
		}
	}

	note, err := h.noteService.UploadNote(c.Context(), orgID, actorID, courseID, title, fileHeader.Filename, data, tags)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid course ID")
	}

	notes, err := h.noteService.ListNotes(courseID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"notes": notes})
}

func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	note, err := h.noteService.GetNote(noteID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(note)
}

func (h *NoteHandler) ReviewQueue(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	notes, err := h.noteService.ReviewQueue(orgID, actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"notes": notes, "total": len(notes)})
}

func (h *NoteHandler) ApproveNote(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	note, err := h.noteService.ApproveNote(actorID, noteID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(note)
}

func (h *NoteHandler) RejectNote(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	note, err := h.noteService.RejectNote(actorID, noteID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(note)
}

func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	if err := h.noteService.DeleteNote(c.Context(), actorID, noteID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Note deleted"})
}

// VoteNote toggles the caller's helpful/unhelpful vote on a note.
func (h *NoteHandler) VoteNote(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	choice, err := voting.ParseChoice(req.Choice)
	if err != nil {
		return serviceError(c, err)
	}

	result, err := h.voteService.CastNoteVote(c.Context(), actorID, noteID, choice)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

func (h *NoteHandler) AddComment(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.noteService.AddComment(actorID, noteID, req.Content)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *NoteHandler) ListComments(c *fiber.Ctx) error {
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	comments, err := h.noteService.ListComments(noteID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

func (h *NoteHandler) DeleteComment(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	if err := h.noteService.DeleteComment(actorID, noteID, commentID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}
