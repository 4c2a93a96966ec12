package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
	"github.com/studyhub/backend/internal/voting"
)

type CourseHandler struct {
	courseService *services.CourseService
	voteService   *services.VoteService
}

func NewCourseHandler(courseService *services.CourseService, voteService *services.VoteService) *CourseHandler {
	return &CourseHandler{courseService: courseService, voteService: voteService}
}

func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	courses, err := h.courseService.ListCourses(orgID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func (h *CourseHandler) AddCourse(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	course, err := h.courseService.AddCourse(orgID, actorID, req.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *CourseHandler) ListPosts(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid course ID")
	}

	posts, err := h.courseService.ListPosts(courseID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (h *CourseHandler) CreatePost(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid course ID")
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.courseService.CreatePost(orgID, actorID, courseID, req.Title, req.Content)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *CourseHandler) GetPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	post, err := h.courseService.GetPost(postID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(post)
}

func (h *CourseHandler) UpdatePost(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.courseService.UpdatePost(actorID, postID, req.Title, req.Content)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(post)
}

func (h *CourseHandler) DeletePost(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	if err := h.courseService.DeletePost(actorID, postID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Post deleted"})
}

// VotePost toggles the caller's vote on a post. Repeating a choice
// cancels it; the opposite choice switches it.
func (h *CourseHandler) VotePost(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	choice, err := voting.ParseChoice(req.Choice)
	if err != nil {
		return serviceError(c, err)
	}

	result, err := h.voteService.CastPostVote(c.Context(), actorID, postID, choice)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

func (h *CourseHandler) AddComment(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.courseService.AddComment(actorID, postID, req.Content)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CourseHandler) ListComments(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	comments, err := h.courseService.ListComments(postID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

func (h *CourseHandler) UpdateComment(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.courseService.UpdateComment(actorID, commentID, req.Content)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(comment)
}

func (h *CourseHandler) DeleteComment(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	if err := h.courseService.DeleteComment(actorID, commentID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}
