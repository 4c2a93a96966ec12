package dto

type CreateCourseRequest struct {
	Name string `json:"name"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// VoteRequest carries the caller's choice: upvote/downvote on posts,
// helpful/unhelpful on notes.
type VoteRequest struct {
	Choice string `json:"choice"`
}
