package voting

// Choice is the canonical direction of a vote. The HTTP layer maps the
// product vocabularies (upvote/downvote on posts, helpful/unhelpful on
// notes) onto it before reaching the engine.
type Choice string

const (
	Positive Choice = "positive"
	Negative Choice = "negative"
)

// Outcome describes the effect a cast had relative to the actor's
// prior vote on the entity.
type Outcome string

const (
	OutcomeRecorded Outcome = "recorded"
	OutcomeCanceled Outcome = "canceled"
	OutcomeSwitched Outcome = "switched"
)

// ParseChoice maps a wire vote type onto the canonical choice.
func ParseChoice(s string) (Choice, error) {
	switch s {
	case "upvote", "helpful", string(Positive):
		return Positive, nil
	case "downvote", "unhelpful", string(Negative):
		return Negative, nil
	default:
		return "", ErrInvalidChoice
	}
}
