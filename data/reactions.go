package data

// Reaction is a user's like or dislike on a post or comment.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Opposite returns the reaction that is cleared when r is recorded.
func (r Reaction) Opposite() Reaction {
	if r == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}
