package data

// Follow records that one user follows another.
type Follow struct {
	FollowerID int64     `json:"follower"`
	FollowedID int64     `json:"followed"`
	Created    Timestamp `json:"created"`
}
