package core

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is one message in a conversation, tagged by speaker.
// Turns are immutable; the pipeline consumes them within a single invocation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Tier is a notification severity level.
type Tier string

const (
	TierTeamLeader Tier = "team_leader"
	TierManager    Tier = "manager"
)

// Notification is the payload handed to a notification channel.
// Delivery is fire-and-forget; the core never verifies acknowledgement.
type Notification struct {
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
}
