package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (League, bool, error)
	ListByUser(ctx context.Context, userID string) ([]League, error)
	// Create returns ErrInviteCodeTaken when the invite code collides.
	Create(ctx context.Context, l League) error

	GetMember(ctx context.Context, leagueID, userID string) (Member, bool, error)
	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
	// UpsertMember keeps the original JoinedAt and updates TeamID.
	UpsertMember(ctx context.Context, m Member) error
}
