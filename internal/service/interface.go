package service

import "context"

// RoleGranter is the narrow slice of the chat platform the pipeline
// needs: membership resolution and the privileged role grant. The core
// never sees the platform client's shape.
type RoleGranter interface {
	// ResolveMembership reports whether the subject is a member of the
	// configured guild. (false, nil) means the guild is reachable but
	// the subject is not in it.
	ResolveMembership(ctx context.Context, subjectID string) (bool, error)
	// GrantRole grants the configured role to the subject's membership.
	GrantRole(ctx context.Context, subjectID string) error
}
