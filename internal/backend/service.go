// Package backend defines the remote profile/history/tool service the client
// consumes, plus its two implementations: an HTTP client for a hosted
// backend and a SQLite-backed local service for offline use.
//
// Note the deliberate hole in the surface: there is no delete or clear
// operation for conversation history. Clearing is a local-only affordance
// and a reload re-hydrates the full persisted history.
package backend

import (
	"context"
	"fmt"

	"lia/internal/models"
)

// Session is the opaque identity capability handed down from startup.
// A non-empty principal means the user is authenticated; the client never
// inspects it beyond that.
type Session struct {
	Principal string
}

func (s Session) Authenticated() bool {
	return s.Principal != ""
}

// Service is the authenticated RPC surface. Failures are either transport
// errors or application-level rejects (*RejectError); the client defines no
// finer taxonomy.
type Service interface {
	AddTool(ctx context.Context, tool models.Tool) error
	GetTools(ctx context.Context) ([]models.Tool, error)
	GetConciergeTools(ctx context.Context) ([]models.Tool, error)
	GetConversationHistory(ctx context.Context) ([]models.Message, error)
	SaveMessage(ctx context.Context, msg models.Message) error
	GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error
	GetCallerUserRole(ctx context.Context) (models.UserRole, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	AssignCallerUserRole(ctx context.Context, principal string, role models.UserRole) error
	GetUserProfile(ctx context.Context, principal string) (*models.UserProfile, error)
}

// RejectError is an application-level reject: the backend answered and said
// no, as opposed to the transport failing.
type RejectError struct {
	Op     string
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Reason)
}
