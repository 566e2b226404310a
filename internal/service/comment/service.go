// Package comment implements matter comments.
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

type commentRepo interface {
	Create(ctx context.Context, c domain.Comment) error
	GetByID(ctx context.Context, orgID, commentID uuid.UUID) (domain.Comment, error)
	ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Comment, error)
	Delete(ctx context.Context, orgID, commentID uuid.UUID) error
}

type matterRepo interface {
	GetByID(ctx context.Context, orgID, matterID uuid.UUID) (domain.Matter, error)
}

type entitlementEvaluator interface {
	Evaluate(ctx context.Context, callerID, orgID uuid.UUID, req entitlement.Requirement) (entitlement.Decision, error)
}

type eventEmitter interface {
	EmitBestEffort(ctx context.Context, p event.Params)
}

// Service implements comment business logic.
type Service struct {
	log          *slog.Logger
	comments     commentRepo
	matters      matterRepo
	entitlements entitlementEvaluator
	emitter      eventEmitter
	now          func() time.Time
}

// NewService creates a new comment service.
func NewService(
	logger *slog.Logger,
	comments commentRepo,
	matters matterRepo,
	entitlements entitlementEvaluator,
	emitter eventEmitter,
) *Service {
	return &Service{
		log:          logger.With("service", "comment"),
		comments:     comments,
		matters:      matters,
		entitlements: entitlements,
		emitter:      emitter,
		now:          time.Now,
	}
}

// AddInput holds the parameters for adding a comment.
type AddInput struct {
	MatterID   uuid.UUID
	Body       string
	Visibility domain.Audience // zero value -> internal
}

// Validate checks all fields and collects all errors.
func (i *AddInput) Validate() error {
	var errs []domain.FieldError

	if i.MatterID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "matterId", Message: "required"})
	}
	if i.Body == "" {
		errs = append(errs, domain.FieldError{Field: "body", Message: "required"})
	} else if len(i.Body) > 10000 {
		errs = append(errs, domain.FieldError{Field: "body", Message: "too long (max 10000)"})
	}
	if i.Visibility != "" && !i.Visibility.IsValid() {
		errs = append(errs, domain.FieldError{Field: "visibility", Message: "unknown audience"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Add attaches a comment to a matter and emits comment.added with the
// comment's visibility so dispatch can route it to the right audience.
func (s *Service) Add(ctx context.Context, orgID uuid.UUID, input AddInput) (domain.Comment, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermCommentWrite})
	if err != nil {
		return domain.Comment{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Comment{}, err
	}

	if _, err := s.matters.GetByID(ctx, orgID, input.MatterID); err != nil {
		return domain.Comment{}, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = domain.AudienceInternal
	}

	c := domain.Comment{
		ID:             uuid.New(),
		OrganizationID: orgID,
		MatterID:       input.MatterID,
		AuthorID:       callerID,
		Body:           input.Body,
		Visibility:     visibility,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return domain.Comment{}, err
	}

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		MatterID:       &input.MatterID,
		EventType:      "comment.added",
		EntityType:     domain.EntityTypeComment,
		EntityID:       c.ID,
		Actor:          domain.UserActor(callerID),
		Visibility:     &domain.Visibility{Audience: visibility},
		Payload:        map[string]any{"matterId": input.MatterID.String()},
	})

	return c, nil
}

// List returns a matter's comments in chronological order.
func (s *Service) List(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Comment, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{}); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	return s.comments.ListByMatter(ctx, orgID, matterID, limit, offset)
}

// Delete removes a comment. Authors delete their own; anyone else needs
// matter management authority.
func (s *Service) Delete(ctx context.Context, orgID, commentID uuid.UUID) error {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermCommentWrite})
	if err != nil {
		return err
	}

	c, err := s.comments.GetByID(ctx, orgID, commentID)
	if err != nil {
		return err
	}

	if c.AuthorID != callerID {
		if _, err := s.authorize(ctx, orgID, entitlement.Requirement{Permission: entitlement.PermMatterManage}); err != nil {
			return err
		}
	}

	return s.comments.Delete(ctx, orgID, commentID)
}

func (s *Service) authorize(ctx context.Context, orgID uuid.UUID, req entitlement.Requirement) (uuid.UUID, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}

	decision, err := s.entitlements.Evaluate(ctx, callerID, orgID, req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("evaluate entitlement: %w", err)
	}
	if !decision.Allowed {
		return uuid.Nil, entitlement.DecisionError(decision)
	}

	return callerID, nil
}
