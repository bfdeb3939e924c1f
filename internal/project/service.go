package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmorrell/makerboard/internal/user"
)

// Validation and authorization errors returned by the Service layer.
var (
	ErrTitleRequired           = errors.New("title is required")
	ErrDescriptionRequired     = errors.New("description is required")
	ErrLongDescriptionRequired = errors.New("longDescription is required")
	ErrNotOwner                = errors.New("only the project owner may modify the listing")
)

// IsValidationError reports whether err is one of the listing validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrDescriptionRequired) ||
		errors.Is(err, ErrLongDescriptionRequired)
}

// Storage is the persistence surface the service depends on.
type Storage interface {
	Create(ctx context.Context, in CreateInput, owner OwnerSnapshot) (*Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	AppendUpdate(ctx context.Context, id string, u Update) (*Project, error)
	AppendRole(ctx context.Context, id string, r OpenRole) (*Project, error)
	AppendCollaborator(ctx context.Context, id string, c Collaborator) (*Project, error)
	ToggleBookmark(ctx context.Context, userID, projectID string) (bool, error)
}

// Service provides validated listing operations over the Store.
type Service struct {
	store Storage
	now   func() time.Time // injectable clock for testing
}

// NewService creates a new listing service.
func NewService(store Storage) *Service {
	return &Service{store: store, now: time.Now}
}

// Snapshot builds the denormalized owner value object copied into a listing
// at write time. It is a frozen copy, never a live reference.
func Snapshot(u *user.User) OwnerSnapshot {
	return OwnerSnapshot{
		ID:         u.ID,
		Name:       u.FullName,
		Title:      u.Title,
		Avatar:     u.Avatar,
		Location:   u.Location,
		JoinedDate: u.CreatedAt.Format("January 2006"),
	}
}

// Create validates the input and persists a new listing owned by owner.
// Open roles are assigned server-side ids when the client omits them.
func (s *Service) Create(ctx context.Context, owner *user.User, in CreateInput) (*Project, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	for i := range in.OpenRoles {
		if in.OpenRoles[i].ID == "" {
			in.OpenRoles[i].ID = uuid.NewString()
		}
	}
	return s.store.Create(ctx, in, Snapshot(owner))
}

// GetByID retrieves a listing by id.
func (s *Service) GetByID(ctx context.Context, id string) (*Project, error) {
	return s.store.GetByID(ctx, id)
}

// Browse fetches the full catalog and applies the listing query.
func (s *Service) Browse(ctx context.Context, q ListingQuery) ([]*Project, error) {
	catalog, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProjects(catalog, q), nil
}

// AppendUpdate adds a progress note authored by the owner.
func (s *Service) AppendUpdate(ctx context.Context, actor *user.User, projectID, content string) (*Project, error) {
	if err := s.requireOwner(ctx, actor.ID, projectID); err != nil {
		return nil, err
	}
	u := Update{
		ID:      uuid.NewString(),
		Author:  actor.FullName,
		Date:    s.now().Format("2006-01-02"),
		Content: content,
	}
	return s.store.AppendUpdate(ctx, projectID, u)
}

// AppendRole adds an open role to the listing.
func (s *Service) AppendRole(ctx context.Context, actor *user.User, projectID string, role OpenRole) (*Project, error) {
	if err := s.requireOwner(ctx, actor.ID, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(role.Title) == "" {
		return nil, ErrTitleRequired
	}
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	if role.Skills == nil {
		role.Skills = []string{}
	}
	return s.store.AppendRole(ctx, projectID, role)
}

// AppendCollaborator copies the given user's profile into a collaborator
// snapshot and appends it.
func (s *Service) AppendCollaborator(ctx context.Context, actor *user.User, projectID string, member *user.User, role string) (*Project, error) {
	if err := s.requireOwner(ctx, actor.ID, projectID); err != nil {
		return nil, err
	}
	c := Collaborator{
		ID:     member.ID,
		Name:   member.FullName,
		Title:  member.Title,
		Avatar: member.Avatar,
		Role:   role,
	}
	return s.store.AppendCollaborator(ctx, projectID, c)
}

// ToggleBookmark flips the caller's bookmark on the listing.
func (s *Service) ToggleBookmark(ctx context.Context, userID, projectID string) (bool, error) {
	if _, err := s.store.GetByID(ctx, projectID); err != nil {
		return false, err
	}
	return s.store.ToggleBookmark(ctx, userID, projectID)
}

func (s *Service) requireOwner(ctx context.Context, actorID, projectID string) error {
	p, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.Owner.ID != actorID {
		return ErrNotOwner
	}
	return nil
}

func validateCreate(in CreateInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrDescriptionRequired
	}
	if strings.TrimSpace(in.LongDescription) == "" {
		return ErrLongDescriptionRequired
	}
	return nil
}
