package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no project matches the given id.
var ErrNotFound = errors.New("project not found")

// Store provides database operations for project listings.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new project store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const projectColumns = `id, title, description, long_description, owner, category,
	skills, collaborators, open_roles, location, start_date, timeline, updates,
	created_at, last_activity_at`

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	var ownerJSON, skillsJSON, collabJSON, rolesJSON, updatesJSON []byte
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.LongDescription, &ownerJSON,
		&p.Category, &skillsJSON, &collabJSON, &rolesJSON, &p.Location,
		&p.StartDate, &p.Timeline, &updatesJSON, &p.CreatedAt, &p.LastActivityAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ownerJSON, &p.Owner); err != nil {
		return nil, fmt.Errorf("unmarshaling owner: %w", err)
	}
	for _, col := range []struct {
		raw  []byte
		dest any
	}{
		{skillsJSON, &p.Skills},
		{collabJSON, &p.Collaborators},
		{rolesJSON, &p.OpenRoles},
		{updatesJSON, &p.Updates},
	} {
		if len(col.raw) > 0 {
			if err := json.Unmarshal(col.raw, col.dest); err != nil {
				return nil, fmt.Errorf("unmarshaling project column: %w", err)
			}
		}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Collaborators == nil {
		p.Collaborators = []Collaborator{}
	}
	if p.OpenRoles == nil {
		p.OpenRoles = []OpenRole{}
	}
	if p.Updates == nil {
		p.Updates = []Update{}
	}
	return p, nil
}

// Create inserts a new listing with its owner snapshot and returns the full row.
func (s *Store) Create(ctx context.Context, in CreateInput, owner OwnerSnapshot) (*Project, error) {
	ownerJSON, err := json.Marshal(owner)
	if err != nil {
		return nil, fmt.Errorf("marshaling owner snapshot: %w", err)
	}
	skillsJSON, err := json.Marshal(emptyIfNilStrings(in.Skills))
	if err != nil {
		return nil, fmt.Errorf("marshaling skills: %w", err)
	}
	rolesJSON, err := json.Marshal(emptyIfNilRoles(in.OpenRoles))
	if err != nil {
		return nil, fmt.Errorf("marshaling open roles: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO projects
		(title, description, long_description, owner, category, skills,
		 collaborators, open_roles, location, start_date, timeline, updates)
		VALUES ($1, $2, $3, $4, $5, $6, '[]', $7, $8, $9, $10, '[]')
		RETURNING %s`, projectColumns)

	p, err := scanProject(s.pool.QueryRow(ctx, query,
		in.Title, in.Description, in.LongDescription, ownerJSON, in.Category,
		skillsJSON, rolesJSON, in.Location, in.StartDate, in.Timeline))
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return p, nil
}

// GetByID retrieves a listing by its id.
func (s *Store) GetByID(ctx context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns)
	p, err := scanProject(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// List returns the full catalog in insertion order. The browse surface has
// no pagination contract, so the whole set is fetched and filtered in memory.
func (s *Store) List(ctx context.Context) ([]*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects ORDER BY created_at ASC, id ASC`,
		projectColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// appendJSONB appends one element to a JSONB array column and bumps
// last_activity_at in a single atomic statement.
func (s *Store) appendJSONB(ctx context.Context, id, column string, elem any) (*Project, error) {
	elemJSON, err := json.Marshal(elem)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s element: %w", column, err)
	}

	query := fmt.Sprintf(`UPDATE projects
		SET %s = %s || $2::jsonb, last_activity_at = now()
		WHERE id = $1
		RETURNING %s`, column, column, projectColumns)

	p, err := scanProject(s.pool.QueryRow(ctx, query, id, elemJSON))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appending to %s: %w", column, err)
	}
	return p, nil
}

// AppendUpdate appends a progress update to the listing.
func (s *Store) AppendUpdate(ctx context.Context, id string, u Update) (*Project, error) {
	return s.appendJSONB(ctx, id, "updates", []Update{u})
}

// AppendRole appends an open role to the listing.
func (s *Store) AppendRole(ctx context.Context, id string, r OpenRole) (*Project, error) {
	return s.appendJSONB(ctx, id, "open_roles", []OpenRole{r})
}

// AppendCollaborator appends a collaborator snapshot to the listing.
func (s *Store) AppendCollaborator(ctx context.Context, id string, c Collaborator) (*Project, error) {
	return s.appendJSONB(ctx, id, "collaborators", []Collaborator{c})
}

// ToggleBookmark flips the bookmark state of (userID, projectID) and returns
// the resulting state.
func (s *Store) ToggleBookmark(ctx context.Context, userID, projectID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND project_id = $2`,
		userID, projectID)
	if err != nil {
		return false, fmt.Errorf("removing bookmark: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO bookmarks (user_id, project_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID, projectID)
	if err != nil {
		return false, fmt.Errorf("adding bookmark: %w", err)
	}
	return true, nil
}

func emptyIfNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilRoles(r []OpenRole) []OpenRole {
	if r == nil {
		return []OpenRole{}
	}
	return r
}
