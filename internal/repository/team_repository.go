package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TeamRepository manages persistence for teams.
type TeamRepository interface {
	Save(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Save(ctx context.Context, team *domain.Team) error {
	members, err := json.Marshal(team.SpecialistIDs)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO teams (id, name, specialization, max_tickets, specialist_ids)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE SET
            name=EXCLUDED.name, specialization=EXCLUDED.specialization,
            max_tickets=EXCLUDED.max_tickets, specialist_ids=EXCLUDED.specialist_ids,
            updated_at=NOW()
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		team.ID,
		team.Name,
		team.Specialization,
		team.MaxTickets,
		members,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	const query = `
        SELECT id, name, specialization, max_tickets, specialist_ids, created_at, updated_at
        FROM teams WHERE id=$1`
	return scanTeam(r.pool.QueryRow(ctx, query, id))
}

func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	const query = `
        SELECT id, name, specialization, max_tickets, specialist_ids, created_at, updated_at
        FROM teams ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *team)
	}
	return result, rows.Err()
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var team domain.Team
	var members []byte
	if err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Specialization,
		&team.MaxTickets,
		&members,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(members, &team.SpecialistIDs); err != nil {
		return nil, err
	}
	return &team, nil
}
