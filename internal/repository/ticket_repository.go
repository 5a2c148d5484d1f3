package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	CreatedByID          *string
	AssignedSpecialistID *string
	AssignedTeamID       *string
	Statuses             []domain.TicketStatus
	Priorities           []domain.PriorityLevel
	Categories           []domain.TicketCategory
	SearchTerm           *string
	Limit                int
	Offset               int
}

// TicketRepository persists the ticket aggregate with load-entire /
// save-entire semantics. Owned collections travel with the root.
type TicketRepository interface {
	Save(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]*domain.Ticket, error)
	ListInStatus(ctx context.Context, status domain.TicketStatus) ([]*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, number, title, description, status, priority, category, sla,
               assigned_specialist_id, assigned_team_id, created_by_id,
               created_at, updated_at, resolved_at,
               resolution, satisfaction, comments, escalations, attachments, history`

func (r *ticketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	snap := ticket.Snapshot()

	sla, err := json.Marshal(snap.SLA)
	if err != nil {
		return err
	}
	resolution, err := marshalNullable(snap.Resolution)
	if err != nil {
		return err
	}
	satisfaction, err := marshalNullable(snap.Satisfaction)
	if err != nil {
		return err
	}
	comments, err := json.Marshal(snap.Comments)
	if err != nil {
		return err
	}
	escalations, err := json.Marshal(snap.Escalations)
	if err != nil {
		return err
	}
	attachments, err := json.Marshal(snap.Attachments)
	if err != nil {
		return err
	}
	history, err := json.Marshal(snap.History)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO tickets (id, number, title, description, status, priority, category, sla,
            assigned_specialist_id, assigned_team_id, created_by_id,
            created_at, updated_at, resolved_at,
            resolution, satisfaction, comments, escalations, attachments, history)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        ON CONFLICT (id) DO UPDATE SET
            status=EXCLUDED.status, priority=EXCLUDED.priority, sla=EXCLUDED.sla,
            assigned_specialist_id=EXCLUDED.assigned_specialist_id,
            assigned_team_id=EXCLUDED.assigned_team_id,
            updated_at=EXCLUDED.updated_at, resolved_at=EXCLUDED.resolved_at,
            resolution=EXCLUDED.resolution, satisfaction=EXCLUDED.satisfaction,
            comments=EXCLUDED.comments, escalations=EXCLUDED.escalations,
            attachments=EXCLUDED.attachments, history=EXCLUDED.history`
	_, err = r.pool.Exec(ctx, query,
		snap.ID,
		snap.Number,
		snap.Title,
		snap.Description,
		snap.Status,
		snap.Priority,
		snap.Category,
		sla,
		snap.AssignedSpecialistID,
		snap.AssignedTeamID,
		snap.CreatedByID,
		snap.CreatedAt,
		snap.UpdatedAt,
		snap.ResolvedAt,
		resolution,
		satisfaction,
		comments,
		escalations,
		attachments,
		history,
	)
	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE number=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	return scanTicket(row)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]*domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedByID != nil {
		args = append(args, *filter.CreatedByID)
		clauses = append(clauses, fmt.Sprintf("created_by_id=$%d", len(args)))
	}
	if filter.AssignedSpecialistID != nil {
		args = append(args, *filter.AssignedSpecialistID)
		clauses = append(clauses, fmt.Sprintf("assigned_specialist_id=$%d", len(args)))
	}
	if filter.AssignedTeamID != nil {
		args = append(args, *filter.AssignedTeamID)
		clauses = append(clauses, fmt.Sprintf("assigned_team_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, priority := range filter.Priorities {
			args = append(args, priority)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, category := range filter.Categories {
			args = append(args, category)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListInStatus(ctx context.Context, status domain.TicketStatus) ([]*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE status=$1 ORDER BY created_at ASC`, ticketColumns)
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]*domain.Ticket, error) {
	var result []*domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var snap domain.TicketSnapshot
	var sla, resolution, satisfaction, comments, escalations, attachments, history []byte

	if err := row.Scan(
		&snap.ID,
		&snap.Number,
		&snap.Title,
		&snap.Description,
		&snap.Status,
		&snap.Priority,
		&snap.Category,
		&sla,
		&snap.AssignedSpecialistID,
		&snap.AssignedTeamID,
		&snap.CreatedByID,
		&snap.CreatedAt,
		&snap.UpdatedAt,
		&snap.ResolvedAt,
		&resolution,
		&satisfaction,
		&comments,
		&escalations,
		&attachments,
		&history,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sla, &snap.SLA); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(resolution, &snap.Resolution); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(satisfaction, &snap.Satisfaction); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(comments, &snap.Comments); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(escalations, &snap.Escalations); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attachments, &snap.Attachments); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &snap.History); err != nil {
		return nil, err
	}

	return domain.RestoreTicket(snap), nil
}

func marshalNullable(v any) ([]byte, error) {
	switch value := v.(type) {
	case *domain.Resolution:
		if value == nil {
			return nil, nil
		}
	case *domain.Satisfaction:
		if value == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func unmarshalNullable[T any](raw []byte, target **T) error {
	if len(raw) == 0 {
		*target = nil
		return nil
	}
	return json.Unmarshal(raw, target)
}
