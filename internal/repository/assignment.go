package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// target statuses come from the domain state machine, SQL only guards the source status
var (
	statusAccepted  = mustTransition(domain.AssignmentPending, domain.EventAccept)
	statusRejected  = mustTransition(domain.AssignmentPending, domain.EventReject)
	statusExpired   = mustTransition(domain.AssignmentPending, domain.EventExpire)
	statusCancelled = mustTransition(domain.AssignmentPending, domain.EventCancel)
	statusCompleted = mustTransition(domain.AssignmentAccepted, domain.EventComplete)
)

func mustTransition(from domain.AssignmentStatus, ev domain.AssignmentEvent) string {
	to, err := domain.Transition(from, ev)
	if err != nil {
		panic(err)
	}
	return string(to)
}

const assignmentColumns = `
    id, order_id, courier_id, round, escalation, status,
    assigned_at, offer_expires_at, accepted_at, rejected_at, picked_up_at, delivered_at,
    COALESCE(rejection_reason, '')`

// AssignmentRepo is the assignment ledger, the source of truth for who holds an order.
type AssignmentRepo struct {
	db *pgxpool.Pool
}

// NewAssignmentRepo creates a new AssignmentRepo.
func NewAssignmentRepo(db *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

func scanAssignment(row pgx.Row) (domain.Assignment, error) {
	var (
		a      domain.Assignment
		status string
	)
	err := row.Scan(
		&a.ID, &a.OrderID, &a.CourierID, &a.Round, &a.Escalation, &status,
		&a.AssignedAt, &a.OfferExpiresAt, &a.AcceptedAt, &a.RejectedAt, &a.PickedUpAt, &a.DeliveredAt,
		&a.RejectionReason,
	)
	a.Status = domain.AssignmentStatus(status)
	return a, err
}

func collectAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreatePending inserts a PENDING row and fills its ID.
func (r *AssignmentRepo) CreatePending(ctx context.Context, a *domain.Assignment) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO assignments (order_id, courier_id, round, escalation, status, assigned_at, offer_expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, a.OrderID, a.CourierID, a.Round, a.Escalation, string(domain.AssignmentPending), a.AssignedAt, a.OfferExpiresAt).
		Scan(&a.ID)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("assignment %s/%d round %d: %w", a.OrderID, a.CourierID, a.Round, apperr.ErrConflict)
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	a.Status = domain.AssignmentPending
	return nil
}

// OrderState summarizes the rows of one order. Pending counts only offers still live at now.
func (r *AssignmentRepo) OrderState(ctx context.Context, orderID string, now time.Time) (domain.OrderAssignmentState, error) {
	var (
		st        domain.OrderAssignmentState
		lastRound int
	)
	err := r.db.QueryRow(ctx, `
        SELECT
            COALESCE(MAX(round), -1),
            COALESCE((SELECT escalation FROM assignments
                      WHERE order_id = $1
                      ORDER BY round DESC, id DESC
                      LIMIT 1), 0),
            COUNT(*) FILTER (WHERE status = $3 AND offer_expires_at > $2),
            COUNT(*) FILTER (WHERE status IN ($4, $5)) > 0
        FROM assignments
        WHERE order_id = $1
    `, orderID, now, string(domain.AssignmentPending), statusAccepted, statusCompleted).
		Scan(&lastRound, &st.LastEscalation, &st.Pending, &st.Accepted)
	if err != nil {
		return st, fmt.Errorf("order state %q: %w", orderID, err)
	}
	st.LastRound = lastRound
	st.HasRounds = lastRound >= 0
	return st, nil
}

// RejectedCouriers returns couriers that already declined or let the order expire.
func (r *AssignmentRepo) RejectedCouriers(ctx context.Context, orderID string) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
        SELECT DISTINCT courier_id
        FROM assignments
        WHERE order_id = $1 AND status = $2
    `, orderID, statusRejected)
	if err != nil {
		return nil, fmt.Errorf("rejected couriers %q: %w", orderID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("rejected couriers %q: %w", orderID, err)
	}
	return ids, nil
}

// ActiveCounts returns the number of live PENDING and ACCEPTED rows per courier.
// Couriers without active rows are absent from the map.
func (r *AssignmentRepo) ActiveCounts(ctx context.Context, courierIDs []int64, now time.Time) (map[int64]int, error) {
	out := make(map[int64]int, len(courierIDs))
	if len(courierIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `
        SELECT courier_id, COUNT(*)
        FROM assignments
        WHERE courier_id = ANY($1)
          AND (status = $2 OR (status = $3 AND offer_expires_at > $4))
        GROUP BY courier_id
    `, courierIDs, statusAccepted, string(domain.AssignmentPending), now)
	if err != nil {
		return nil, fmt.Errorf("active counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  int64
			cnt int
		)
		if err := rows.Scan(&id, &cnt); err != nil {
			return nil, fmt.Errorf("scan active count: %w", err)
		}
		out[id] = cnt
	}
	return out, rows.Err()
}

// AcceptIfNoWinner makes courierID the winner of orderID iff its offer is PENDING, not expired
// and no other row of the order is ACCEPTED. Sibling PENDING rows are cancelled in the same
// transaction; their courier IDs are returned. won == false means the courier is too late.
func (r *AssignmentRepo) AcceptIfNoWinner(ctx context.Context, orderID string, courierID int64, now time.Time) (won bool, cancelled []int64, err error) {
	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
            UPDATE assignments
            SET status = $3, accepted_at = $4
            WHERE order_id = $1
              AND courier_id = $2
              AND status = $5
              AND offer_expires_at > $4
              AND NOT EXISTS (
                  SELECT 1 FROM assignments w
                  WHERE w.order_id = $1 AND w.status = $3
              )
        `, orderID, courierID, statusAccepted, now, string(domain.AssignmentPending))
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return nil
		}
		won = true

		rows, err := tx.Query(ctx, `
            UPDATE assignments
            SET status = $3, rejected_at = $4, rejection_reason = $5
            WHERE order_id = $1 AND courier_id <> $2 AND status = $6
            RETURNING courier_id
        `, orderID, courierID, statusCancelled, now, domain.ReasonSiblingWon, string(domain.AssignmentPending))
		if err != nil {
			return fmt.Errorf("cancel siblings: %w", err)
		}
		cancelled, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		return err
	})
	if err != nil {
		// проиграли гонку на уникальном индексе
		if IsDuplicate(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("accept %s/%d: %w", orderID, courierID, err)
	}
	return won, cancelled, nil
}

// Reject moves the courier's PENDING row to REJECTED. Returns ErrNotFound when the courier
// never had a row for the order and ErrConflict when the row is no longer PENDING.
func (r *AssignmentRepo) Reject(ctx context.Context, orderID string, courierID int64, reason string, now time.Time) (domain.Assignment, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE assignments
        SET status = $3, rejected_at = $4, rejection_reason = $5
        WHERE id = (
            SELECT id FROM assignments
            WHERE order_id = $1 AND courier_id = $2 AND status = $6
            ORDER BY round DESC
            LIMIT 1
        )
        RETURNING`+assignmentColumns,
		orderID, courierID, statusRejected, now, reason, string(domain.AssignmentPending))

	a, err := scanAssignment(row)
	if err == nil {
		return a, nil
	}
	if !IsNotFound(err) {
		return a, fmt.Errorf("reject %s/%d: %w", orderID, courierID, err)
	}

	exists, err := r.exists(ctx, orderID, courierID)
	if err != nil {
		return a, err
	}
	if exists {
		return a, fmt.Errorf("assignment %s/%d is not pending: %w", orderID, courierID, apperr.ErrConflict)
	}
	return a, fmt.Errorf("assignment %s/%d: %w", orderID, courierID, apperr.ErrNotFound)
}

func (r *AssignmentRepo) exists(ctx context.Context, orderID string, courierID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM assignments WHERE order_id = $1 AND courier_id = $2)
    `, orderID, courierID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("assignment exists %s/%d: %w", orderID, courierID, err)
	}
	return ok, nil
}

// ExpirePending moves every PENDING row whose offer ended at or before now to REJECTED
// with reason "expired" and returns the updated rows.
func (r *AssignmentRepo) ExpirePending(ctx context.Context, now time.Time) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, `
        UPDATE assignments
        SET status = $1, rejected_at = $2, rejection_reason = $3
        WHERE status = $4 AND offer_expires_at <= $2
        RETURNING`+assignmentColumns,
		statusExpired, now, domain.ReasonExpired, string(domain.AssignmentPending))
	if err != nil {
		return nil, fmt.Errorf("expire pending: %w", err)
	}
	out, err := collectAssignments(rows)
	if err != nil {
		return nil, fmt.Errorf("expire pending: %w", err)
	}
	return out, nil
}

// ExpireOrder does the same as ExpirePending for a single order.
func (r *AssignmentRepo) ExpireOrder(ctx context.Context, orderID string, now time.Time) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, `
        UPDATE assignments
        SET status = $2, rejected_at = $3, rejection_reason = $4
        WHERE order_id = $1 AND status = $5 AND offer_expires_at <= $3
        RETURNING`+assignmentColumns,
		orderID, statusExpired, now, domain.ReasonExpired, string(domain.AssignmentPending))
	if err != nil {
		return nil, fmt.Errorf("expire order %q: %w", orderID, err)
	}
	out, err := collectAssignments(rows)
	if err != nil {
		return nil, fmt.Errorf("expire order %q: %w", orderID, err)
	}
	return out, nil
}

// CancelOrder cancels every PENDING or ACCEPTED row of the order and returns the affected couriers.
func (r *AssignmentRepo) CancelOrder(ctx context.Context, orderID, reason string, now time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
        UPDATE assignments
        SET status = $2, rejected_at = $3, rejection_reason = $4
        WHERE order_id = $1 AND status IN ($5, $6)
        RETURNING courier_id
    `, orderID, statusCancelled, now, reason, string(domain.AssignmentPending), string(domain.AssignmentAccepted))
	if err != nil {
		return nil, fmt.Errorf("cancel order %q: %w", orderID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("cancel order %q: %w", orderID, err)
	}
	return ids, nil
}

// MarkPickedUp stamps picked_up_at on the courier's ACCEPTED row. Repeating the call for
// an already stamped row is a no-op, so a caller may retry after a partial failure.
func (r *AssignmentRepo) MarkPickedUp(ctx context.Context, orderID string, courierID int64, now time.Time) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE assignments
        SET picked_up_at = $3
        WHERE order_id = $1 AND courier_id = $2 AND status = $4 AND picked_up_at IS NULL
    `, orderID, courierID, now, string(domain.AssignmentAccepted))
	if err != nil {
		return fmt.Errorf("mark picked up %s/%d: %w", orderID, courierID, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	ok, err := r.hasRow(ctx, orderID, courierID, string(domain.AssignmentAccepted))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("accepted assignment %s/%d: %w", orderID, courierID, apperr.ErrNotFound)
	}
	return nil
}

// Complete moves the courier's ACCEPTED row to COMPLETED. Completing an already
// completed row of the same courier is a no-op.
func (r *AssignmentRepo) Complete(ctx context.Context, orderID string, courierID int64, now time.Time) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE assignments
        SET status = $3, delivered_at = $4, picked_up_at = COALESCE(picked_up_at, $4)
        WHERE order_id = $1 AND courier_id = $2 AND status = $5
    `, orderID, courierID, statusCompleted, now, string(domain.AssignmentAccepted))
	if err != nil {
		return fmt.Errorf("complete %s/%d: %w", orderID, courierID, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	ok, err := r.hasRow(ctx, orderID, courierID, statusCompleted)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("accepted assignment %s/%d: %w", orderID, courierID, apperr.ErrNotFound)
	}
	return nil
}

func (r *AssignmentRepo) hasRow(ctx context.Context, orderID string, courierID int64, status string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM assignments
            WHERE order_id = $1 AND courier_id = $2 AND status = $3
        )
    `, orderID, courierID, status).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("assignment %s/%d %s: %w", orderID, courierID, status, err)
	}
	return ok, nil
}

// ListByCourier returns the courier's assignments with the given statuses, newest first.
func (r *AssignmentRepo) ListByCourier(ctx context.Context, courierID int64, statuses []domain.AssignmentStatus, limit, offset int) ([]domain.Assignment, error) {
	st := make([]string, 0, len(statuses))
	for _, s := range statuses {
		st = append(st, string(s))
	}

	rows, err := r.db.Query(ctx, `
        SELECT`+assignmentColumns+`
        FROM assignments
        WHERE courier_id = $1 AND status = ANY($2)
        ORDER BY assigned_at DESC, id DESC
        LIMIT $3 OFFSET $4
    `, courierID, st, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assignments of courier %d: %w", courierID, err)
	}
	out, err := collectAssignments(rows)
	if err != nil {
		return nil, fmt.Errorf("list assignments of courier %d: %w", courierID, err)
	}
	return out, nil
}

// Get returns one assignment by ID.
func (r *AssignmentRepo) Get(ctx context.Context, id int64) (domain.Assignment, error) {
	a, err := scanAssignment(r.db.QueryRow(ctx, `
        SELECT`+assignmentColumns+`
        FROM assignments
        WHERE id = $1
    `, id))
	if err != nil {
		if IsNotFound(err) {
			return a, fmt.Errorf("assignment %d: %w", id, apperr.ErrNotFound)
		}
		return a, fmt.Errorf("get assignment %d: %w", id, err)
	}
	return a, nil
}

// SettleRound stamps round_settled_at on every row of the round. Settling twice keeps
// the first stamp.
func (r *AssignmentRepo) SettleRound(ctx context.Context, orderID string, round int, now time.Time) error {
	_, err := r.db.Exec(ctx, `
        UPDATE assignments
        SET round_settled_at = $3
        WHERE order_id = $1 AND round = $2 AND round_settled_at IS NULL
    `, orderID, round, now)
	if err != nil {
		return fmt.Errorf("settle round %s/%d: %w", orderID, round, err)
	}
	return nil
}

// UnsettledRounds finds orders whose latest round has only REJECTED rows, no winner
// anywhere and no settlement, and whose last refusal happened at or before before.
// One row per order is returned, the latest refusal of the round.
func (r *AssignmentRepo) UnsettledRounds(ctx context.Context, before time.Time, limit int) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT DISTINCT ON (order_id)`+assignmentColumns+`
        FROM assignments a
        WHERE a.round_settled_at IS NULL
          AND a.status = $1
          AND a.round = (SELECT MAX(m.round) FROM assignments m WHERE m.order_id = a.order_id)
          AND NOT EXISTS (
              SELECT 1 FROM assignments o
              WHERE o.order_id = a.order_id AND o.round = a.round
                AND (o.status <> $1 OR o.rejected_at > $2)
          )
          AND NOT EXISTS (
              SELECT 1 FROM assignments w
              WHERE w.order_id = a.order_id AND w.status IN ($3, $4)
          )
        ORDER BY order_id, rejected_at DESC, id DESC
        LIMIT $5
    `, statusRejected, before, statusAccepted, statusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("unsettled rounds: %w", err)
	}
	out, err := collectAssignments(rows)
	if err != nil {
		return nil, fmt.Errorf("unsettled rounds: %w", err)
	}
	return out, nil
}
