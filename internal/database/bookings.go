package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingSelect = `SELECT b.id, b.start_date, b.end_date, b.status, b.item_id, b.booker_id,
                 i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
                 u.id, u.name, u.email
              FROM bookings b
              LEFT JOIN items i ON i.id = b.item_id
              LEFT JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, status, item_id, booker_id)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		booking.Start.UTC(),
		booking.End.UTC(),
		string(booking.Status),
		booking.ItemID,
		booking.BookerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := bookingSelect + ` WHERE b.id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus moves a booking from one status to another. The update only
// applies while the booking is still in the from status, so a decision cannot be
// overwritten by a concurrent or repeated call.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking %d is no longer %s: %w", id, from, domain.ErrBadRequest)
	}
	return nil
}

func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, filter models.BookingFilter) ([]*models.Booking, error) {
	cond, args, err := stateCondition(filter)
	if err != nil {
		return nil, err
	}
	query := bookingSelect + ` WHERE b.booker_id = ?` + cond + ` ORDER BY b.start_date ASC, b.id ASC`
	return db.queryBookings(ctx, query, append([]interface{}{bookerID}, args...)...)
}

func (db *DB) GetBookingsByItems(ctx context.Context, itemIDs []int64, filter models.BookingFilter) ([]*models.Booking, error) {
	if len(itemIDs) == 0 {
		return []*models.Booking{}, nil
	}
	cond, args, err := stateCondition(filter)
	if err != nil {
		return nil, err
	}

	queryArgs := make([]interface{}, 0, len(itemIDs)+len(args))
	for _, id := range itemIDs {
		queryArgs = append(queryArgs, id)
	}
	queryArgs = append(queryArgs, args...)

	query := bookingSelect + ` WHERE b.item_id IN (` + placeholders(len(itemIDs)) + `)` + cond +
		` ORDER BY b.start_date ASC, b.id ASC`
	return db.queryBookings(ctx, query, queryArgs...)
}

func (db *DB) GetBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	query := bookingSelect + ` WHERE b.item_id = ? ORDER BY b.start_date ASC, b.id ASC`
	return db.queryBookings(ctx, query, itemID)
}

// stateCondition translates a booking state into an extra WHERE clause.
// CURRENT and PAST keep the comparisons the service has always used:
// CURRENT is start < now AND end < now, PAST is end > now.
func stateCondition(filter models.BookingFilter) (string, []interface{}, error) {
	now := filter.Now.UTC()
	switch filter.State {
	case "", models.StateAll:
		return "", nil, nil
	case models.StateCurrent:
		return ` AND b.start_date < ? AND b.end_date < ?`, []interface{}{now, now}, nil
	case models.StatePast:
		return ` AND b.end_date > ?`, []interface{}{now}, nil
	case models.StateFuture:
		return ` AND b.start_date > ?`, []interface{}{now}, nil
	case models.StateWaiting:
		return ` AND b.status = ?`, []interface{}{string(models.StatusWaiting)}, nil
	case models.StateRejected:
		return ` AND b.status = ?`, []interface{}{string(models.StatusRejected)}, nil
	default:
		return "", nil, fmt.Errorf("unknown state: %s: %w", filter.State, domain.ErrBadRequest)
	}
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var (
		b         models.Booking
		status    string
		itemID    sql.NullInt64
		itemName  sql.NullString
		itemDesc  sql.NullString
		available sql.NullBool
		ownerID   sql.NullInt64
		requestID sql.NullInt64
		userID    sql.NullInt64
		userName  sql.NullString
		userEmail sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &status, &b.ItemID, &b.BookerID,
		&itemID, &itemName, &itemDesc, &available, &ownerID, &requestID,
		&userID, &userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}
	b.Status = models.BookingStatus(status)

	if itemID.Valid {
		b.Item = &models.Item{
			ID:          itemID.Int64,
			Name:        itemName.String,
			Description: itemDesc.String,
			Available:   available.Bool,
			OwnerID:     ownerID.Int64,
		}
		if requestID.Valid {
			id := requestID.Int64
			b.Item.RequestID = &id
		}
	}
	if userID.Valid {
		b.Booker = &models.User{ID: userID.Int64, Name: userName.String, Email: userEmail.String}
	}
	return &b, nil
}
