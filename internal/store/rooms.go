package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// CreateRoom inserts a room and enrolls the owner as its first member
func (p *Postgres) CreateRoom(ctx context.Context, name, description, roomType string, private bool, ownerID string) (Room, error) {
	if roomType == "" {
		roomType = "document"
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return Room{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO rooms (name, description, type, private, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, type, private, owner_id, is_active, created_at, updated_at
	`, name, description, roomType, private, ownerID)
	r, err := scanRoom(row)
	if err != nil {
		return Room{}, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO room_members (room_id, user_id) VALUES ($1, $2)
	`, r.ID, ownerID); err != nil {
		return Room{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Room{}, err
	}
	return r, nil
}

// ListRooms returns all active rooms
func (p *Postgres) ListRooms(ctx context.Context) ([]Room, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, description, type, private, owner_id, is_active, created_at, updated_at
		FROM rooms
		WHERE is_active
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Type, &r.Private, &r.OwnerID,
			&r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRoom fetches a room by ID
func (p *Postgres) GetRoom(ctx context.Context, id string) (Room, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, name, description, type, private, owner_id, is_active, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`, id)
	return scanRoom(row)
}

// JoinRoom enrolls a user; joining twice is fine
func (p *Postgres) JoinRoom(ctx context.Context, roomID, userID string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO room_members (room_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, roomID, userID)
	return err
}

// LeaveRoom removes a user's enrollment
func (p *Postgres) LeaveRoom(ctx context.Context, roomID, userID string) error {
	_, err := p.pool.Exec(ctx, `
		DELETE FROM room_members WHERE room_id = $1 AND user_id = $2
	`, roomID, userID)
	return err
}

// RoomMembers lists enrolled users with their profile fields
func (p *Postgres) RoomMembers(ctx context.Context, roomID string) ([]Member, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.avatar
		FROM room_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.room_id = $1
		ORDER BY u.name
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Avatar); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanRoom(row pgx.Row) (Room, error) {
	var r Room
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Type, &r.Private, &r.OwnerID,
		&r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Room{}, ErrNotFound
		}
		return Room{}, err
	}
	return r, nil
}
