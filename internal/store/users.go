package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Avatar    string
	CreatedAt time.Time
}

// normEmail trims and lowercases the email (needed if DB col isnt citext)
func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// CreateUser inserts a new user with a hashed password
func (p *Postgres) CreateUser(ctx context.Context, name, email, password string) (User, error) {
	email = normEmail(email)
	if name == "" || email == "" || password == "" {
		return User{}, errors.New("missing name, email or password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	row := p.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, avatar, created_at
	`, name, email, string(hash))

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

// GetUserByEmail returns the user + hashed password for login verification
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (User, string, error) {
	email = normEmail(email)

	row := p.pool.QueryRow(ctx, `
		SELECT id, name, email, avatar, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)

	var u User
	var hash string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &hash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, "", errors.New("not found")
		}
		return User{}, "", err
	}
	return u, hash, nil
}

// VerifyUser checks email + password match
func (p *Postgres) VerifyUser(ctx context.Context, email, password string) (User, error) {
	u, hash, err := p.GetUserByEmail(ctx, email)
	if err != nil {
		return User{}, errors.New("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, errors.New("invalid credentials")
	}

	return u, nil
}

// GetUser fetches a user by ID
func (p *Postgres) GetUser(ctx context.Context, id string) (User, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, name, email, avatar, created_at
		FROM users
		WHERE id = $1
	`, id)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

// ListUsers returns all users (directory for invites/sharing)
func (p *Postgres) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, email, avatar, created_at
		FROM users
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateProfile updates the mutable profile fields (name, avatar)
func (p *Postgres) UpdateProfile(ctx context.Context, id, name, avatar string) (User, error) {
	row := p.pool.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
		    avatar = $3
		WHERE id = $1
		RETURNING id, name, email, avatar, created_at
	`, id, name, avatar)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, errors.New("not found")
		}
		return User{}, err
	}
	return u, nil
}
