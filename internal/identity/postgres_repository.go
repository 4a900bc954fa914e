package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ewallet/ewallet/internal/storage"
)

// PostgresRepository implements the identity registry on PostgreSQL. The
// database's unique constraints are the final arbiter for identity
// attributes; violations at commit time surface as *DuplicateError exactly
// like a failed pre-check would.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity registry.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, username, email, phone_number, password_hash, role, token_version, created_at, updated_at`

// Create inserts a user and returns it with the store-assigned identifier
// and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	q := storage.QuerierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `INSERT INTO users (name, username, email, phone_number, password_hash, role, token_version)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`,
		user.Name, user.Username, user.Email, user.PhoneNumber, user.PasswordHash, string(user.Role), user.TokenVersion)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, translateUserError(err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}

// Update persists the full set of mutable fields and refreshes updated_at.
func (r *PostgresRepository) Update(ctx context.Context, user User) (User, error) {
	q := storage.QuerierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `UPDATE users
        SET name = $1, username = $2, email = $3, phone_number = $4, password_hash = $5, role = $6, token_version = $7, updated_at = now()
        WHERE id = $8
        RETURNING created_at, updated_at`,
		user.Name, user.Username, user.Email, user.PhoneNumber, user.PasswordHash, string(user.Role), user.TokenVersion, user.ID)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, translateUserError(err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}

// Delete removes the user row.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	q := storage.QuerierFrom(ctx, r.db)
	cmd, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByUsername fetches a user by username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByEmail fetches a user by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByPhone fetches a user by full phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phone)
}

// FindByUsernameAndPhone fetches a user matching both keys.
func (r *PostgresRepository) FindByUsernameAndPhone(ctx context.Context, username, phone string) (User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 AND phone_number = $2`, username, phone)
}

// Exists reports whether a user with the identifier is present.
func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	q := storage.QuerierFrom(ctx, r.db)
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns all users ordered by identifier.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	q := storage.QuerierFrom(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) findOne(ctx context.Context, sql string, args ...any) (User, error) {
	q := storage.QuerierFrom(ctx, r.db)
	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u    User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHash, &role, &u.TokenVersion, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	u.Role = Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

// translateUserError maps a unique-constraint violation onto the identity
// attribute it protects so callers never see a raw storage error for a
// duplicate.
func translateUserError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return &DuplicateError{Field: "username"}
		case strings.Contains(pgErr.ConstraintName, "email"):
			return &DuplicateError{Field: "email"}
		case strings.Contains(pgErr.ConstraintName, "phone"):
			return &DuplicateError{Field: "phone_number"}
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const pgerrUniqueViolation = "23505"
