package contacts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements contact/address persistence over PostgreSQL.
//
// Ownership scoping is done in SQL: every statement carries the caller's
// user id, so a foreign contact or address never matches a row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("contacts: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const contactColumns = `id, user_id, first_name, last_name, email, phone, created_at, updated_at`
const addressColumns = `a.id, a.contact_id, a.street, a.city, a.province, a.country, a.postal_code, a.created_at, a.updated_at`

// CreateContact inserts a contact owned by in.UserID.
func (s *PostgresStore) CreateContact(ctx context.Context, in CreateContactInput) (Contact, error) {
	const op = "contacts.CreateContact"

	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}
	if in.FirstName == "" {
		return Contact{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "first_name is required"}
	}

	now := nowOrUTC(in.Now)

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO contacts (user_id, first_name, last_name, email, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING id`,
		in.UserID, in.FirstName, in.LastName, in.Email, in.Phone, now,
	).Scan(&id)
	if err != nil {
		if pgIsForeignKeyViolation(err) {
			return Contact{}, notFound(op, "user")
		}
		return Contact{}, err
	}

	return Contact{
		ID:        id,
		UserID:    in.UserID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetContact returns an owned contact by id.
func (s *PostgresStore) GetContact(ctx context.Context, userID, contactID int64) (Contact, error) {
	const op = "contacts.GetContact"

	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}

	var c Contact
	err := s.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND user_id = $2`,
		contactID, userID,
	).Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, notFound(op, "contact")
		}
		return Contact{}, err
	}
	return c, nil
}

// ListContacts returns all contacts owned by userID, oldest first.
func (s *PostgresStore) ListContacts(ctx context.Context, userID int64) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contact, 0, 16)
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateContact applies a full update to an owned contact.
func (s *PostgresStore) UpdateContact(ctx context.Context, in UpdateContactInput) (Contact, error) {
	const op = "contacts.UpdateContact"

	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}
	if in.FirstName == "" {
		return Contact{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "first_name is required"}
	}

	now := nowOrUTC(in.Now)

	ct, err := s.pool.Exec(ctx,
		`UPDATE contacts
		    SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = $5
		  WHERE id = $6 AND user_id = $7`,
		in.FirstName, in.LastName, in.Email, in.Phone, now, in.ContactID, in.UserID,
	)
	if err != nil {
		return Contact{}, err
	}
	if ct.RowsAffected() == 0 {
		return Contact{}, notFound(op, "contact")
	}

	return s.GetContact(ctx, in.UserID, in.ContactID)
}

// DeleteContact removes an owned contact (addresses cascade in the schema).
func (s *PostgresStore) DeleteContact(ctx context.Context, userID, contactID int64) error {
	const op = "contacts.DeleteContact"

	if err := ctx.Err(); err != nil {
		return err
	}

	ct, err := s.pool.Exec(ctx,
		`DELETE FROM contacts WHERE id = $1 AND user_id = $2`,
		contactID, userID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return notFound(op, "contact")
	}
	return nil
}

// CreateAddress inserts an address under an owned contact.
// The ownership check and the insert are a single statement, so a foreign
// contact id cannot gain an address.
func (s *PostgresStore) CreateAddress(ctx context.Context, in CreateAddressInput) (Address, error) {
	const op = "contacts.CreateAddress"

	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	if in.Country == "" {
		return Address{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "country is required"}
	}

	now := nowOrUTC(in.Now)

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO addresses (contact_id, street, city, province, country, postal_code, created_at, updated_at)
		 SELECT c.id, $3, $4, $5, $6, $7, $8, $8
		   FROM contacts c
		  WHERE c.id = $1 AND c.user_id = $2
		 RETURNING id`,
		in.ContactID, in.UserID, in.Street, in.City, in.Province, in.Country, in.PostalCode, now,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Address{}, notFound(op, "contact")
		}
		return Address{}, err
	}

	return Address{
		ID:         id,
		ContactID:  in.ContactID,
		Street:     in.Street,
		City:       in.City,
		Province:   in.Province,
		Country:    in.Country,
		PostalCode: in.PostalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GetAddress returns an address under an owned contact.
func (s *PostgresStore) GetAddress(ctx context.Context, userID, contactID, addressID int64) (Address, error) {
	const op = "contacts.GetAddress"

	if err := ctx.Err(); err != nil {
		return Address{}, err
	}

	var a Address
	err := s.pool.QueryRow(ctx,
		`SELECT `+addressColumns+`
		   FROM addresses a
		   JOIN contacts c ON c.id = a.contact_id
		  WHERE a.id = $1 AND a.contact_id = $2 AND c.user_id = $3`,
		addressID, contactID, userID,
	).Scan(&a.ID, &a.ContactID, &a.Street, &a.City, &a.Province, &a.Country, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Address{}, notFound(op, "address")
		}
		return Address{}, err
	}
	return a, nil
}

// ListAddresses returns all addresses of an owned contact, oldest first.
func (s *PostgresStore) ListAddresses(ctx context.Context, userID, contactID int64) ([]Address, error) {
	const op = "contacts.ListAddresses"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The contact itself must exist and be owned; an empty contact still lists.
	if _, err := s.GetContact(ctx, userID, contactID); err != nil {
		if IsNotFound(err) {
			return nil, notFound(op, "contact")
		}
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+addressColumns+`
		   FROM addresses a
		   JOIN contacts c ON c.id = a.contact_id
		  WHERE a.contact_id = $1 AND c.user_id = $2
		  ORDER BY a.id`,
		contactID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0, 8)
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.ContactID, &a.Street, &a.City, &a.Province, &a.Country, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAddress applies a full update to an address under an owned contact.
func (s *PostgresStore) UpdateAddress(ctx context.Context, in UpdateAddressInput) (Address, error) {
	const op = "contacts.UpdateAddress"

	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	if in.Country == "" {
		return Address{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "country is required"}
	}

	now := nowOrUTC(in.Now)

	ct, err := s.pool.Exec(ctx,
		`UPDATE addresses a
		    SET street = $1, city = $2, province = $3, country = $4, postal_code = $5, updated_at = $6
		   FROM contacts c
		  WHERE a.id = $7 AND a.contact_id = $8
		    AND c.id = a.contact_id AND c.user_id = $9`,
		in.Street, in.City, in.Province, in.Country, in.PostalCode, now,
		in.AddressID, in.ContactID, in.UserID,
	)
	if err != nil {
		return Address{}, err
	}
	if ct.RowsAffected() == 0 {
		return Address{}, notFound(op, "address")
	}

	return s.GetAddress(ctx, in.UserID, in.ContactID, in.AddressID)
}

// DeleteAddress removes an address under an owned contact.
func (s *PostgresStore) DeleteAddress(ctx context.Context, userID, contactID, addressID int64) error {
	const op = "contacts.DeleteAddress"

	if err := ctx.Err(); err != nil {
		return err
	}

	ct, err := s.pool.Exec(ctx,
		`DELETE FROM addresses a
		  USING contacts c
		  WHERE a.id = $1 AND a.contact_id = $2
		    AND c.id = a.contact_id AND c.user_id = $3`,
		addressID, contactID, userID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return notFound(op, "address")
	}
	return nil
}

// ---- helpers ----

func nowOrUTC(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now
}

func pgIsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503" // foreign_key_violation
}
