package contacts

import (
	"context"
	"time"
)

// Contact is a directory entry owned by a user.
type Contact struct {
	ID     int64
	UserID int64

	FirstName string
	LastName  *string
	Email     *string
	Phone     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address is a postal address owned by a contact.
type Address struct {
	ID        int64
	ContactID int64

	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateContactInput creates a contact for the owning user.
type CreateContactInput struct {
	UserID    int64
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	Now       time.Time
}

// UpdateContactInput is a full update of an owned contact.
type UpdateContactInput struct {
	UserID    int64
	ContactID int64
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	Now       time.Time
}

// CreateAddressInput creates an address under an owned contact.
type CreateAddressInput struct {
	UserID     int64
	ContactID  int64
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode *string
	Now        time.Time
}

// UpdateAddressInput is a full update of an address under an owned contact.
type UpdateAddressInput struct {
	UserID     int64
	ContactID  int64
	AddressID  int64
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode *string
	Now        time.Time
}

// Store is the contact/address persistence boundary.
//
// All operations take the caller's user id and return ErrNotFound for ids that
// do not exist or are owned by someone else.
type Store interface {
	CreateContact(ctx context.Context, in CreateContactInput) (Contact, error)
	GetContact(ctx context.Context, userID, contactID int64) (Contact, error)
	ListContacts(ctx context.Context, userID int64) ([]Contact, error)
	UpdateContact(ctx context.Context, in UpdateContactInput) (Contact, error)
	DeleteContact(ctx context.Context, userID, contactID int64) error

	CreateAddress(ctx context.Context, in CreateAddressInput) (Address, error)
	GetAddress(ctx context.Context, userID, contactID, addressID int64) (Address, error)
	ListAddresses(ctx context.Context, userID, contactID int64) ([]Address, error)
	UpdateAddress(ctx context.Context, in UpdateAddressInput) (Address, error)
	DeleteAddress(ctx context.Context, userID, contactID, addressID int64) error
}
