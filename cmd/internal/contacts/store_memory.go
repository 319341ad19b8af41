package contacts

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a dev/test fallback when DB is not configured.
// It mirrors PostgresStore semantics, including ownership scoping.
type MemoryStore struct {
	mu sync.Mutex

	nextContactID int64
	nextAddressID int64
	contacts      map[int64]Contact
	addresses     map[int64]Address
}

// NewMemoryStore constructs an in-memory Store implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contacts:  make(map[int64]Contact),
		addresses: make(map[int64]Address),
	}
}

// CreateContact inserts a contact owned by in.UserID.
func (s *MemoryStore) CreateContact(ctx context.Context, in CreateContactInput) (Contact, error) {
	const op = "contacts.CreateContact"

	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}
	if in.FirstName == "" {
		return Contact{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "first_name is required"}
	}

	now := nowOrUTC(in.Now)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextContactID++
	c := Contact{
		ID:        s.nextContactID,
		UserID:    in.UserID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.contacts[c.ID] = c
	return c, nil
}

// GetContact returns an owned contact by id.
func (s *MemoryStore) GetContact(ctx context.Context, userID, contactID int64) (Contact, error) {
	const op = "contacts.GetContact"

	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ownedContact(op, userID, contactID)
}

// ListContacts returns all contacts owned by userID, oldest first.
func (s *MemoryStore) ListContacts(ctx context.Context, userID int64) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateContact applies a full update to an owned contact.
func (s *MemoryStore) UpdateContact(ctx context.Context, in UpdateContactInput) (Contact, error) {
	const op = "contacts.UpdateContact"

	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}
	if in.FirstName == "" {
		return Contact{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "first_name is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.ownedContact(op, in.UserID, in.ContactID)
	if err != nil {
		return Contact{}, err
	}

	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = in.Email
	c.Phone = in.Phone
	c.UpdatedAt = nowOrUTC(in.Now)
	s.contacts[c.ID] = c
	return c, nil
}

// DeleteContact removes an owned contact and its addresses.
func (s *MemoryStore) DeleteContact(ctx context.Context, userID, contactID int64) error {
	const op = "contacts.DeleteContact"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedContact(op, userID, contactID); err != nil {
		return err
	}

	delete(s.contacts, contactID)
	for id, a := range s.addresses {
		if a.ContactID == contactID {
			delete(s.addresses, id)
		}
	}
	return nil
}

// CreateAddress inserts an address under an owned contact.
func (s *MemoryStore) CreateAddress(ctx context.Context, in CreateAddressInput) (Address, error) {
	const op = "contacts.CreateAddress"

	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	if in.Country == "" {
		return Address{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "country is required"}
	}

	now := nowOrUTC(in.Now)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedContact(op, in.UserID, in.ContactID); err != nil {
		return Address{}, err
	}

	s.nextAddressID++
	a := Address{
		ID:         s.nextAddressID,
		ContactID:  in.ContactID,
		Street:     in.Street,
		City:       in.City,
		Province:   in.Province,
		Country:    in.Country,
		PostalCode: in.PostalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.addresses[a.ID] = a
	return a, nil
}

// GetAddress returns an address under an owned contact.
func (s *MemoryStore) GetAddress(ctx context.Context, userID, contactID, addressID int64) (Address, error) {
	const op = "contacts.GetAddress"

	if err := ctx.Err(); err != nil {
		return Address{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ownedAddress(op, userID, contactID, addressID)
}

// ListAddresses returns all addresses of an owned contact, oldest first.
func (s *MemoryStore) ListAddresses(ctx context.Context, userID, contactID int64) ([]Address, error) {
	const op = "contacts.ListAddresses"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedContact(op, userID, contactID); err != nil {
		return nil, err
	}

	out := make([]Address, 0, 8)
	for _, a := range s.addresses {
		if a.ContactID == contactID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateAddress applies a full update to an address under an owned contact.
func (s *MemoryStore) UpdateAddress(ctx context.Context, in UpdateAddressInput) (Address, error) {
	const op = "contacts.UpdateAddress"

	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	if in.Country == "" {
		return Address{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "country is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.ownedAddress(op, in.UserID, in.ContactID, in.AddressID)
	if err != nil {
		return Address{}, err
	}

	a.Street = in.Street
	a.City = in.City
	a.Province = in.Province
	a.Country = in.Country
	a.PostalCode = in.PostalCode
	a.UpdatedAt = nowOrUTC(in.Now)
	s.addresses[a.ID] = a
	return a, nil
}

// DeleteAddress removes an address under an owned contact.
func (s *MemoryStore) DeleteAddress(ctx context.Context, userID, contactID, addressID int64) error {
	const op = "contacts.DeleteAddress"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedAddress(op, userID, contactID, addressID); err != nil {
		return err
	}
	delete(s.addresses, addressID)
	return nil
}

// ---- helpers (callers hold s.mu) ----

func (s *MemoryStore) ownedContact(op string, userID, contactID int64) (Contact, error) {
	c, ok := s.contacts[contactID]
	if !ok || c.UserID != userID {
		return Contact{}, notFound(op, "contact")
	}
	return c, nil
}

func (s *MemoryStore) ownedAddress(op string, userID, contactID, addressID int64) (Address, error) {
	if _, err := s.ownedContact(op, userID, contactID); err != nil {
		return Address{}, err
	}
	a, ok := s.addresses[addressID]
	if !ok || a.ContactID != contactID {
		return Address{}, notFound(op, "address")
	}
	return a, nil
}
