package api

import (
	"net/http"
	"strconv"

	"rolodex/cmd/identity"
	"rolodex/cmd/internal/contacts"
)

func toUserResponse(u identity.User, token *string) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Token:    token,
	}
}

func toContactResponse(c contacts.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func toAddressResponse(a contacts.Address) addressResponse {
	return addressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// pathID parses a numeric path segment. A malformed id behaves like an id
// that does not exist, so the caller sees a uniform 404.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// strOrEmpty dereferences an optional string for validation.
func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
