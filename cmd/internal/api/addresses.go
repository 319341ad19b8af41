package api

import (
	"net/http"
	"time"

	"rolodex/cmd/internal/contacts"
)

const (
	maxAddressStreet = 200
	maxAddressCity   = 100
	maxAddressRegion = 100
	maxAddressPostal = 10
)

func validateAddress(req addressRequest) FieldErrors {
	errs := FieldErrors{}
	errs.MaxLen("street", strOrEmpty(req.Street), maxAddressStreet)
	errs.MaxLen("city", strOrEmpty(req.City), maxAddressCity)
	errs.MaxLen("province", strOrEmpty(req.Province), maxAddressRegion)
	errs.Required("country", req.Country)
	errs.MaxLen("country", req.Country, maxAddressRegion)
	errs.MaxLen("postal_code", strOrEmpty(req.PostalCode), maxAddressPostal)
	return errs
}

// addressScope resolves the contact and address path segments.
func addressScope(w http.ResponseWriter, r *http.Request) (contactID, addressID int64, ok bool) {
	contactID, ok = pathID(r, "id")
	if ok {
		addressID, ok = pathID(r, "addressID")
	}
	if !ok {
		writeMessageError(w, http.StatusNotFound, msgNotFound)
		return 0, 0, false
	}
	return contactID, addressID, true
}

func (h *Handler) handleAddressCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	contactID, ok := pathID(r, "id")
	if !ok {
		writeMessageError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req addressRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if errs := validateAddress(req); len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	a, err := h.contacts.CreateAddress(r.Context(), contacts.CreateAddressInput{
		UserID:     u.ID,
		ContactID:  contactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Now:        time.Now().UTC(),
	})
	if err != nil {
		h.contactError(w, "api.address_create.fail", err)
		return
	}

	writeData(w, http.StatusCreated, toAddressResponse(a))
}

func (h *Handler) handleAddressList(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	contactID, ok := pathID(r, "id")
	if !ok {
		writeMessageError(w, http.StatusNotFound, msgNotFound)
		return
	}

	list, err := h.contacts.ListAddresses(r.Context(), u.ID, contactID)
	if err != nil {
		h.contactError(w, "api.address_list.fail", err)
		return
	}

	out := make([]addressResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAddressResponse(a))
	}
	writeData(w, http.StatusOK, out)
}

func (h *Handler) handleAddressGet(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	contactID, addressID, ok := addressScope(w, r)
	if !ok {
		return
	}

	a, err := h.contacts.GetAddress(r.Context(), u.ID, contactID, addressID)
	if err != nil {
		h.contactError(w, "api.address_get.fail", err)
		return
	}

	writeData(w, http.StatusOK, toAddressResponse(a))
}

func (h *Handler) handleAddressUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	contactID, addressID, ok := addressScope(w, r)
	if !ok {
		return
	}

	var req addressRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if errs := validateAddress(req); len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	a, err := h.contacts.UpdateAddress(r.Context(), contacts.UpdateAddressInput{
		UserID:     u.ID,
		ContactID:  contactID,
		AddressID:  addressID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Now:        time.Now().UTC(),
	})
	if err != nil {
		h.contactError(w, "api.address_update.fail", err)
		return
	}

	writeData(w, http.StatusOK, toAddressResponse(a))
}

func (h *Handler) handleAddressDelete(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	contactID, addressID, ok := addressScope(w, r)
	if !ok {
		return
	}

	if err := h.contacts.DeleteAddress(r.Context(), u.ID, contactID, addressID); err != nil {
		h.contactError(w, "api.address_delete.fail", err)
		return
	}

	writeData(w, http.StatusOK, statusResponse{Status: "true"})
}
