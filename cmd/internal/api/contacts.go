package api

import (
	"net/http"
	"time"

	"rolodex/cmd/internal/contacts"
)

const (
	maxContactNameLen = 100
	maxContactEmail   = 200
	maxContactPhone   = 20
)

func validateContact(req contactRequest) FieldErrors {
	errs := FieldErrors{}
	errs.Required("first_name", req.FirstName)
	errs.MaxLen("first_name", req.FirstName, maxContactNameLen)
	errs.MaxLen("last_name", strOrEmpty(req.LastName), maxContactNameLen)
	errs.Email("email", strOrEmpty(req.Email))
	errs.MaxLen("email", strOrEmpty(req.Email), maxContactEmail)
	errs.MaxLen("phone", strOrEmpty(req.Phone), maxContactPhone)
	return errs
}

func (h *Handler) handleContactCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	var req contactRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if errs := validateContact(req); len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	c, err := h.contacts.CreateContact(r.Context(), contacts.CreateContactInput{
		UserID:    u.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("api.contact_create.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeData(w, http.StatusCreated, toContactResponse(c))
}

func (h *Handler) handleContactList(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	list, err := h.contacts.ListContacts(r.Context(), u.ID)
	if err != nil {
		h.log.Error("api.contact_list.fail", "err", err)
		writeMessageError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	out := make([]contactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContactResponse(c))
	}
	writeData(w, http.StatusOK, out)
}

func (h *Handler) handleContactGet(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeMessageError(w, http.StatusNotFound, msgNotFound)
		return
	}

	c, err := h.contacts.GetContact(r.Context(), u.ID, id)
	if err != nil {
		h.contactError(w, "api.contact_get.fail", err)
		return
	}

	writeData(w, http.StatusOK, toContactResponse(c))
}

func (h *Handler) handleContactUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeMessageError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req contactRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeMessageError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if errs := validateContact(req); len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	// Full replacement: absent optional fields clear the stored value.
	c, err := h.contacts.UpdateContact(r.Context(), contacts.UpdateContactInput{
		UserID:    u.ID,
		ContactID: id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		h.contactError(w, "api.contact_update.fail", err)
		return
	}

	writeData(w, http.StatusOK, toContactResponse(c))
}

func (h *Handler) handleContactDelete(w http.ResponseWriter, r *http.Request) {
	u, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeMessageError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.contacts.DeleteContact(r.Context(), u.ID, id); err != nil {
		h.contactError(w, "api.contact_delete.fail", err)
		return
	}

	writeData(w, http.StatusOK, statusResponse{Status: "true"})
}

// contactError maps store failures to responses: unknown or foreign ids are a
// uniform 404, anything else is logged and reported as a 500.
func (h *Handler) contactError(w http.ResponseWriter, op string, err error) {
	if contacts.IsNotFound(err) {
		writeMessageError(w, http.StatusNotFound, msgNotFound)
		return
	}
	h.log.Error(op, "err", err)
	writeMessageError(w, http.StatusInternalServerError, msgServerError)
}
