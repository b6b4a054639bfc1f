package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"motors/internal/app"
	"motors/internal/domain"
)

type inboxView struct {
	Messages   []domain.Message
	Archived   bool
	OtherCount int
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	s.renderInbox(w, r, false)
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	s.renderInbox(w, r, true)
}

func (s *Server) renderInbox(w http.ResponseWriter, r *http.Request, archived bool) {
	id, _ := IdentityFrom(r.Context())

	msgs, err := s.messages.Inbox(r.Context(), id.ID, archived)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	var other int
	var title string
	if archived {
		other, err = s.messages.InboxCount(r.Context(), id.ID)
		title = fmt.Sprintf("%s Inbox: Archived Messages", id.FirstName)
	} else {
		other, err = s.messages.ArchivedCount(r.Context(), id.ID)
		title = fmt.Sprintf("%s Inbox", id.FirstName)
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := s.view(w, r, title)
	data.Data = inboxView{Messages: msgs, Archived: archived, OtherCount: other}
	s.render(w, http.StatusOK, "inbox", data)
}

// loadOwnMessage fetches a message and enforces recipient ownership,
// handling the redirect-and-notice failure path. ok is false when a
// response has already been written.
func (s *Server) loadOwnMessage(w http.ResponseWriter, r *http.Request) (*domain.Message, bool) {
	id, _ := IdentityFrom(r.Context())
	msgID, okParam := paramInt64(r, "messageID")
	if !okParam {
		s.handleNotFound(w, r)
		return nil, false
	}

	m, err := s.messages.View(r.Context(), msgID, id.ID)
	if errors.Is(err, app.ErrNotMessageOwner) {
		setNotice(w, "You aren't authorized to view that message.")
		http.Redirect(w, r, "/message/", http.StatusSeeOther)
		return nil, false
	}
	if errors.Is(err, domain.ErrNotFound) {
		s.handleNotFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	return m, true
}

func (s *Server) handleMessageView(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadOwnMessage(w, r)
	if !ok {
		return
	}

	data := s.view(w, r, "Message: "+m.Subject)
	data.Data = m
	s.render(w, http.StatusOK, "message", data)
}

// handleCompose serves both the blank compose form and the reply form.
// A reply pre-fills the subject, quotes the original body, and selects
// the original sender as recipient.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	recipients, err := s.accounts.Recipients(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	title := "Compose"
	form := map[string]string{}

	if _, ok := paramInt64(r, "messageID"); ok {
		replyTo, okMsg := s.loadOwnMessage(w, r)
		if !okMsg {
			return
		}
		title = fmt.Sprintf("Reply to %s %s", replyTo.FromFirstName, replyTo.FromLastName)
		form["message_to"] = strconv.FormatInt(replyTo.From, 10)
		form["message_subject"] = "Re: " + replyTo.Subject
		form["message_body"] = fmt.Sprintf("\n\n\nOn %s from %s %s:\n%s",
			replyTo.Created.Format("2006-01-02 15:04"), replyTo.FromFirstName, replyTo.FromLastName, replyTo.Body)
	}

	data := s.view(w, r, title)
	data.Form = form
	data.Data = recipients
	s.render(w, http.StatusOK, "compose", data)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	f := readMessageForm(r)
	if errs := f.validate(); len(errs) > 0 {
		recipients, err := s.accounts.Recipients(r.Context())
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		data := s.view(w, r, "Compose")
		data.Errors = errs
		data.Form = f.values()
		data.Data = recipients
		s.render(w, http.StatusBadRequest, "compose", data)
		return
	}

	to, _ := strconv.ParseInt(f.To, 10, 64)
	if err := s.messages.Send(r.Context(), id.ID, to, f.Subject, f.Body); err != nil {
		s.serverError(w, r, err)
		return
	}

	setNotice(w, "Message sent.")
	http.Redirect(w, r, "/message/", http.StatusSeeOther)
}

func (s *Server) handleDeleteView(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadOwnMessage(w, r)
	if !ok {
		return
	}

	data := s.view(w, r, "Confirm Deletion")
	data.Data = m
	s.render(w, http.StatusOK, "message-delete", data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	msgID, err := strconv.ParseInt(formValue(r, "message_id"), 10, 64)
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	// Ownership check before the destructive operation.
	if _, err := s.messages.View(r.Context(), msgID, id.ID); err != nil {
		setNotice(w, "You aren't authorized to delete that message.")
		http.Redirect(w, r, "/message/", http.StatusSeeOther)
		return
	}

	if err := s.messages.Delete(r.Context(), msgID); err != nil {
		s.serverError(w, r, err)
		return
	}

	setNotice(w, "Message deleted.")
	http.Redirect(w, r, "/message/", http.StatusSeeOther)
}

func (s *Server) handleToggleRead(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadOwnMessage(w, r)
	if !ok {
		return
	}

	read, err := s.messages.ToggleRead(r.Context(), m.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, read)
}

func (s *Server) handleToggleArchived(w http.ResponseWriter, r *http.Request) {
	m, ok := s.loadOwnMessage(w, r)
	if !ok {
		return
	}

	archived, err := s.messages.ToggleArchived(r.Context(), m.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, archived)
}
