package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"motors/internal/app"
)

func (s *Server) handleLoginView(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", s.view(w, r, "Login"))
}

// handleLogin processes a login attempt. Unknown email and wrong
// password produce byte-identical responses so the failure cause cannot
// be distinguished. The cookie is minted strictly after the password
// verifies.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	f := readLoginForm(r)
	if errs := f.validate(); len(errs) > 0 {
		data := s.view(w, r, "Login")
		data.Errors = errs
		data.Form["account_email"] = f.Email
		s.render(w, http.StatusBadRequest, "login", data)
		return
	}

	id, err := s.accounts.Authenticate(r.Context(), f.Email, f.Password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		observeLogin(false)
		setNotice(w, "Please check your credentials and try again.")
		http.Redirect(w, r, "/account/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		observeLogin(false)
		s.serverError(w, r, err)
		return
	}

	tok, err := s.sessions.codec.Issue(id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.sessions.mint(w, tok)
	observeLogin(true)
	http.Redirect(w, r, "/account/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.clear(w)
	setNotice(w, "Logout successful.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterView(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register", s.view(w, r, "Register"))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	f := readRegisterForm(r)
	if errs := f.validate(); len(errs) > 0 {
		data := s.view(w, r, "Register")
		data.Errors = errs
		data.Form = f.values()
		s.render(w, http.StatusBadRequest, "register", data)
		return
	}

	id, err := s.accounts.Register(r.Context(), f.FirstName, f.LastName, f.Email, f.Password)
	if errors.Is(err, app.ErrEmailTaken) {
		data := s.view(w, r, "Register")
		data.Errors = []string{"Email exists. Please log in or use a different email."}
		data.Form = f.values()
		s.render(w, http.StatusBadRequest, "register", data)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	setNotice(w, fmt.Sprintf("Congratulations, you're registered %s. Please log in.", id.FirstName))
	http.Redirect(w, r, "/account/login", http.StatusSeeOther)
}

func (s *Server) handleAccountManagement(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	unread, err := s.messages.UnreadCount(r.Context(), id.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := s.view(w, r, "Account Management")
	data.Data = unread
	s.render(w, http.StatusOK, "account", data)
}

// handleAccountUpdateView serves the update form. Accounts can only
// edit themselves; a mismatched id fails closed to the management view.
func (s *Server) handleAccountUpdateView(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	paramID, ok := paramInt64(r, "accountID")
	if !ok || paramID != id.ID {
		setNotice(w, "You can only edit your own account.")
		http.Redirect(w, r, "/account/", http.StatusSeeOther)
		return
	}

	data := s.view(w, r, "Update Account")
	data.Form = map[string]string{
		"account_id":        strconv.FormatInt(id.ID, 10),
		"account_firstname": id.FirstName,
		"account_lastname":  id.LastName,
		"account_email":     id.Email,
	}
	s.render(w, http.StatusOK, "account-update", data)
}

// handleAccountUpdate applies a profile mutation and refreshes the
// session cookie so the client's cached identity tracks storage.
func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	f := readUpdateForm(r)
	if f.AccountID != id.ID {
		setNotice(w, "You can only edit your own account.")
		http.Redirect(w, r, "/account/", http.StatusSeeOther)
		return
	}

	if errs := f.validate(); len(errs) > 0 {
		data := s.view(w, r, "Update Account")
		data.Errors = errs
		data.Form = f.values()
		s.render(w, http.StatusBadRequest, "account-update", data)
		return
	}

	err := s.accounts.UpdateProfile(r.Context(), id.ID, f.FirstName, f.LastName, f.Email)
	if errors.Is(err, app.ErrEmailTaken) {
		data := s.view(w, r, "Update Account")
		data.Errors = []string{"Email exists. Please use a different email."}
		data.Form = f.values()
		s.render(w, http.StatusBadRequest, "account-update", data)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	fresh, err := s.accounts.IdentityByID(r.Context(), id.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.sessions.refresh(w, fresh); err != nil {
		s.serverError(w, r, err)
		return
	}

	setNotice(w, "Account updated.")
	http.Redirect(w, r, "/account/", http.StatusSeeOther)
}

// handlePasswordUpdate re-hashes synchronously; a hashing failure aborts
// the request and leaves the stored hash untouched.
func (s *Server) handlePasswordUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	password := r.PostFormValue("account_password")
	if !strongPassword(password) {
		data := s.view(w, r, "Update Account")
		data.Errors = []string{"Password does not meet requirements."}
		data.Form["account_id"] = strconv.FormatInt(id.ID, 10)
		s.render(w, http.StatusBadRequest, "account-update", data)
		return
	}

	if err := s.accounts.UpdatePassword(r.Context(), id.ID, password); err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.sessions.refresh(w, id); err != nil {
		s.serverError(w, r, err)
		return
	}

	setNotice(w, "Password updated.")
	http.Redirect(w, r, "/account/", http.StatusSeeOther)
}
