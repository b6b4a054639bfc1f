package adapthttp

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"motors/internal/domain"
)

var (
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alphanumericPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// strongPassword requires at least 12 characters with an upper, a lower,
// a digit, and a symbol.
func strongPassword(s string) bool {
	if len(s) < 12 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

type registerForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func readRegisterForm(r *http.Request) registerForm {
	return registerForm{
		FirstName: formValue(r, "account_firstname"),
		LastName:  formValue(r, "account_lastname"),
		Email:     formValue(r, "account_email"),
		Password:  r.PostFormValue("account_password"),
	}
}

func (f registerForm) validate() []string {
	var errs []string
	if f.FirstName == "" {
		errs = append(errs, "Please provide a first name.")
	}
	if len(f.LastName) < 2 {
		errs = append(errs, "Please provide a last name.")
	}
	if !validEmail(f.Email) {
		errs = append(errs, "A valid email is required.")
	}
	if !strongPassword(f.Password) {
		errs = append(errs, "Password does not meet requirements.")
	}
	return errs
}

// values returns the sticky form fields for re-rendering. The password
// is never echoed back.
func (f registerForm) values() map[string]string {
	return map[string]string{
		"account_firstname": f.FirstName,
		"account_lastname":  f.LastName,
		"account_email":     f.Email,
	}
}

type loginForm struct {
	Email    string
	Password string
}

func readLoginForm(r *http.Request) loginForm {
	return loginForm{
		Email:    formValue(r, "account_email"),
		Password: r.PostFormValue("account_password"),
	}
}

func (f loginForm) validate() []string {
	var errs []string
	if !validEmail(f.Email) {
		errs = append(errs, "A valid email is required.")
	}
	if f.Password == "" {
		errs = append(errs, "Password cannot be empty.")
	}
	return errs
}

type updateForm struct {
	AccountID int64
	FirstName string
	LastName  string
	Email     string
}

func readUpdateForm(r *http.Request) updateForm {
	id, _ := strconv.ParseInt(formValue(r, "account_id"), 10, 64)
	return updateForm{
		AccountID: id,
		FirstName: formValue(r, "account_firstname"),
		LastName:  formValue(r, "account_lastname"),
		Email:     formValue(r, "account_email"),
	}
}

func (f updateForm) validate() []string {
	var errs []string
	if f.FirstName == "" {
		errs = append(errs, "Please provide a first name.")
	}
	if len(f.LastName) < 2 {
		errs = append(errs, "Please provide a last name.")
	}
	if !validEmail(f.Email) {
		errs = append(errs, "A valid email is required.")
	}
	return errs
}

func (f updateForm) values() map[string]string {
	return map[string]string{
		"account_id":        strconv.FormatInt(f.AccountID, 10),
		"account_firstname": f.FirstName,
		"account_lastname":  f.LastName,
		"account_email":     f.Email,
	}
}

type classificationForm struct {
	Name string
}

func readClassificationForm(r *http.Request) classificationForm {
	return classificationForm{Name: formValue(r, "classification_name")}
}

func (f classificationForm) validate() []string {
	if !alphanumericPattern.MatchString(f.Name) {
		return []string{"Please provide a valid classification name."}
	}
	return nil
}

type vehicleForm struct {
	Make             string
	Model            string
	Year             string
	Description      string
	Image            string
	Thumbnail        string
	Price            string
	Miles            string
	Color            string
	ClassificationID string
}

func readVehicleForm(r *http.Request) vehicleForm {
	return vehicleForm{
		Make:             formValue(r, "inv_make"),
		Model:            formValue(r, "inv_model"),
		Year:             formValue(r, "inv_year"),
		Description:      formValue(r, "inv_description"),
		Image:            formValue(r, "inv_image"),
		Thumbnail:        formValue(r, "inv_thumbnail"),
		Price:            formValue(r, "inv_price"),
		Miles:            formValue(r, "inv_miles"),
		Color:            formValue(r, "inv_color"),
		ClassificationID: formValue(r, "classification_id"),
	}
}

func (f vehicleForm) validate() []string {
	var errs []string
	if f.Make == "" {
		errs = append(errs, "Make value is missing.")
	}
	if f.Model == "" {
		errs = append(errs, "Please provide a model.")
	}
	if _, err := strconv.Atoi(f.Year); err != nil {
		errs = append(errs, "Year must be a number.")
	}
	if f.Description == "" {
		errs = append(errs, "Please provide a description.")
	}
	if _, err := strconv.ParseFloat(f.Price, 64); err != nil {
		errs = append(errs, "Price must be a number.")
	}
	if _, err := strconv.ParseInt(f.Miles, 10, 64); err != nil {
		errs = append(errs, "Miles must be a number.")
	}
	if f.Color == "" {
		errs = append(errs, "Please provide a color.")
	}
	if _, err := strconv.ParseInt(f.ClassificationID, 10, 64); err != nil {
		errs = append(errs, "Please provide a valid classification.")
	}
	return errs
}

// vehicle converts a validated form into a domain value. Call only after
// validate returns no errors.
func (f vehicleForm) vehicle() *domain.Vehicle {
	year, _ := strconv.Atoi(f.Year)
	price, _ := strconv.ParseFloat(f.Price, 64)
	miles, _ := strconv.ParseInt(f.Miles, 10, 64)
	classID, _ := strconv.ParseInt(f.ClassificationID, 10, 64)
	image := f.Image
	if image == "" {
		image = "/static/images/vehicles/no-image.png"
	}
	thumb := f.Thumbnail
	if thumb == "" {
		thumb = "/static/images/vehicles/no-image-tn.png"
	}
	return &domain.Vehicle{
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		Image:            image,
		Thumbnail:        thumb,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
		ClassificationID: classID,
	}
}

func (f vehicleForm) values() map[string]string {
	return map[string]string{
		"inv_make":          f.Make,
		"inv_model":         f.Model,
		"inv_year":          f.Year,
		"inv_description":   f.Description,
		"inv_image":         f.Image,
		"inv_thumbnail":     f.Thumbnail,
		"inv_price":         f.Price,
		"inv_miles":         f.Miles,
		"inv_color":         f.Color,
		"classification_id": f.ClassificationID,
	}
}

type messageForm struct {
	To      string
	Subject string
	Body    string
}

func readMessageForm(r *http.Request) messageForm {
	return messageForm{
		To:      formValue(r, "message_to"),
		Subject: formValue(r, "message_subject"),
		Body:    strings.TrimSpace(r.PostFormValue("message_body")),
	}
}

func (f messageForm) validate() []string {
	var errs []string
	if _, err := strconv.ParseInt(f.To, 10, 64); err != nil {
		errs = append(errs, "Please choose a recipient.")
	}
	if f.Subject == "" {
		errs = append(errs, "Please provide a subject.")
	}
	if f.Body == "" {
		errs = append(errs, "Please provide a message.")
	}
	return errs
}

func (f messageForm) values() map[string]string {
	return map[string]string{
		"message_to":      f.To,
		"message_subject": f.Subject,
		"message_body":    f.Body,
	}
}
