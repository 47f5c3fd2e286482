package board

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// LoginForm is checked before any request is made.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

type SignupForm struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,password"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
	Nickname        string `validate:"required,nospace,max=10"`
	ProfileImageURL string `validate:"omitempty,startswith=http"`
}

type PostForm struct {
	Title   string   `validate:"required,max=26"`
	Content string   `validate:"required"`
	Images  []string `validate:"dive,startswith=http"`
}

// FieldError is one user-facing complaint about one field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed, in declaration order.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for field, empty when it passed.
func (e ValidationError) Field(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

const passwordSpecials = "@$!%*?&"

var messages = map[string]string{
	"Email.required":             "please enter your email",
	"Email.email":                "please enter a valid email address",
	"Password.required":          "please enter your password",
	"Password.password":          "password must be 8 to 20 characters with at least one uppercase letter, lowercase letter, digit and special character (@$!%*?&)",
	"PasswordConfirm.required":   "please confirm your password",
	"PasswordConfirm.eqfield":    "passwords do not match",
	"Nickname.required":          "please enter a nickname",
	"Nickname.nospace":           "nickname must not contain spaces",
	"Nickname.max":               "nickname can be at most 10 characters",
	"ProfileImageURL.startswith": "please enter a valid URL",
	"Title.required":             "please enter a title",
	"Title.max":                  "title can be at most 26 characters",
	"Content.required":           "please enter the content",
	"Images.startswith":          "please enter a valid URL",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return ValidPassword(fl.Field().String())
		})
		_ = validate.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
			return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
		})
	})
	return validate
}

// ValidPassword reports whether p is 8 to 20 characters drawn only from
// letters, digits and @$!%*?&, with at least one of each class.
func ValidPassword(p string) bool {
	if len(p) < 8 || len(p) > 20 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// Validate checks a form struct and returns a ValidationError on failure.
func Validate(form any) error {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	out := make(ValidationError, 0, len(errs))
	for _, fe := range errs {
		field := fe.StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = field + " is invalid"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

func (f *LoginForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

func (f *SignupForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Nickname = strings.TrimSpace(f.Nickname)
	f.ProfileImageURL = strings.TrimSpace(f.ProfileImageURL)
}

func (f *PostForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	if f.Images == nil {
		return
	}
	// The caller still owns the original backing array.
	images := make([]string, len(f.Images))
	for i, u := range f.Images {
		images[i] = strings.TrimSpace(u)
	}
	f.Images = images
}
