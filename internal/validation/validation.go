// Package validation implements the form rules of Tempero: registration,
// login and post forms. Rules are pure functions from a form record to
// FieldErrors; a missing key means the field is valid.
//
// The client runs them before any request is made, and the development
// backend runs the same rules on incoming bodies.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Field keys reported in FieldErrors.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPhone                = "phone"
	FieldBio                  = "bio"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "passwordConfirmation"
	FieldTitle                = "title"
	FieldContent              = "content"
)

const (
	MaxNameLength     = 100
	MaxEmailLength    = 100
	MaxPhoneLength    = 15
	MinPasswordLength = 6
	MaxPasswordLength = 50
	MaxBioLength      = 500
	MaxTitleLength    = 100
	MaxContentLength  = 4000
)

// PasswordSpecials lists the characters that satisfy the "special character"
// password rule.
const PasswordSpecials = "@$!%*?&"

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	phoneRegex = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
)

// Registration is the sign-up form.
type Registration struct {
	Name                 string
	Email                string
	Phone                string
	Bio                  string
	Password             string
	PasswordConfirmation string
}

// Credentials is the login form.
type Credentials struct {
	Email    string
	Password string
}

// FieldErrors maps a field key to a user-facing message.
type FieldErrors map[string]string

// Empty reports whether no field failed.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Keys returns the failing field keys in sorted order.
func (fe FieldErrors) Keys() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// First returns the message of the first failing field in key order.
func (fe FieldErrors) First() string {
	keys := fe.Keys()
	if len(keys) == 0 {
		return ""
	}
	return fe[keys[0]]
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, k := range fe.Keys() {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

func length(s string) int { return utf8.RuneCountInString(s) }

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidateRegistration checks every field of r independently. Within one
// field the first failing rule wins.
func ValidateRegistration(r Registration) FieldErrors {
	errs := FieldErrors{}

	switch {
	case blank(r.Name):
		errs[FieldName] = "Nome é obrigatório"
	case length(r.Name) > MaxNameLength:
		errs[FieldName] = fmt.Sprintf("Nome deve ter no máximo %d caracteres", MaxNameLength)
	}

	switch {
	case blank(r.Email):
		errs[FieldEmail] = "Email é obrigatório"
	case length(r.Email) > MaxEmailLength:
		errs[FieldEmail] = fmt.Sprintf("Email deve ter no máximo %d caracteres", MaxEmailLength)
	case !ValidEmail(r.Email):
		errs[FieldEmail] = "Formato de email inválido"
	}

	switch {
	case blank(r.Phone):
		errs[FieldPhone] = "Telefone é obrigatório"
	case !ValidPhone(r.Phone):
		errs[FieldPhone] = "Formato deve ser (XX) XXXXX-XXXX"
	}

	if length(r.Bio) > MaxBioLength {
		errs[FieldBio] = fmt.Sprintf("A biografia deve ter no máximo %d caracteres", MaxBioLength)
	}

	if msg := passwordError(r.Password); msg != "" {
		errs[FieldPassword] = msg
	}

	if r.Password != r.PasswordConfirmation {
		errs[FieldPasswordConfirmation] = "As senhas não coincidem"
	}

	return errs
}

// ValidateLogin only checks that both fields are present.
func ValidateLogin(c Credentials) FieldErrors {
	errs := FieldErrors{}
	if blank(c.Email) {
		errs[FieldEmail] = "Email é obrigatório"
	}
	if c.Password == "" {
		errs[FieldPassword] = "Senha é obrigatória"
	}
	return errs
}

// ValidatePost checks the title and content of a new or edited post.
func ValidatePost(title, content string) FieldErrors {
	errs := FieldErrors{}

	switch {
	case blank(title):
		errs[FieldTitle] = "Título é obrigatório"
	case length(title) > MaxTitleLength:
		errs[FieldTitle] = fmt.Sprintf("Título deve ter no máximo %d caracteres", MaxTitleLength)
	}

	switch {
	case blank(content):
		errs[FieldContent] = "Conteúdo é obrigatório"
	case length(content) > MaxContentLength:
		errs[FieldContent] = fmt.Sprintf("Conteúdo deve ter no máximo %d caracteres", MaxContentLength)
	}

	return errs
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool { return emailRegex.MatchString(s) }

// ValidPhone reports whether s is "(DD) DDDDD-DDDD" or "(DD) DDDD-DDDD".
func ValidPhone(s string) bool { return phoneRegex.MatchString(s) }

func passwordError(p string) string {
	switch {
	case p == "":
		return "Senha é obrigatória"
	case length(p) < MinPasswordLength:
		return fmt.Sprintf("A senha deve ter pelo menos %d caracteres", MinPasswordLength)
	case length(p) > MaxPasswordLength:
		return fmt.Sprintf("A senha deve ter no máximo %d caracteres", MaxPasswordLength)
	case !StrongPassword(p):
		return "A senha deve conter pelo menos uma letra maiúscula, uma minúscula, um número e um caractere especial"
	}
	return ""
}

// PasswordChecklist reports which character-class requirements p meets. The
// CLI prints it next to the password prompt.
type PasswordChecklist struct {
	MinLength bool
	Upper     bool
	Lower     bool
	Digit     bool
	Special   bool
}

// CheckPassword evaluates the password checklist for p.
func CheckPassword(p string) PasswordChecklist {
	c := PasswordChecklist{MinLength: length(p) >= MinPasswordLength}
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= '0' && r <= '9':
			c.Digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			c.Special = true
		}
	}
	return c
}

// StrongPassword reports whether p contains a lowercase letter, an uppercase
// letter, a digit and one of PasswordSpecials.
func StrongPassword(p string) bool {
	c := CheckPassword(p)
	return c.Lower && c.Upper && c.Digit && c.Special
}
