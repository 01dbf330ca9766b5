package passwordless

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"slices"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/response"
	"github.com/dmitrymomot/spakit/core/sanitizer"
	"github.com/dmitrymomot/spakit/core/session"
	"github.com/dmitrymomot/spakit/core/validator"
)

// CallbackPath is where magic links send the browser back to.
const CallbackPath = "/callback"

// UsernameMaxLength is the longest username the API accepts.
const UsernameMaxLength = 18

var rxUsername = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-_]{0,17}$`)

func init() {
	validator.RegisterValidator("username", func(value reflect.Value, _ []string) validator.Rule {
		s := value.String()
		return validator.Rule{
			Check:   func() bool { return ValidateUsername(s) == nil },
			Message: "must start with a letter and contain up to 18 letters, digits, '-' or '_'",
		}
	})
}

type magicLinkRequest struct {
	Email       string `json:"email" validate:"required;email;max:254"`
	RedirectURI string `json:"redirectURI" validate:"required"`
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required;email;max:254"`
	Username string `json:"username" validate:"required;username"`
}

// ValidateUsername checks the username format the API accepts.
func ValidateUsername(username string) error {
	if !rxUsername.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// Requester performs API calls. *httpclient.Client implements it.
type Requester interface {
	Get(ctx context.Context, path string, header http.Header) (*response.Response, error)
	Post(ctx context.Context, path string, payload any, header http.Header) (*response.Response, error)
}

// Prompter asks the user things. A false ok means the user dismissed it.
type Prompter interface {
	Alert(msg string)
	Confirm(msg string) bool
	Prompt(msg, def string) (string, bool)
}

// Result is how an Access call ended.
type Result int

const (
	Failed Result = iota
	LinkSent
	Declined
	Canceled
)

func (r Result) String() string {
	switch r {
	case Failed:
		return "failed"
	case LinkSent:
		return "link_sent"
	case Declined:
		return "declined"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Option configures a Service.
type Option func(*Service)

// WithPrompter enables the account creation dialog in Access.
func WithPrompter(p Prompter) Option {
	return func(s *Service) {
		s.prompter = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service calls the auth endpoints.
type Service struct {
	client   Requester
	redirect string
	prompter Prompter
	logger   *slog.Logger
}

// New creates a Service. origin is the app origin magic links return to.
func New(client Requester, origin string, opts ...Option) (*Service, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, errors.Join(ErrInvalidOrigin, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, ErrInvalidOrigin
	}

	s := &Service{
		client:   client,
		redirect: u.Scheme + "://" + u.Host + CallbackPath,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SendMagicLink asks the server to mail a sign-in link for email.
func (s *Service) SendMagicLink(ctx context.Context, email string) error {
	in := magicLinkRequest{Email: sanitizer.Email(email), RedirectURI: s.redirect}
	if err := validator.ValidateStruct(&in); err != nil {
		return invalid(err)
	}
	_, err := s.client.Post(ctx, "/api/send-magic-link", in, nil)
	return fieldError(err)
}

// CreateUser registers a new account.
func (s *Service) CreateUser(ctx context.Context, email, username string) (session.User, error) {
	in := createUserRequest{Email: sanitizer.Email(email), Username: sanitizer.Trim(username)}
	if err := validator.ValidateStruct(&in); err != nil {
		return session.User{}, invalid(err)
	}

	resp, err := s.client.Post(ctx, "/api/users", in, nil)
	if err != nil {
		return session.User{}, fieldError(err)
	}

	var user session.User
	if err := resp.Decode(&user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

// AuthUser fetches the signed-in user. It needs an active session.
func (s *Service) AuthUser(ctx context.Context) (session.User, error) {
	resp, err := s.client.Get(ctx, "/api/auth-user", nil)
	if err != nil {
		return session.User{}, err
	}

	var user session.User
	if err := resp.Decode(&user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

// Access sends a magic link to email. An unknown email turns into an offer
// to create the account, after which the link is sent again.
func (s *Service) Access(ctx context.Context, email string) (Result, error) {
	err := s.SendMagicLink(ctx, email)
	if err == nil {
		s.logger.InfoContext(ctx, "magic link sent", logger.Component("passwordless"))
		return LinkSent, nil
	}
	if !response.IsNotFound(err) || s.prompter == nil {
		return Failed, err
	}

	if !s.prompter.Confirm("No user found with that email. Do you want to create an account?") {
		return Declined, nil
	}

	suggestion := sanitizer.Username(email, UsernameMaxLength)
	for {
		username, ok := s.prompter.Prompt("Username", suggestion)
		if !ok {
			return Canceled, nil
		}

		_, err := s.CreateUser(ctx, email, username)
		var fe *FieldError
		if errors.As(err, &fe) && fe.Field == "username" {
			s.prompter.Alert(fe.Message)
			continue
		}
		if err != nil {
			return Failed, err
		}
		break
	}

	s.logger.InfoContext(ctx, "account created", logger.Component("passwordless"))
	if err := s.SendMagicLink(ctx, email); err != nil {
		return Failed, err
	}
	return LinkSent, nil
}

// invalid turns a local validation failure into a *FieldError for the first
// failing field, email before username.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := verrs[0]
	for _, candidate := range verrs {
		if candidate.Field == "email" {
			ve = candidate
			break
		}
	}

	var sentinel error
	switch ve.Field {
	case "email":
		sentinel = ErrInvalidEmail
	case "username":
		sentinel = ErrInvalidUsername
	}
	return &FieldError{Field: ve.Field, Message: ve.Message, cause: errors.Join(sentinel, err)}
}

// fieldError narrows a validation failure to a *FieldError. Other errors
// are returned unchanged.
func fieldError(err error) error {
	if err == nil || !response.IsValidation(err) {
		return err
	}

	var re *response.Error
	errors.As(err, &re)
	fields := re.FieldErrors()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	field := keys[0]
	if _, ok := fields["email"]; ok {
		field = "email"
	}
	return &FieldError{Field: field, Message: fields[field], cause: err}
}
