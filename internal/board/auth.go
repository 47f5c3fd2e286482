package board

import (
	"Agora/pkg/api"
	"Agora/pkg/log"
	"context"

	"go.uber.org/zap"
)

// Auth runs the login, logout and signup flows against one session.
type Auth struct {
	client *api.Client
}

func NewAuth(client *api.Client) *Auth {
	return &Auth{client: client}
}

// Login validates the form, exchanges it for a token and stores the token in
// the session credential.
func (a *Auth) Login(ctx context.Context, form LoginForm) error {
	form.normalize()
	if err := Validate(form); err != nil {
		return err
	}
	token, err := a.client.Login(ctx, form.Email, form.Password)
	if err != nil {
		return err
	}
	if err := a.client.Credential().Set(ctx, token); err != nil {
		log.L.Error("store session token", zap.String("session", a.client.Credential().ID()), zap.Error(err))
		return err
	}
	log.L.Info("login succeeded", zap.String("session", a.client.Credential().ID()))
	return nil
}

// Logout tells the backend and then drops the local token. A failed call
// keeps the token unless the backend answered 401.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	a.client.Credential().Clear(ctx)
	return nil
}

// Signup validates the form, checks that email and nickname are free and
// registers the account. It does not log in.
func (a *Auth) Signup(ctx context.Context, form SignupForm) (*api.User, error) {
	form.normalize()
	if err := Validate(form); err != nil {
		return nil, err
	}
	if err := a.CheckEmail(ctx, form.Email); err != nil {
		return nil, err
	}
	if err := a.CheckNickname(ctx, form.Nickname); err != nil {
		return nil, err
	}
	return a.client.Signup(ctx, api.SignupRequest{
		Email:           form.Email,
		Password:        form.Password,
		Nickname:        form.Nickname,
		ProfileImageURL: form.ProfileImageURL,
	})
}

// CheckEmail returns a ValidationError when email is already registered.
func (a *Auth) CheckEmail(ctx context.Context, email string) error {
	free, err := a.client.CheckEmail(ctx, email)
	if err != nil {
		return err
	}
	if !free {
		return ValidationError{{Field: "Email", Message: "this email is already registered"}}
	}
	return nil
}

// CheckNickname returns a ValidationError when nickname is taken.
func (a *Auth) CheckNickname(ctx context.Context, nickname string) error {
	free, err := a.client.CheckNickname(ctx, nickname)
	if err != nil {
		return err
	}
	if !free {
		return ValidationError{{Field: "Nickname", Message: "this nickname is already taken"}}
	}
	return nil
}

// CurrentUser returns the logged-in user, or nil when the session has no
// token.
func (a *Auth) CurrentUser(ctx context.Context) (*api.User, error) {
	if !a.client.Credential().IsActive() {
		return nil, nil
	}
	return a.client.Me(ctx)
}
