package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/store"
)

type memKV map[string]string

func (m memKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (m memKV) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m memKV) Clear(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m, k)
	}
	return nil
}

type fakeBackend struct {
	loginErr   error
	loginCalls int
	registered []string
}

func (f *fakeBackend) Login(_ context.Context, email, _ string) (*models.LoginResponse, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.LoginResponse{Token: "tok-123", User: models.User{ID: "u1", Name: "Ada", Email: email}}, nil
}

func (f *fakeBackend) Register(_ context.Context, name, email, _ string) (*models.User, error) {
	f.registered = append(f.registered, email)
	return &models.User{ID: "u2", Name: name, Email: email}, nil
}

func TestLoginForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		form LoginForm
		want FieldErrors
	}{
		{"valid", LoginForm{Email: "a@b.co", Password: "secret"}, nil},
		{"empty", LoginForm{}, FieldErrors{"Email": MsgEmailRequired, "Password": MsgPasswordRequired}},
		{"bad email", LoginForm{Email: "ab.co", Password: "secret"}, FieldErrors{"Email": MsgEmailInvalid}},
		{"short password", LoginForm{Email: "a@b.co", Password: "12345"}, FieldErrors{"Password": MsgPasswordShort}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.want, fe)
		})
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	base := RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "secret", ConfirmPassword: "secret"}
	assert.NoError(t, base.Validate())

	f := base
	f.Name = ""
	f.ConfirmPassword = ""
	var fe FieldErrors
	require.ErrorAs(t, f.Validate(), &fe)
	assert.Equal(t, FieldErrors{"Name": MsgNameRequired, "ConfirmPassword": MsgConfirmRequired}, fe)
	assert.Equal(t, MsgNameRequired+"; "+MsgConfirmRequired, fe.Error())

	f = base
	f.ConfirmPassword = "secreT"
	require.ErrorAs(t, f.Validate(), &fe)
	assert.Equal(t, MsgConfirmMismatch, fe["ConfirmPassword"])
}

func TestManager_LoginPersistsSession(t *testing.T) {
	kv := memKV{}
	m := NewManager(&fakeBackend{}, kv, nil)
	ctx := context.Background()

	assert.False(t, m.SignedIn(ctx))
	u, err := m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = m.Login(ctx, LoginForm{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	tok, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
	u, err = m.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	require.NoError(t, m.Logout(ctx))
	assert.Empty(t, kv)
}

func TestManager_LoginInvalidFormSkipsBackend(t *testing.T) {
	be := &fakeBackend{}
	m := NewManager(be, memKV{}, nil)

	_, err := m.Login(context.Background(), LoginForm{Email: "x"})
	require.Error(t, err)
	assert.Zero(t, be.loginCalls)
}

func TestManager_LoginFailureKeepsNothing(t *testing.T) {
	kv := memKV{}
	m := NewManager(&fakeBackend{loginErr: &api.Error{Status: 400, Message: "Invalid credentials"}}, kv, nil)

	_, err := m.Login(context.Background(), LoginForm{Email: "a@b.co", Password: "secret"})
	assert.EqualError(t, err, "Invalid credentials")
	assert.Empty(t, kv)
}

func TestManager_RegisterDoesNotSignIn(t *testing.T) {
	be := &fakeBackend{}
	kv := memKV{}
	m := NewManager(be, kv, nil)

	_, err := m.Register(context.Background(), RegisterForm{Name: "Ada", Email: "a@b.co", Password: "secret", ConfirmPassword: "secret"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.co"}, be.registered)
	assert.Empty(t, kv)
}

func TestManager_HandleError(t *testing.T) {
	kv := memKV{KeyToken: "t", KeyUser: `{"name":"Ada"}`}
	m := NewManager(&fakeBackend{}, kv, nil)
	ctx := context.Background()

	assert.False(t, m.HandleError(ctx, errors.New("boom")))
	assert.False(t, m.HandleError(ctx, &api.Error{Status: 500, Message: "Failed to fetch decks"}))
	assert.Len(t, kv, 2)

	assert.True(t, m.HandleError(ctx, &api.Error{Status: 403, Message: "Not authorized, token failed"}))
	assert.Empty(t, kv)
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	ti, err := Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", ti.Subject)
	assert.True(t, exp.Equal(ti.ExpiresAt))
	assert.False(t, ti.Expired(time.Now()))
	assert.True(t, ti.Expired(exp.Add(time.Second)))

	_, err = Inspect("not-a-token")
	assert.Error(t, err)
}
