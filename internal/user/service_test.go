package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	byEmail map[string]*User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*User), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, in RegisterInput, passwordHash string) (*User, error) {
	if _, ok := f.byEmail[in.Email]; ok {
		return nil, ErrDuplicateEmail
	}
	u := &User{
		ID:           fmt.Sprintf("u%d", f.nextID),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Title:        in.Title,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.byEmail[in.Email] = u
	return u, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func validInput() RegisterInput {
	return RegisterInput{
		FullName: "Sarah Chen",
		Email:    "sarah@example.com",
		Password: "hunter2hunter2",
		Title:    "ML Engineer",
	}
}

func TestRegister_Success(t *testing.T) {
	svc := NewService(newFakeRepo(), bcrypt.MinCost)

	u, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", u.FullName)
	assert.Equal(t, "sarah@example.com", u.Email)
	assert.Equal(t, "ML Engineer", u.Title)

	// Password is stored only as a one-way hash.
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(u.PasswordHash), []byte("hunter2hunter2")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	// Same email again fails with ErrDuplicateEmail regardless of the
	// other field values.
	for _, in := range []RegisterInput{
		validInput(),
		{FullName: "Other Name", Email: "sarah@example.com", Password: "different", Title: "Designer"},
		{Email: "sarah@example.com"},
	} {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), bcrypt.MinCost)

	tests := []struct {
		name   string
		modify func(*RegisterInput)
	}{
		{"missing full name", func(in *RegisterInput) { in.FullName = "" }},
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"missing password", func(in *RegisterInput) { in.Password = "" }},
		{"missing title", func(in *RegisterInput) { in.Title = "" }},
		{"whitespace full name", func(in *RegisterInput) { in.FullName = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc := NewService(newFakeRepo(), bcrypt.MinCost)

	created, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "sarah@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	svc := NewService(newFakeRepo(), bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	// Wrong password and unknown email must produce the identical error so
	// the API does not leak which addresses are registered.
	_, errWrongPass := svc.Login(context.Background(), "sarah@example.com", "wrong")
	_, errNoUser := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errNoUser)
}

func TestLogin_EmailCaseSensitive(t *testing.T) {
	svc := NewService(newFakeRepo(), bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "SARAH@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
