package authpw

import (
	"context"
	"testing"
	"time"

	"fabrica/api/internal/store"
)

type fakeUserStore struct {
	usersByEmail map[string]store.User
	created      []store.User
	createErr    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{usersByEmail: make(map[string]store.User)}
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (store.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (store.User, error) {
	for _, user := range f.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return store.User{}, store.ErrNotFound
}

func (f *fakeUserStore) CreateUser(_ context.Context, user store.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	f.usersByEmail[user.Email] = user
	return nil
}

func TestSignUpValidation(t *testing.T) {
	service := NewService(newFakeUserStore())

	cases := []struct {
		name string
		req  SignUpRequest
	}{
		{"missing email", SignUpRequest{Password: "password123", DisplayName: "Ana"}},
		{"missing password", SignUpRequest{Email: "ana@example.com", DisplayName: "Ana"}},
		{"missing display name", SignUpRequest{Email: "ana@example.com", Password: "password123"}},
		{"short password", SignUpRequest{Email: "ana@example.com", Password: "short", DisplayName: "Ana"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.SignUp(context.Background(), tc.req); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSignUpCreatesViewer(t *testing.T) {
	userStore := newFakeUserStore()
	service := NewService(userStore)

	user, err := service.SignUp(context.Background(), SignUpRequest{
		Email:       "  Ana@Example.COM ",
		Password:    "password123",
		DisplayName: "Ana",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.Role != "viewer" {
		t.Fatalf("expected viewer role, got %s", user.Role)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
	if len(userStore.created) != 1 {
		t.Fatalf("expected 1 created user, got %d", len(userStore.created))
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	userStore := newFakeUserStore()
	service := NewService(userStore)

	req := SignUpRequest{Email: "ana@example.com", Password: "password123", DisplayName: "Ana"}
	if _, err := service.SignUp(context.Background(), req); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	if _, err := service.SignUp(context.Background(), req); err == nil {
		t.Fatal("expected duplicate email error")
	}
}

func TestSignUpRacingInsertLosesGracefully(t *testing.T) {
	userStore := newFakeUserStore()
	userStore.createErr = store.ErrConflict
	service := NewService(userStore)

	_, err := service.SignUp(context.Background(), SignUpRequest{
		Email:       "ana@example.com",
		Password:    "password123",
		DisplayName: "Ana",
	})
	if err == nil {
		t.Fatal("expected error when the insert loses a race")
	}
}

func TestSignInRoundTrip(t *testing.T) {
	userStore := newFakeUserStore()
	service := NewService(userStore)

	if _, err := service.SignUp(context.Background(), SignUpRequest{
		Email:       "ana@example.com",
		Password:    "password123",
		DisplayName: "Ana",
	}); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	user, err := service.SignIn(context.Background(), SignInRequest{
		Email:    "ANA@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("unexpected user %s", user.Email)
	}

	if _, err := service.SignIn(context.Background(), SignInRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	}); err == nil {
		t.Fatal("expected wrong-password rejection")
	}

	if _, err := service.SignIn(context.Background(), SignInRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}); err == nil {
		t.Fatal("expected unknown-email rejection")
	}
}

func TestSignInRejectsDeactivatedAccount(t *testing.T) {
	userStore := newFakeUserStore()
	service := NewService(userStore)

	user, err := service.SignUp(context.Background(), SignUpRequest{
		Email:       "ana@example.com",
		Password:    "password123",
		DisplayName: "Ana",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	deactivatedAt := time.Now()
	user.DeactivatedAt = &deactivatedAt
	userStore.usersByEmail[user.Email] = user

	if _, err := service.SignIn(context.Background(), SignInRequest{
		Email:    "ana@example.com",
		Password: "password123",
	}); err == nil {
		t.Fatal("expected deactivated account rejection")
	}
}
