package service

import (
	"context"
	"testing"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"
	"github.com/haierkeys/block-note-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	domain.UserRepository
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		m.users[u.UID] = u
		if u.UID > m.nextID {
			m.nextID = u.UID
		}
	}
	return m
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	if u, ok := m.users[uid]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.nextID++
	user.UID = m.nextID
	m.users[user.UID] = user
	return user, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, password string, uid int64) error {
	u, ok := m.users[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = password
	return nil
}

func newTestUserService(repo *mockUserRepo, registerEnabled bool) *userService {
	return &userService{
		userRepo:     repo,
		tokenManager: app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"}),
		config:       &Config{RegisterIsEnable: registerEnabled},
		logger:       zap.NewNop(),
	}
}

func hashedUser(uid int64, email, username, password string) *domain.User {
	hash, _ := util.GeneratePasswordHash(password)
	return &domain.User{UID: uid, Email: email, Username: username, Password: hash}
}

func TestUserRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		enabled bool
		params  *dto.UserRegisterRequest
		wantErr error
	}{
		{
			name:    "registration disabled",
			enabled: false,
			params: &dto.UserRegisterRequest{
				Email: "a@b.com", Username: "alice", Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: code.ErrorUserRegisterDisabled,
		},
		{
			name:    "invalid username",
			enabled: true,
			params: &dto.UserRegisterRequest{
				Email: "a@b.com", Username: "a!", Password: "secret1", ConfirmPassword: "secret1",
			},
			wantErr: code.ErrorUserNameInvalid,
		},
		{
			name:    "password mismatch",
			enabled: true,
			params: &dto.UserRegisterRequest{
				Email: "a@b.com", Username: "alice", Password: "secret1", ConfirmPassword: "secret2",
			},
			wantErr: code.ErrorUserPasswordNotMatch,
		},
		{
			name:    "success",
			enabled: true,
			params: &dto.UserRegisterRequest{
				Email: "a@b.com", Username: "alice", Password: "secret1", ConfirmPassword: "secret1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUserService(newMockUserRepo(), tt.enabled)
			user, err := svc.Register(ctx, tt.params, "127.0.0.1")
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register failed: %v", err)
			}
			if user.Token == "" {
				t.Error("expected a token on successful registration")
			}
		})
	}
}

func TestUserRegisterDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo(hashedUser(1, "a@b.com", "alice", "secret1"))
	svc := newTestUserService(repo, true)

	_, err := svc.Register(ctx, &dto.UserRegisterRequest{
		Email: "a@b.com", Username: "bob", Password: "secret1", ConfirmPassword: "secret1",
	}, "")
	if err != code.ErrorUserEmailExists {
		t.Errorf("err = %v, want ErrorUserEmailExists", err)
	}

	_, err = svc.Register(ctx, &dto.UserRegisterRequest{
		Email: "b@b.com", Username: "alice", Password: "secret1", ConfirmPassword: "secret1",
	}, "")
	if err != code.ErrorUserNameExists {
		t.Errorf("err = %v, want ErrorUserNameExists", err)
	}
}

func TestUserLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo(hashedUser(1, "a@b.com", "alice", "secret1"))
	svc := newTestUserService(repo, true)

	tests := []struct {
		name    string
		account string
		pass    string
		wantErr error
	}{
		{"login by email", "a@b.com", "secret1", nil},
		{"login by username", "alice", "secret1", nil},
		{"wrong password", "alice", "nope", code.ErrorUserLoginFailed},
		// unknown accounts answer the same as wrong passwords
		{"unknown account", "nobody", "secret1", code.ErrorUserLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, &dto.UserLoginRequest{Account: tt.account, Password: tt.pass}, "127.0.0.1")
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if user.Token == "" {
				t.Error("expected a token on successful login")
			}
		})
	}
}

func TestUserChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo(hashedUser(1, "a@b.com", "alice", "secret1"))
	svc := newTestUserService(repo, true)

	err := svc.ChangePassword(ctx, 1, &dto.UserChangePasswordRequest{
		OldPassword: "wrong", Password: "newpass1", ConfirmPassword: "newpass1",
	})
	if err != code.ErrorUserOldPasswordFailed {
		t.Errorf("err = %v, want ErrorUserOldPasswordFailed", err)
	}

	err = svc.ChangePassword(ctx, 1, &dto.UserChangePasswordRequest{
		OldPassword: "secret1", Password: "newpass1", ConfirmPassword: "newpass1",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.UserLoginRequest{Account: "alice", Password: "newpass1"}, ""); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
}
