package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type memoryUserRepo struct {
	users  map[int64]*User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int64]*User)}
}

func (r *memoryUserRepo) Get(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (r *memoryUserRepo) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryUserRepo) Create(ctx context.Context, u User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return 0, fmt.Errorf("%w: username or email already taken", httpx.ErrDuplicate)
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = &u
	return u.ID, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["password_hash"]; ok {
		u.PasswordHash = v.(string)
	}
	if v, ok := updates["role"]; ok {
		u.Role = Role(v.(string))
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), bcrypt.MinCost)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "admin",
		Email:    "admin@rihlah.example",
		Password: "correct horse battery",
		Role:     "Administrator",
	})
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{
		Username: "admin", Email: "admin@rihlah.example", Password: "password123", Role: "Staff",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserRequest{
		Username: "admin", Email: "other@rihlah.example", Password: "password123", Role: "Staff",
	})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), bcrypt.MinCost)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserRequest{
		Username: "staff", Email: "staff@rihlah.example", Password: "password123", Role: "Staff",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "staff", "password123")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(ctx, "staff", "wrong")
	require.ErrorIs(t, err, httpx.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost", "password123")
	require.ErrorIs(t, err, httpx.ErrInvalidCredentials)
}

func TestUpdateUserPasswordRehashes(t *testing.T) {
	svc := NewService(newMemoryUserRepo(), bcrypt.MinCost)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserRequest{
		Username: "staff", Email: "staff@rihlah.example", Password: "password123", Role: "Staff",
	})
	require.NoError(t, err)

	newPassword := "different-secret"
	_, err = svc.Update(ctx, created.ID, UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "staff", "password123")
	require.ErrorIs(t, err, httpx.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "staff", newPassword)
	require.NoError(t, err)
}
