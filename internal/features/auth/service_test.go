package auth

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"jzf-portal/internal/common/models"
	"jzf-portal/pkg/utils"
)

type mockUserRepo struct {
	user          *models.User
	lastLoginFor  primitive.ObjectID
	findUsernames []string
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.findUsernames = append(m.findUsernames, username)
	if m.user != nil && m.user.Username == username {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByClientID(ctx context.Context, clientID string) ([]models.User, error) {
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) { return nil, nil }

func (m *mockUserRepo) Update(ctx context.Context, id string, user *models.User) error { return nil }

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	m.lastLoginFor = id
	return nil
}

func seedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "joao",
		Name:     "João Cliente",
		Password: string(hash),
		Role:     models.RoleCliente,
	}
}

func TestLoginSuccess(t *testing.T) {
	utils.SetSecret("segredo-de-teste")

	repo := &mockUserRepo{user: seedUser(t, "senha123")}
	svc := NewAuthService(repo)

	token, u, err := svc.Login(context.Background(), "joao", "senha123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if u == nil || u.Username != "joao" {
		t.Errorf("user = %+v", u)
	}
	if repo.lastLoginFor != repo.user.ID {
		t.Error("last login must be recorded for the user")
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != repo.user.ID.Hex() {
		t.Errorf("claims user id = %q", claims.UserID)
	}
	if claims.Role != string(models.RoleCliente) {
		t.Errorf("claims role = %q", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	utils.SetSecret("segredo-de-teste")

	svc := NewAuthService(&mockUserRepo{user: seedUser(t, "senha123")})

	_, _, err := svc.Login(context.Background(), "joao", "senha-errada")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	utils.SetSecret("segredo-de-teste")

	svc := NewAuthService(&mockUserRepo{})

	_, _, err := svc.Login(context.Background(), "ninguem", "senha")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
