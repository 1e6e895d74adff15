package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/Facturacion-api/internal/application/access"
	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/gormstore"
)

type env struct {
	db        *gorm.DB
	companies *CompanyUseCase
	users     *UserUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := gormstore.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	companyRepo := gormstore.NewCompanyRepository(db)
	return &env{
		db:        db,
		companies: NewCompanyUseCase(companyRepo),
		users:     NewUserUseCase(gormstore.NewUserRepository(db), companyRepo),
	}
}

// seed crea empresa + usuario con password "12345678" y devuelve su caller.
func (e *env) seed(t *testing.T, role, email string) access.Caller {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	c := &entity.Company{ID: uuid.NewString(), Name: "Acme " + email, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, gormstore.NewCompanyRepository(e.db).Create(ctx, c))
	hash, err := auth.HashPassword("12345678")
	require.NoError(t, err)
	u := &entity.User{ID: uuid.NewString(), CompanyID: c.ID, Name: "U", Email: email, PasswordHash: hash, Role: role, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, gormstore.NewUserRepository(e.db).Create(ctx, u))
	return access.Caller{UserID: u.ID, CompanyID: c.ID, Role: role}
}

func TestCompanyUpdate_SoloAdmin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.seed(t, entity.RoleAdmin, "admin@x.com")
	user := access.Caller{UserID: uuid.NewString(), CompanyID: admin.CompanyID, Role: entity.RoleUser}

	name := "Nuevo nombre"
	_, err := e.companies.Update(ctx, user, dto.UpdateCompanyRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	web := "https://acme.io"
	got, err := e.companies.Update(ctx, admin, dto.UpdateCompanyRequest{Name: &name, Website: &web})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo nombre", got.Name)
	assert.Equal(t, "https://acme.io", got.Website)

	empty := " "
	_, err = e.companies.Update(ctx, admin, dto.UpdateCompanyRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cualquier usuario de la empresa puede leerla
	read, err := e.companies.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo nombre", read.Name)
}

func TestCompanyUpdateLogo_ValidaURL(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.seed(t, entity.RoleAdmin, "admin@x.com")
	user := access.Caller{UserID: uuid.NewString(), CompanyID: admin.CompanyID, Role: entity.RoleUser}

	_, err := e.companies.UpdateLogo(ctx, user, dto.UpdateLogoRequest{LogoURL: "https://cdn.x/logo.png"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.companies.UpdateLogo(ctx, admin, dto.UpdateLogoRequest{LogoURL: "ftp://x/logo.png"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := e.companies.UpdateLogo(ctx, admin, dto.UpdateLogoRequest{LogoURL: "https://cdn.x/logo.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.x/logo.png", got.Logo)
}

func TestUserCreate_YListadoPorEmpresa(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.seed(t, entity.RoleAdmin, "admin@x.com")
	other := e.seed(t, entity.RoleAdmin, "other@y.com")

	created, err := e.users.Create(ctx, admin, dto.CreateUserRequest{Name: "Vendedor", Email: "v@x.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, created.Role)
	assert.Equal(t, admin.CompanyID, created.CompanyID)

	// email único en todo el sistema
	_, err = e.users.Create(ctx, other, dto.CreateUserRequest{Email: "V@x.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = e.users.Create(ctx, admin, dto.CreateUserRequest{Email: "r@x.com", Password: "12345678", Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	userCaller := access.Caller{UserID: created.ID, CompanyID: admin.CompanyID, Role: entity.RoleUser}
	_, err = e.users.Create(ctx, userCaller, dto.CreateUserRequest{Email: "z@x.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.users.List(ctx, userCaller, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := e.users.List(ctx, admin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, u := range list {
		assert.Equal(t, admin.CompanyID, u.CompanyID)
	}
}

func TestUserMe_YActualizarPerfil(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	me := e.seed(t, entity.RoleUser, "me@x.com")
	e.seed(t, entity.RoleUser, "taken@y.com")

	profile, err := e.users.Me(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, "me@x.com", profile.Email)
	assert.Equal(t, "Acme me@x.com", profile.CompanyName)

	_, err = e.users.UpdateMe(ctx, me, dto.UpdateProfileRequest{Email: "taken@y.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = e.users.UpdateMe(ctx, me, dto.UpdateProfileRequest{NewPassword: "nueva-clave", CurrentPassword: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := e.users.UpdateMe(ctx, me, dto.UpdateProfileRequest{
		Name: "Yo", Email: "Yo@X.com", CurrentPassword: "12345678", NewPassword: "nueva-clave",
	})
	require.NoError(t, err)
	assert.Equal(t, "Yo", updated.Name)
	assert.Equal(t, "yo@x.com", updated.Email)

	stored, err := gormstore.NewUserRepository(e.db).GetByID(ctx, me.CompanyID, me.UserID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "nueva-clave"))

	_, err = e.users.Me(ctx, access.Caller{UserID: me.UserID, CompanyID: uuid.NewString(), Role: "user"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
