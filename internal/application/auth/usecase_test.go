package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Costeo-api/internal/application/auth"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/pkg/config"
	pkgjwt "github.com/jhoicas/Costeo-api/pkg/jwt"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	// Costo mínimo: estos hashes solo viven lo que dura el test.
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	return auth.NewAuthUseCase(
		config.AuthConfig{
			AdminUser:        "admin",
			AdminPassHash:    hashFor(t, "clave-admin"),
			OperatorUser:     "operador",
			OperatorPassHash: hashFor(t, "clave-operador"),
		},
		config.JWTConfig{Secret: "test-secret", Issuer: "costeo-api-test", Expiration: 480},
	)
}

func TestLogin_AdminOK(t *testing.T) {
	uc := newAuthUC(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-admin"})
	require.NoError(t, err)

	assert.Equal(t, auth.RoleAdmin, resp.Role)
	assert.Equal(t, 480*60, resp.ExpiresIn, "expiración en segundos")

	username, role, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
	assert.Equal(t, auth.RoleAdmin, role)
}

func TestLogin_OperadorOK(t *testing.T) {
	uc := newAuthUC(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "operador", Password: "clave-operador"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleOperator, resp.Role)
}

// Usuario inexistente y contraseña incorrecta responden igual:
// no se filtra cuál de los dos falló.
func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "clave-mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "intruso", Password: "clave-admin"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Cuenta sin hash configurado queda deshabilitada.
func TestLogin_CuentaSinHash(t *testing.T) {
	uc := auth.NewAuthUseCase(
		config.AuthConfig{AdminUser: "admin", OperatorUser: "operador"},
		config.JWTConfig{Secret: "test-secret", Issuer: "costeo-api-test", Expiration: 480},
	)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "cualquiera"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EntradaVacia(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
