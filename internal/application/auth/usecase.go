package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/jwt"
)

// Roles del sistema.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// AuthUseCase autentica contra las dos cuentas fijas de la configuración
// (instalaciones de un solo taller: no hay tabla de usuarios) y emite JWT.
type AuthUseCase struct {
	authCfg config.AuthConfig
	jwtCfg  config.JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(authCfg config.AuthConfig, jwtCfg config.JWTConfig) *AuthUseCase {
	return &AuthUseCase{authCfg: authCfg, jwtCfg: jwtCfg}
}

// Login verifica credenciales con bcrypt y devuelve un token firmado.
// Credenciales incorrectas o cuenta sin hash configurado: ErrUnauthorized,
// sin distinguir usuario inexistente de contraseña incorrecta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		hash string
		role string
	)
	switch in.Username {
	case uc.authCfg.AdminUser:
		hash = uc.authCfg.AdminPassHash
		role = RoleAdmin
	case uc.authCfg.OperatorUser:
		hash = uc.authCfg.OperatorPassHash
		role = RoleOperator
	default:
		return nil, domain.ErrUnauthorized
	}
	if hash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Role:      role,
		ExpiresIn: uc.jwtCfg.Expiration * 60,
	}, nil
}
