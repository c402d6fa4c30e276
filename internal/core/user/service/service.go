package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nodebird/internal/core/errs"
	userEntity "nodebird/internal/core/user"
	userPort "nodebird/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "nodebird"

// UserService registers users and checks their credentials.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	tokenTTL       time.Duration
	logger         *zap.Logger
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// RegisterUser creates a user with a bcrypt-hashed password.
func (s *UserService) RegisterUser(ctx context.Context, email, nickname, password string) (*userPort.UserDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	nickname = strings.TrimSpace(nickname)

	candidate := &userEntity.User{Email: email, Nickname: nickname, Password: password}
	if err := candidate.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("field %s failed %s: %w", verrs[0].Field(), verrs[0].Tag(), errs.ErrValidation)
		}
		return nil, fmt.Errorf("%v: %w", err, errs.ErrValidation)
	}

	if existing, err := s.UserRepository.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, errs.ErrConstraint)
	} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	candidate.Password = string(hashed)

	u, err := s.UserRepository.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user registered", zap.String("userID", u.ID.String()))
	return ToUserDTO(u), nil
}

// LoginUser checks the password and issues a signed token.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", errs.ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Debug("password mismatch", zap.String("userID", u.ID.String()))
		return nil, fmt.Errorf("invalid credentials: %w", errs.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &userPort.LoginResponse{
		User:      ToUserDTO(u),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*userPort.UserDTO, error) {
	id, err := uuid.FromString(userID)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", userID, errs.ErrNotFound)
	}
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func ToUserDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:        u.ID.String(),
		Email:     u.Email,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
}
