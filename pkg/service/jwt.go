package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "field-service/pkg/errors"
)

// JwtCustomClaim mirrors the claims issued by the field-service auth endpoint.
type JwtCustomClaim struct {
	UserID         int64    `json:"userId"`
	Roles          []string `json:"roles"`
	IsRefreshToken bool     `json:"isRefreshToken"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID int64, roles []string) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
}

type jwtService struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	logger          *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		SecretKey:       secretKey,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
		logger:          logger,
	}
}

// GenerateTokens is used by the CLI and tests; production tokens come from the auth endpoint.
func (service *jwtService) GenerateTokens(userID int64, roles []string) (string, string, error) {
	now := time.Now()

	accessTokenClaims := &JwtCustomClaim{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.AccessTokenExp)),
		},
	}
	refreshTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		Roles:          roles,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.RefreshTokenExp)),
		},
	}

	accessTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, accessTokenClaims).SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", "", err
	}
	refreshTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshTokenClaims).SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenString, nil
}

func (service *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		service.logger.Debug("token parse failed", zap.Error(err))
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
