package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urmu/storefront/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	now       func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		now:       time.Now,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateSessionToken signs a token that references the server-side session.
// It expires together with the session.
func (j *JWTServiceImpl) GenerateSessionToken(session *domain.Session) (string, error) {
	if session == nil || session.ID == "" {
		return "", errors.New("session id is required to issue a token")
	}
	now := j.now()
	claims := jwt.MapClaims{
		"user_phone": session.Phone,
		"role":       session.Role,
		"session_id": session.ID,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        session.ExpiresAt.Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateSessionToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateSessionToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, domain.ErrTokenMalformed
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	phone, _ := claims["user_phone"].(string)

	return &domain.TokenClaims{
		Phone:     phone,
		Role:      role,
		SessionID: sessionID,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
