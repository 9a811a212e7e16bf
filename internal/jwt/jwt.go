package jwt

import (
	"errors"
	"strconv"
	"time"

	"blog-service/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

// ClaimsEnricher adds claims to an access token payload before it is signed.
type ClaimsEnricher func(claims jwt.MapClaims, user *model.User) jwt.MapClaims

type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	enrichers     []ClaimsEnricher
	now           func() time.Time
}

func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration, enrichers ...ClaimsEnricher) *TokenService {
	return &TokenService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		enrichers:     enrichers,
		now:           time.Now,
	}
}

func (s *TokenService) RefreshExpiry() time.Duration {
	return s.refreshExpiry
}

// AccessClaims builds the payload of an access token for user, enrichers
// included.
func (s *TokenService) AccessClaims(user *model.User) jwt.MapClaims {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"roles": user.Roles.Strings(),
		"typ":   TokenTypeAccess,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessExpiry).Unix(),
	}

	for _, enrich := range s.enrichers {
		claims = enrich(claims, user)
	}

	return claims
}

func (s *TokenService) GenerateTokens(user *model.User) (accessToken string, refreshToken string, err error) {
	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, s.AccessClaims(user)).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}

	now := s.now()
	refreshClaims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"jti": uuid.NewString(),
		"typ": TokenTypeRefresh,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshExpiry).Unix(),
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *TokenService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

// ValidateTyped validates tokenString and checks its "typ" claim.
func (s *TokenService) ValidateTyped(tokenString, typ string) (jwt.MapClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if got, _ := claims["typ"].(string); got != typ {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// PrincipalFromClaims extracts the acting principal from verified claims.
func PrincipalFromClaims(claims jwt.MapClaims) (model.Principal, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return model.Principal{}, errors.New("subject not found in claims")
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return model.Principal{}, errors.New("invalid subject format in claims")
	}

	principal := model.Principal{UserID: userID}
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if role, ok := r.(string); ok {
				principal.Roles = append(principal.Roles, model.Role(role))
			}
		}
	}

	return principal, nil
}
