package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

const (
	AUTH_CALLER_KEY = "auth_caller"
	JWT_CLAIMS_KEY  = "jwt_claims"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	// Issuer, when set, must match the token's iss claim
	Issuer string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success bool
	Claims  *jwt.RegisteredClaims
	// Caller is the identity the token was issued to (its sub claim)
	Caller common.Address
	Error  error
}

// Authenticate validates the Authorization header and returns the authentication result.
// Only RSA-signed bearer tokens whose subject is an identity address are accepted.
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	result := AuthResult{
		Success: false,
	}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	// Parse the authorization header
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	if authType := strings.ToLower(parts[0]); authType != "bearer" {
		result.Error = fmt.Errorf("unsupported authorization type: %s", authType)
		return result
	}

	claims, err := validateJWT(parts[1], cfg)
	if err != nil {
		result.Error = err
		return result
	}

	caller, err := domain.ParseAddress(claims.Subject)
	if err != nil {
		result.Error = fmt.Errorf("token subject is not an identity: %w", err)
		return result
	}

	result.Success = true
	result.Claims = claims
	result.Caller = caller
	return result
}

// Auth returns a gin middleware that requires a valid bearer token and records the caller
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		result := Authenticate(authHeader, cfg)

		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(JWT_CLAIMS_KEY, result.Claims)
		c.Set(AUTH_CALLER_KEY, result.Caller)
		logger.DebugCtx(c.Request.Context(), "JWT authentication successful",
			zap.String("path", c.Request.URL.Path),
			zap.String("caller", result.Caller.Hex()),
		)

		c.Next()
	}
}

// CallerFromContext returns the authenticated caller recorded by Auth
func CallerFromContext(c *gin.Context) (common.Address, bool) {
	v, ok := c.Get(AUTH_CALLER_KEY)
	if !ok {
		return common.Address{}, false
	}
	caller, ok := v.(common.Address)
	return caller, ok
}

// validateJWT validates a JWT token with RSA signature and returns claims
func validateJWT(tokenString string, cfg AuthConfig) (*jwt.RegisteredClaims, error) {
	if cfg.JWTPublicKey == "" {
		return nil, errors.New("JWT public key not configured")
	}

	// Parse the RSA public key
	publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	var opts []jwt.ParserOption
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	// Parse and validate the token with claims
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is RSA
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	}, opts...)

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
