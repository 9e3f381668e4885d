package jwtPkg

import (
	"DriverGuard/internal/entity"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"os"
	"strings"
	"time"
)

const OperatorLocalsKey = "operator"

func Sign(Data map[string]interface{}, ExpiredAt time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(ExpiredAt).Unix()

	JWTSecretKey := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if JWTSecretKey == "" {
		return "", 0, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET not set")
	}

	claims := jwt.MapClaims{}
	claims["exp"] = expiredAt
	claims["authorization"] = true

	for i, v := range Data {
		claims[i] = v
	}

	logrus.WithField("claims", claims).Debug("Creating token with claims")

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := to.SignedString([]byte(JWTSecretKey))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	log := logrus.WithField("func", "VerifyTokenHeader")

	header := c.Get("Authorization")
	if header == "" {
		log.Debug("Empty Authorization header")
		return nil, errors.New("empty Authorization header")
	}

	accessToken, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		log.Debug("Invalid Authorization format")
		return nil, errors.New("invalid Authorization format")
	}

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		log.Debug("Empty token after Bearer")
		return nil, errors.New("empty token")
	}

	JWTSecretKey := os.Getenv(secretEnvKey)
	if JWTSecretKey == "" {
		log.Error("JWT secret environment variable not set")
		return nil, errors.New("JWT secret not configured")
	}

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(JWTSecretKey), nil
	})

	if err != nil {
		log.WithError(err).Debug("Failed to parse JWT token")
		return nil, err
	}

	return token, nil
}

// OperatorFromClaims reads the operator identity carried in a verified token.
func OperatorFromClaims(token *jwt.Token) (entity.Operator, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return entity.Operator{}, errors.New("invalid token claims")
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return entity.Operator{}, errors.New("token missing operator id")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return entity.Operator{
		ID:       id,
		Username: username,
		Role:     role,
	}, nil
}

func GetOperator(c *fiber.Ctx) (entity.Operator, error) {
	operator, ok := c.Locals(OperatorLocalsKey).(entity.Operator)
	if !ok {
		return entity.Operator{}, fiber.ErrUnauthorized
	}

	return operator, nil
}
