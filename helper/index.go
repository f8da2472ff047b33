package helper

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ALuiell/Cinema/model"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["userId"] = tokenClaim.UserID
	claims["isManager"] = tokenClaim.IsManager
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
}

// GetInfoUserFromToken extracts the acting user's identity from the JWT the
// auth middleware stored in locals.
func GetInfoUserFromToken(c *fiber.Ctx) (model.TokenClaim, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New("malformed token claims")
	}

	var claim model.TokenClaim
	if v, ok := claims["userId"].(float64); ok {
		claim.UserID = uint(v)
	}
	if v, ok := claims["username"].(string); ok {
		claim.Username = v
	}
	if v, ok := claims["isManager"].(bool); ok {
		claim.IsManager = v
	}
	if claim.UserID == 0 {
		return claim, errors.New("token carries no user id")
	}
	return claim, nil
}
