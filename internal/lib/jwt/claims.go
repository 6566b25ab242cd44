// Package jwt проверяет токены внешнего провайдера идентификации и извлекает из них пользователя.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// Claims данные пользователя, которые провайдер кладет в токен.
type Claims struct {
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Picture    string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Identity переводит claims в профиль пользователя.
func (c *Claims) Identity() models.Identity {
	return models.Identity{
		Subject:         c.Subject,
		Email:           c.Email,
		FirstName:       c.GivenName,
		LastName:        c.FamilyName,
		ProfileImageURL: c.Picture,
	}
}
