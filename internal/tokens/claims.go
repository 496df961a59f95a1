package tokens

import "github.com/golang-jwt/jwt/v5"

type AccessClaims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Typ string `json:"typ"`
	jwt.RegisteredClaims
}
