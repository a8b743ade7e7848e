package auth

import "time"

// Claims representa la información extraída del token.
// AccessToken se conserva para reenviarlo como bearer al record store.
type Claims struct {
	UserID      string
	Email       string
	AccessToken string
}

// Session es el resultado del intercambio de credenciales.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
	ExpiresAt   time.Time
}

func (s Session) Claims() Claims {
	return Claims{UserID: s.UserID, Email: s.Email, AccessToken: s.AccessToken}
}
