package session

import (
	"github.com/colorcarnival/carnival/constant"
	"github.com/zalando/go-keyring"
)

const keyringUser = "session-token"

func saveToken(token string) error {
	return keyring.Set(constant.Carnival, keyringUser, token)
}

// Token returns the session token kept in the system keyring.
func Token() (string, error) {
	return keyring.Get(constant.Carnival, keyringUser)
}

func deleteToken() error {
	err := keyring.Delete(constant.Carnival, keyringUser)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
