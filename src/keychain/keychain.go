package keychain

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	serviceName  = "tgbot-hydrate"
	tokenAccount = "bot_token"
)

// Token returns the bot token stored in the system keychain, or "" when
// none has been stored.
func Token() (string, error) {
	token, err := keyring.Get(serviceName, tokenAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// SetToken stores the bot token in the system keychain.
func SetToken(token string) error {
	return keyring.Set(serviceName, tokenAccount, token)
}

// DeleteToken removes the bot token from the system keychain. Deleting a
// token that was never stored is not an error.
func DeleteToken() error {
	err := keyring.Delete(serviceName, tokenAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
