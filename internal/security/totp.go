package security

import (
	"strings"

	"github.com/pquerna/otp/totp"
)

// totpIssuer is shown in authenticator apps.
const totpIssuer = "KedaiKita"

// GenerateTOTPSecret creates a new TOTP secret and its provisioning URL for
// the given admin account.
func GenerateTOTPSecret(accountName string) (secret string, url string, err error) {
	key, errGen := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: accountName,
	})
	if errGen != nil {
		return "", "", errGen
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTP checks a 6-digit code against the stored secret.
func ValidateTOTP(code, secret string) bool {
	code = strings.TrimSpace(code)
	if code == "" || secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}
