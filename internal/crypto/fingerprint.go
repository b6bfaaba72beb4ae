package crypto

import (
	"fmt"

	"golang.org/x/crypto/ssh"
)

// PublicKeyInfo is what a listing shows about a public key.
type PublicKeyInfo struct {
	Type        string
	Fingerprint string
	Comment     string
}

// ParsePublicKey parses an authorized_keys formatted line.
func ParsePublicKey(data []byte) (PublicKeyInfo, error) {
	pub, comment, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return PublicKeyInfo{}, fmt.Errorf("parse public key: %w", err)
	}
	return PublicKeyInfo{
		Type:        pub.Type(),
		Fingerprint: Fingerprint(pub),
		Comment:     comment,
	}, nil
}

// Fingerprint returns the SHA256 fingerprint in the form ssh-keygen -l prints.
func Fingerprint(pub ssh.PublicKey) string {
	return ssh.FingerprintSHA256(pub)
}
