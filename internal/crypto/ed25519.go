package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// GenerateEd25519 returns a new Ed25519 key pair as an unencrypted OpenSSH
// private key PEM and an authorized_keys public key line, both carrying
// comment.
func GenerateEd25519(comment string) (privatePEM, authorizedKey []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate ed25519 key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(priv, comment)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal private key: %w", err)
	}
	privatePEM = pem.EncodeToMemory(block)

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("create ssh public key: %w", err)
	}
	return privatePEM, authorizedKeyLine(sshPub, comment), nil
}

// authorizedKeyLine formats pub like ssh-keygen's .pub output.
func authorizedKeyLine(pub ssh.PublicKey, comment string) []byte {
	line := ssh.MarshalAuthorizedKey(pub) // ends in '\n'
	if comment == "" {
		return line
	}
	line = line[:len(line)-1]
	line = append(line, ' ')
	line = append(line, comment...)
	return append(line, '\n')
}
