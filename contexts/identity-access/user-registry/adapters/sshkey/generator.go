package sshkeyadapter

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
)

const keyBits = 2048

// Generator issues RSA key pairs: PKCS#8 PEM private half, OpenSSH
// authorized-key public half.
type Generator struct{}

func (Generator) Issue() (entities.KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return entities.KeyPair{}, fmt.Errorf("generate rsa key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return entities.KeyPair{}, fmt.Errorf("encode private key: %w", err)
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	sshPub, err := ssh.NewPublicKey(key.Public())
	if err != nil {
		return entities.KeyPair{}, fmt.Errorf("encode public key: %w", err)
	}
	public := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))

	return entities.KeyPair{
		PublicOpenSSH: public,
		PrivatePEM:    string(privatePEM),
	}, nil
}
