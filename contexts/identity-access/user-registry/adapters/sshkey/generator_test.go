package sshkeyadapter

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestIssueProducesUsablePair(t *testing.T) {
	pair, err := Generator{}.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if !strings.HasPrefix(pair.PublicOpenSSH, "ssh-rsa ") {
		t.Fatalf("public key not in authorized-key form: %q", pair.PublicOpenSSH[:20])
	}
	if strings.HasSuffix(pair.PublicOpenSSH, "\n") {
		t.Fatal("public key should not carry a trailing newline")
	}
	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(pair.PublicOpenSSH))
	if err != nil {
		t.Fatalf("public key does not parse: %v", err)
	}
	if pub.Type() != "ssh-rsa" {
		t.Fatalf("unexpected key type %s", pub.Type())
	}

	block, _ := pem.Decode([]byte(pair.PrivatePEM))
	if block == nil || block.Type != "PRIVATE KEY" {
		t.Fatal("private key is not a PKCS#8 PEM block")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		t.Fatalf("private key does not parse: %v", err)
	}
	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		t.Fatalf("expected rsa key, got %T", parsed)
	}
	if rsaKey.N.BitLen() != 2048 {
		t.Fatalf("expected 2048-bit modulus, got %d", rsaKey.N.BitLen())
	}
}

func TestIssueKeysAreUnique(t *testing.T) {
	first, err := Generator{}.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	second, err := Generator{}.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if first.PublicOpenSSH == second.PublicOpenSSH {
		t.Fatal("two issued pairs share a public key")
	}
}
