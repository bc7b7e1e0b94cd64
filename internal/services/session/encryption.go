package session

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"github.com/rs/zerolog/log"
)

// seal encrypts data to recipient and returns it as a cookie-safe string
func seal(data []byte, recipient age.Recipient) (string, error) {
	var buf bytes.Buffer

	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// unseal reverses seal
func unseal(value string, identity age.Identity) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}

	r, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// LoadOrCreateIdentity reads an age X25519 identity from path. When the file
// does not exist a new identity is generated and written there. An empty path
// yields an ephemeral identity, so cookies stop decrypting after a restart.
func LoadOrCreateIdentity(path string) (*age.X25519Identity, error) {
	if path == "" {
		log.Warn().Msg("no session key file configured; using an ephemeral key")
		return age.GenerateX25519Identity()
	}

	data, err := os.ReadFile(path)
	if err == nil {
		identity, err := age.ParseX25519Identity(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("parse session key %s: %w", path, err)
		}
		return identity, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read session key %s: %w", path, err)
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(identity.String()+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("write session key %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("generated new session key")
	return identity, nil
}
