package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for backup records.
// Security is prioritized over performance.
//
// N=2^18 (~256MB RAM, 0.5-2s) - optimal balance:
//   - Maximum security while remaining compatible with mobile devices
//   - Works on phones (4-16GB RAM) and desktops alike
//   - Brute-force attacks remain extremely expensive
//
// Note: N=2^20 (~1GB) offers the highest security but fails on mobile due
// to per-app memory limits (~256-512MB typically).
const (
	defaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12
)

// backupFormatVersion is serialized into every record. Bump it when the
// plaintext layout or the KDF/cipher pair changes.
const backupFormatVersion = 1

// BackupRecord is the portable encrypted container for one account's
// private key. Byte-for-byte interoperable across platforms; opaque to
// everything except the codec.
type BackupRecord struct {
	Version    int    `json:"version"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// Marshal renders the record as its canonical JSON wire form.
func (r *BackupRecord) Marshal() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup record: %w", err)
	}
	return string(data), nil
}

// ParseBackupRecord parses the JSON wire form of a record. A record that
// does not parse, or whose version is unknown, is corrupted data.
func ParseBackupRecord(s string) (*BackupRecord, error) {
	var rec BackupRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return nil, &CorruptedDataError{cause: fmt.Errorf("failed to unmarshal backup record: %w", err)}
	}
	if rec.Version != backupFormatVersion {
		return nil, &CorruptedDataError{cause: fmt.Errorf("unsupported backup format version %d", rec.Version)}
	}
	return &rec, nil
}

// BackupCodec encrypts and decrypts private keys under a user passphrase.
// The KDF parameters live on the value so callers with different CPU/RAM
// budgets (or tests) can tune them; the zero-parameter codec from
// DefaultCodec uses the production-strength settings.
type BackupCodec struct {
	scryptN int
}

// DefaultCodec returns a codec with production scrypt parameters.
func DefaultCodec() *BackupCodec {
	return &BackupCodec{scryptN: defaultScryptN}
}

// NewBackupCodec returns a codec with a custom scrypt N (must be a power
// of two > 1). Records are only portable between codecs with equal
// parameters.
func NewBackupCodec(scryptN int) *BackupCodec {
	return &BackupCodec{scryptN: scryptN}
}

// Encrypt derives a key from passphrase with a fresh random salt, seals
// privateKey plus its checksum under AES-256-GCM with a random nonce, and
// returns the portable record. Two calls with identical inputs produce
// different records.
// passphrase must be []byte for security (caller should zero it after use).
func (c *BackupCodec) Encrypt(privateKey []byte, passphrase []byte) (*BackupRecord, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key, err := scrypt.Key(passphrase, salt, c.scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Plaintext layout: privateKey || sha256(privateKey). GCM already
	// authenticates the ciphertext; the checksum additionally pins the
	// decrypted bytes to the key material across format versions.
	sum := sha256.Sum256(privateKey)
	plaintext := make([]byte, 0, len(privateKey)+len(sum))
	plaintext = append(plaintext, privateKey...)
	plaintext = append(plaintext, sum[:]...)
	defer clear(plaintext)

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &BackupRecord{
		Version:    backupFormatVersion,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Decrypt re-derives the key from passphrase and the record's salt,
// decrypts, and verifies the embedded checksum. A wrong passphrase and
// tampered ciphertext are indistinguishable by design: both return
// *CryptoError.
// passphrase must be []byte for security (caller should zero it after use).
func (c *BackupCodec) Decrypt(rec *BackupRecord, passphrase []byte) ([]byte, error) {
	if rec.Version != backupFormatVersion {
		return nil, &CorruptedDataError{cause: fmt.Errorf("unsupported backup format version %d", rec.Version)}
	}

	salt, err := base64.StdEncoding.DecodeString(rec.Salt)
	if err != nil {
		return nil, &CorruptedDataError{cause: fmt.Errorf("failed to decode salt: %w", err)}
	}
	nonce, err := base64.StdEncoding.DecodeString(rec.Nonce)
	if err != nil {
		return nil, &CorruptedDataError{cause: fmt.Errorf("failed to decode nonce: %w", err)}
	}
	ciphertext, err := base64.StdEncoding.DecodeString(rec.CipherText)
	if err != nil {
		return nil, &CorruptedDataError{cause: fmt.Errorf("failed to decode ciphertext: %w", err)}
	}
	if len(nonce) != nonceLen {
		return nil, &CorruptedDataError{cause: fmt.Errorf("unexpected nonce length %d", len(nonce))}
	}

	key, err := scrypt.Key(passphrase, salt, c.scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, &CryptoError{cause: err}
	}

	if len(plaintext) <= sha256.Size {
		clear(plaintext)
		return nil, &CryptoError{cause: fmt.Errorf("plaintext too short")}
	}
	privateKey := plaintext[:len(plaintext)-sha256.Size]
	checksum := plaintext[len(plaintext)-sha256.Size:]
	sum := sha256.Sum256(privateKey)
	if !bytes.Equal(checksum, sum[:]) {
		clear(plaintext)
		return nil, &CryptoError{cause: fmt.Errorf("checksum mismatch")}
	}

	out := make([]byte, len(privateKey))
	copy(out, privateKey)
	clear(plaintext)
	return out, nil
}
