package entitlement

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Claims is the signed payload of an entitlement token. Field order is
// fixed by declaration so minted payloads are byte-stable.
type Claims struct {
	CustomerID string `json:"customer_id"`
	Exp        int64  `json:"exp"`
	Nonce      string `json:"nonce"`
	SubID      string `json:"sub_id"`
}

// Signer mints and parses HMAC-SHA256 entitlement tokens. A token is
// base64url(payload) + "." + hex(HMAC over the encoded payload).
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Mint(expiresAt time.Time, subID, customerID string) (string, error) {
	claims := Claims{
		CustomerID: customerID,
		Exp:        expiresAt.Unix(),
		Nonce:      uuid.NewString(),
		SubID:      subID,
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

// Parse validates the signature and decodes the claims. Any malformed or
// tampered token reports ok=false; callers never learn why.
func (s *Signer) Parse(token string) (*Claims, bool) {
	idx := strings.LastIndex(token, ".")
	if idx <= 0 || idx == len(token)-1 {
		return nil, false
	}
	encoded, signature := token[:idx], token[idx+1:]

	if !hmac.Equal([]byte(signature), []byte(s.sign(encoded))) {
		return nil, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}
	if claims.SubID == "" {
		return nil, false
	}
	return &claims, true
}

func (s *Signer) sign(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}
