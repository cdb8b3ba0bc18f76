package utils

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashRespondent băm id người trả lời bằng BLAKE2b-256 có khoá (salt),
// để DB không lưu id gốc. Id rỗng trả về "".
func HashRespondent(salt, respondentID string) string {
	id := strings.TrimSpace(respondentID)
	if id == "" {
		return ""
	}

	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// key đã được giới hạn <= 64 byte nên không xảy ra
		panic(err)
	}
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil))
}
