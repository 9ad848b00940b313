package cache

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func LockKey(resource string) string {
	return fmt.Sprintf("lock:%s", resource)
}

func GetJSON(cache Client, ctx context.Context, key string, v interface{}) error {
	data, err := cache.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func SetJSON(cache Client, ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &Error{Operation: "serialize", Key: key, Err: err}
	}
	return cache.Set(ctx, key, data, ttl)
}

// serializeSetMap serializes a set (represented as a map) to a byte slice
// Format: Each member is stored as a length-prefixed string
// [len1][member1][len2][member2]...
func serializeSetMap(setMap map[string]struct{}) ([]byte, error) {
	var buf bytes.Buffer

	for member := range setMap {
		memberBytes := []byte(member)
		memberLen := len(memberBytes)

		// Write length as a 4-byte integer
		lenBytes := make([]byte, 4)
		lenBytes[0] = byte(memberLen >> 24)
		lenBytes[1] = byte(memberLen >> 16)
		lenBytes[2] = byte(memberLen >> 8)
		lenBytes[3] = byte(memberLen)

		buf.Write(lenBytes)
		buf.Write(memberBytes)
	}

	return buf.Bytes(), nil
}

// deserializeSetMap deserializes a byte slice to a set (represented as a map)
func deserializeSetMap(data []byte) (map[string]struct{}, error) {
	setMap := make(map[string]struct{})

	for i := 0; i < len(data); {
		// Need at least 4 bytes for the length
		if i+4 > len(data) {
			return nil, fmt.Errorf("invalid set data format")
		}

		// Read the member length
		memberLen := int(data[i])<<24 | int(data[i+1])<<16 | int(data[i+2])<<8 | int(data[i+3])
		i += 4

		// Check if we have enough bytes for the member
		if i+memberLen > len(data) {
			return nil, fmt.Errorf("invalid set data format")
		}

		// Read the member
		member := string(data[i : i+memberLen])
		i += memberLen

		// Add the member to the set
		setMap[member] = struct{}{}
	}

	return setMap, nil
}

// Helper functions for int64 conversion
func parseInt64(data []byte) (int64, error) {
	str := string(data)
	return strconv.ParseInt(str, 10, 64)
}

func formatInt64(value int64) []byte {
	return []byte(strconv.FormatInt(value, 10))
}
