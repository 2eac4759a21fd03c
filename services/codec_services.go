package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"api/utils"
)

// DecodeGameData decodes a stored puzzle blob, base64 over DEFLATE over
// JSON, into the game definition. The blob is opaque to everything else in
// the system.
func DecodeGameData(blob string) (map[string]interface{}, error) {
	compressed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode game data: %w", err)
	}

	reader := flate.NewReader(bytes.NewReader(compressed))
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress game data: %w", err)
	}

	var gameData map[string]interface{}
	if err := utils.UnmarshalJSON(raw, &gameData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game data: %w", err)
	}
	return gameData, nil
}

// EncodeGameData is the inverse of DecodeGameData, used for seeding and
// tests.
func EncodeGameData(gameData interface{}) (string, error) {
	raw, err := utils.MarshalJSON(gameData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal game data: %w", err)
	}

	var buf bytes.Buffer
	writer, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return "", err
	}
	if _, err := writer.Write(raw); err != nil {
		return "", fmt.Errorf("failed to compress game data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
