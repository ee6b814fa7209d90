package verify

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseChecksums reads a sha256sum-style manifest ("<hex>  <filename>" per line)
// into a filename -> lowercase digest map. Blank lines are ignored; a leading
// '*' on the filename (binary mode marker) is dropped.
func ParseChecksums(data []byte) (map[string]string, error) {
	checksums := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected digest and filename", lineNo)
		}

		digest := strings.ToLower(parts[0])
		if raw, err := hex.DecodeString(digest); err != nil || len(raw) != 32 {
			return nil, fmt.Errorf("line %d: invalid sha256 digest %q", lineNo, parts[0])
		}
		checksums[strings.TrimPrefix(parts[1], "*")] = digest
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading checksums: %w", err)
	}
	return checksums, nil
}
