package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// RenderDotenv renders outputs in the format azd keeps in .azure/<env>/.env
func RenderDotenv(outputs map[string]string) (string, error) {
	content, err := godotenv.Marshal(outputs)
	if err != nil {
		return "", fmt.Errorf("failed to render outputs: %w", err)
	}
	return content + "\n", nil
}

// WriteDotenv writes outputs to a dotenv file, merging over existing keys
func WriteDotenv(outputs map[string]string, path string) error {
	merged := make(map[string]string, len(outputs))
	if _, err := os.Stat(path); err == nil {
		existing, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range outputs {
		merged[k] = v
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := godotenv.Write(merged, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
