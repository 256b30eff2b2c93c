package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Kundli Configuration

[storage]
# SQLite database holding generated charts (default: <config dir>/kundli.db)
# path = "/var/lib/kundli/kundli.db"

[server]
host = "127.0.0.1"
port = 8080
read_timeout = "15s"
write_timeout = "15s"
# Origins allowed by CORS
allowed_origins = ["*"]

[logging]
# Level: debug, info, warn, error
level = "info"
console = true
file = true
# Rotation: size in MB, age in days
max_size = 100
max_backups = 7
max_age = 30

[ephemeris]
# Position provider: "mock" (fixed sample chart) or "file" (chart read from chart_file)
provider = "mock"
chart_file = ""

[batch]
# Charts generated in parallel by 'kundli batch'
concurrency = 4

[validation]
# Reject charts whose position markers are malformed
strict = true

[ui]
color_enabled = true
date_format = "02-Jan-2006 15:04 MST"
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
