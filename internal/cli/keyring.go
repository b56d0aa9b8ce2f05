package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/agenda/internal/keyring"
	"github.com/julianstephens/agenda/internal/storage"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	out := ctx.out()
	if !strings.HasPrefix(cmd.ConnectionString, "postgres://") &&
		!strings.HasPrefix(cmd.ConnectionString, "postgresql://") &&
		!strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := storage.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// Embedded credentials are acceptable inside the keyring itself.
		fmt.Fprintln(out, "⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Fprintln(out, "   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection string stored successfully in OS keyring")
	fmt.Fprintln(out, "  Select it with --source keyring")
	return nil
}

// KeyringDeleteCmd removes the connection string from the OS keyring.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Fprintln(ctx.out(), "✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd reports keyring availability and whether a connection
// string is stored.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	out := ctx.out()
	if !keyring.IsAvailable() {
		fmt.Fprintln(out, "❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Fprintln(out, "✓ OS keyring is available")

	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		fmt.Fprintf(out, "✓ Connection string is stored in keyring: %s\n", maskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Fprintln(out, "ℹ No connection string stored in keyring")
	default:
		return err
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		masked := make([]string, 0, len(parts))
		for _, part := range parts {
			if strings.HasPrefix(part, "password=") {
				part = "password=****"
			}
			masked = append(masked, part)
		}
		return strings.Join(masked, " ")
	}

	return connStr
}
