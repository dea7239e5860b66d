package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// ToggleThemeInput flips the dashboard theme.
type ToggleThemeInput struct{}

type themeToggler interface {
	ToggleTheme(ctx context.Context) dashboard.ThemeMode
}

// ToggleThemeCommand switches between light and dark mode.
type ToggleThemeCommand struct {
	service   themeToggler
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(service themeToggler, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

// Execute toggles the theme.
func (c *ToggleThemeCommand) Execute(ctx context.Context, _ ToggleThemeInput) error {
	if c.service == nil {
		return errors.New("toggle theme command requires service")
	}
	mode := c.service.ToggleTheme(ctx)
	c.telemetry.Record(ctx, "dashboard.command.theme", map[string]any{"mode": string(mode)})
	return nil
}
