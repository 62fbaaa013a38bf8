package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/manager"
	"github.com/carson-networks/service-console/internal/validation"
	"github.com/carson-networks/service-console/internal/views/banking"
)

// formMessage explains an error raised before any API call, or "".
func formMessage(err error) string {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return verrs.Error()
	case errors.Is(err, banking.ErrInsufficientFunds):
		return "Withdrawal amount exceeds current balance"
	case errors.Is(err, manager.ErrBusy):
		return "Another request is still in progress"
	case errors.Is(err, manager.ErrNoParent):
		return "Nothing is selected"
	default:
		return ""
	}
}

// submitMessage prefers the local explanation, then the manager banner.
func submitMessage(err error, managerMessage string) string {
	if msg := formMessage(err); msg != "" {
		return msg
	}
	if managerMessage != "" {
		return managerMessage
	}
	return err.Error()
}

// loadMessage picks the banner for a selection whose dependent lists failed to load.
func loadMessage(err error, managerMessages ...string) string {
	for _, msg := range managerMessages {
		if msg != "" {
			return msg
		}
	}
	return apiclient.MessageOf(err, "Failed to load")
}

func newHealthCommand(short string, check func(ctx context.Context) (string, error), app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := check(cmd.Context())
			if err != nil {
				return fail(app.errOut, apiclient.MessageOf(err, "Health check failed"), err)
			}
			success(app.out, "OK: %s", msg)
			return nil
		},
	}
}
