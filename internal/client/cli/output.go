package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
	"github.com/dmitrijs2005/notekeeper/internal/client/validate"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report shows err to the user and logs it. Field errors are listed one per
// line; API errors show their user-facing message.
func (a *App) report(ctx context.Context, op string, err error) {
	var (
		fe     validate.FieldErrors
		apiErr *api.Error
	)

	switch {
	case errors.As(err, &fe):
		for _, f := range fe.Fields() {
			a.printf("  %s: %s\n", f, fe[f])
		}
		a.log.Debug(ctx, op+" rejected by validation", "fields", fe.Fields())
		return

	case errors.As(err, &apiErr):
		switch apiErr.Kind {
		case api.KindUnauthorized:
			a.println("Your session is no longer valid. Please log in again.")
		case api.KindTransport:
			a.println("Could not reach the server. Try again later.")
		default:
			a.println("Error:", apiErr.Message)
		}
		a.log.Warn(ctx, op+" failed", "kind", apiErr.Kind.String(), "status", apiErr.Status, "error", err)
		return
	}

	a.println("Error:", err)
	a.log.Error(ctx, op+" failed", "error", err)
}
