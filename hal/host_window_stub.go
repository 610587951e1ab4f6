//go:build !cgo

package hal

import (
	"context"
	"fmt"
)

func RunWindow(_ context.Context, _ HostConfig, _ Program) error {
	return fmt.Errorf("window backend: %w (build with CGO_ENABLED=1)", ErrNotImplemented)
}
