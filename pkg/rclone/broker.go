package rclone

import (
	"context"

	"github.com/browsey/browsey/pkg/logging"
)

// Broker translates cloud primitives into rclone subprocess invocations. It
// is the sole owner of the version-probe/startup-cooldown cache for its
// resolved binary; callers typically hold one Broker per process (or one
// per distinct rclone binary path, in the unusual case of more than one
// configured).
type Broker struct {
	cli    cli
	probes *probeCache

	// ShuttingDown, if set, is consulted before every subprocess spawn; a
	// true result short-circuits to ErrorCodeShutdown without spawning,
	// mirroring the runtime lifecycle's emit_if_running contract for
	// in-flight broker calls racing a shutdown.
	ShuttingDown func() bool
}

// New creates a Broker that invokes the rclone binary at binaryPath,
// typically the path pkg/process.Resolver resolved for "rclone".
func New(binaryPath string, logger *logging.Logger) *Broker {
	return &Broker{
		cli:    cli{binary: binaryPath, logger: logger},
		probes: newProbeCache(),
	}
}

// checkShutdown returns ErrorCodeShutdown if ShuttingDown is set and
// reports true, otherwise nil.
func (b *Broker) checkShutdown() error {
	if b.ShuttingDown != nil && b.ShuttingDown() {
		return newError(ErrorCodeShutdown, "rclone broker is shutting down")
	}
	return nil
}

// ready runs the shutdown check followed by the version probe; every
// public broker method calls this before doing anything else.
func (b *Broker) ready() error {
	if err := b.checkShutdown(); err != nil {
		return err
	}
	return b.ensureRuntimeReady()
}

// run is a convenience wrapper combining readiness + subprocess execution,
// used by operations that don't need to parse the stdout payload.
func (b *Broker) run(ctx context.Context, args ...string) (string, error) {
	if err := b.ready(); err != nil {
		return "", err
	}
	return b.cli.runCaptureText(ctx, args...)
}
