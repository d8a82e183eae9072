package rclone

import (
	"context"

	"github.com/browsey/browsey/pkg/cloudpath"
)

// Mkdir creates path (and any missing parents, per rclone's own mkdir
// semantics).
func (b *Broker) Mkdir(ctx context.Context, path cloudpath.Path) error {
	_, err := b.run(ctx, "mkdir", path.String())
	return err
}

// DeleteFile removes the single file at path.
func (b *Broker) DeleteFile(ctx context.Context, path cloudpath.Path) error {
	_, err := b.run(ctx, "deletefile", path.String())
	return err
}

// DeleteDirEmpty removes path, which must already be empty.
func (b *Broker) DeleteDirEmpty(ctx context.Context, path cloudpath.Path) error {
	_, err := b.run(ctx, "rmdir", path.String())
	return err
}

// DeleteDirRecursive removes path and everything beneath it.
func (b *Broker) DeleteDirRecursive(ctx context.Context, path cloudpath.Path) error {
	_, err := b.run(ctx, "purge", path.String())
	return err
}

// TransferOptions controls the overwrite/pre-check behavior of Move and
// Copy.
type TransferOptions struct {
	// Overwrite allows clobbering an existing destination. When false,
	// --ignore-existing is passed so rclone refuses rather than clobbering.
	Overwrite bool
	// Prechecked indicates the caller has already verified the destination
	// doesn't exist (or that overwrite is intended), letting the broker
	// skip any additional pre-existence probe of its own. It exists purely
	// to document caller intent; the broker doesn't currently perform a
	// separate probe regardless, since rclone's own move/copy already
	// handles existence checking.
	Prechecked bool
	// IsDir selects between the single-file (moveto/copyto) and
	// directory-preserving (move/copy) subcommand forms.
	IsDir bool
}

// Move relocates src to dst, using moveto for a single file or move for a
// directory tree (preserving relative structure).
func (b *Broker) Move(ctx context.Context, src, dst cloudpath.Path, opts TransferOptions) error {
	return b.transfer(ctx, "moveto", "move", src, dst, opts)
}

// Copy duplicates src to dst, using copyto for a single file or copy for a
// directory tree.
func (b *Broker) Copy(ctx context.Context, src, dst cloudpath.Path, opts TransferOptions) error {
	return b.transfer(ctx, "copyto", "copy", src, dst, opts)
}

func (b *Broker) transfer(ctx context.Context, fileSubcommand, dirSubcommand string, src, dst cloudpath.Path, opts TransferOptions) error {
	subcommand := fileSubcommand
	if opts.IsDir {
		subcommand = dirSubcommand
	}
	args := []string{subcommand, src.String(), dst.String()}
	if !opts.Overwrite {
		args = append(args, "--ignore-existing")
	}
	_, err := b.run(ctx, args...)
	return err
}

// ProgressFunc receives cumulative bytes transferred and the total size (0
// if unknown) as rclone reports progress.
type ProgressFunc func(transferred, total int64)

// DownloadFile copies src (a cloud path) to localDest (a local filesystem
// path), invoking onProgress as rclone emits JSON progress lines.
func (b *Broker) DownloadFile(ctx context.Context, src cloudpath.Path, localDest string, onProgress ProgressFunc) error {
	return b.transferWithProgress(ctx, src.String(), localDest, onProgress)
}

// UploadFile copies localSrc (a local filesystem path) to dst (a cloud
// path), invoking onProgress as rclone emits JSON progress lines.
func (b *Broker) UploadFile(ctx context.Context, localSrc string, dst cloudpath.Path, onProgress ProgressFunc) error {
	return b.transferWithProgress(ctx, localSrc, dst.String(), onProgress)
}

func (b *Broker) transferWithProgress(ctx context.Context, from, to string, onProgress ProgressFunc) error {
	if err := b.ready(); err != nil {
		return err
	}

	args := []string{"copyto", from, to}
	if onProgress != nil {
		args = append(args, "--use-json-log", "--stats=200ms", "--stats-one-line")
	}

	if onProgress == nil {
		_, err := b.cli.runCaptureText(ctx, args...)
		return err
	}

	return b.cli.runWithProgress(ctx, onProgress, args...)
}
