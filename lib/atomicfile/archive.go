// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ArchiveSuffix is appended after the expanded backup suffix for
// archive backups.
const ArchiveSuffix = ".tar.zst"

// ArchiveBackup preserves the file or directory at path as a
// zstd-compressed tar archive at path + expanded suffix +
// ArchiveSuffix, leaving the original in place. The archive is staged
// and renamed like any atomic replace, so a crash never leaves a
// truncated archive under the backup name. If path does not exist
// this is a no-op.
//
// Entry names are rooted at path's base name, so an archive of
// /data/site contains "site", "site/index.html", and so on.
func ArchiveBackup(path, suffix string) error {
	if suffix == "" {
		return ErrBackupSuffixEmpty
	}
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking %s before archiving: %w", path, err)
	}

	archivePath, err := prepareBackup(path, suffix+ArchiveSuffix)
	if err != nil {
		return err
	}

	return Replace(archivePath, ReplaceOptions{}, func(staging string) error {
		out, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return fmt.Errorf("creating archive %s: %w", staging, err)
		}
		if err := writeArchive(out, path); err != nil {
			out.Close()
			os.Remove(staging)
			return err
		}
		if err := out.Sync(); err != nil {
			out.Close()
			os.Remove(staging)
			return fmt.Errorf("syncing archive %s: %w", staging, err)
		}
		if err := out.Close(); err != nil {
			os.Remove(staging)
			return fmt.Errorf("closing archive %s: %w", staging, err)
		}
		return nil
	})
}

// RestoreArchive atomically installs the contents of an archive
// written by ArchiveBackup at destination. The archive's single root
// entry (file or directory) becomes the destination itself, whatever
// its recorded name.
func RestoreArchive(archivePath, destination string, options ReplaceOptions) error {
	return Replace(destination, options, func(staging string) error {
		in, err := os.Open(archivePath)
		if err != nil {
			return fmt.Errorf("opening archive %s: %w", archivePath, err)
		}
		defer in.Close()
		return extractArchive(in, staging)
	})
}

// writeArchive streams path (file or directory tree) as a
// zstd-compressed tar to w.
func writeArchive(w io.Writer, path string) error {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	tarWriter := tar.NewWriter(encoder)

	rootName := filepath.Base(path)
	walkErr := filepath.WalkDir(path, func(current string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(path, current)
		if err != nil {
			return err
		}
		name := rootName
		if relative != "." {
			name = rootName + "/" + filepath.ToSlash(relative)
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		linkTarget := ""
		if info.Mode()&fs.ModeSymlink != 0 {
			if linkTarget, err = os.Readlink(current); err != nil {
				return fmt.Errorf("reading symlink %s: %w", current, err)
			}
		}
		header, err := tar.FileInfoHeader(info, linkTarget)
		if err != nil {
			return fmt.Errorf("building tar header for %s: %w", current, err)
		}
		header.Name = name
		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("writing tar header for %s: %w", current, err)
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		file, err := os.Open(current)
		if err != nil {
			return fmt.Errorf("opening %s for archiving: %w", current, err)
		}
		defer file.Close()
		if _, err := io.Copy(tarWriter, file); err != nil {
			return fmt.Errorf("archiving %s: %w", current, err)
		}
		return nil
	})
	if walkErr != nil {
		tarWriter.Close()
		encoder.Close()
		return walkErr
	}

	if err := tarWriter.Close(); err != nil {
		encoder.Close()
		return fmt.Errorf("finalizing tar stream: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalizing zstd stream: %w", err)
	}
	return nil
}

// extractArchive unpacks a zstd-compressed tar from r, mapping the
// archive's root entry onto target.
func extractArchive(r io.Reader, target string) error {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	tarReader := tar.NewReader(decoder)
	rootName := ""
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		name := filepath.Clean(filepath.FromSlash(header.Name))
		if name == "." || strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return fmt.Errorf("archive entry %q has unsafe path", header.Name)
		}
		first, rest, _ := strings.Cut(name, string(filepath.Separator))
		if rootName == "" {
			rootName = first
		} else if first != rootName {
			return fmt.Errorf("archive has multiple roots (%q and %q)", rootName, first)
		}
		entryTarget := target
		if rest != "" {
			entryTarget = filepath.Join(target, rest)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(entryTarget, header.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("creating directory %s: %w", entryTarget, err)
			}
		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, entryTarget); err != nil {
				return fmt.Errorf("creating symlink %s: %w", entryTarget, err)
			}
		case tar.TypeReg:
			if err := extractFile(tarReader, entryTarget, header); err != nil {
				return err
			}
		default:
			return fmt.Errorf("archive entry %q has unsupported type %d", header.Name, header.Typeflag)
		}
	}
	if rootName == "" {
		return fmt.Errorf("archive is empty")
	}
	return nil
}

func extractFile(r io.Reader, target string, header *tar.Header) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", target, err)
	}
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, header.FileInfo().Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return fmt.Errorf("extracting %s: %w", target, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	if err := os.Chtimes(target, header.ModTime, header.ModTime); err != nil {
		return fmt.Errorf("restoring modification time of %s: %w", target, err)
	}
	return nil
}
