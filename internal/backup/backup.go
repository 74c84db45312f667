// Package backup provides tar.gz-based backup and restore for the catalog
// data file and configuration.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Backup creates a tar.gz archive containing the collection file and an
// optional config file. The collection is parsed first so a torn or corrupt
// file never gets archived.
func Backup(_ context.Context, dataPath, configPath, outputPath string) error {
	// Verify the collection exists and holds a JSON array.
	if _, err := os.Stat(dataPath); err != nil {
		return fmt.Errorf("data file not found: %w", err)
	}
	if err := validateCollection(dataPath); err != nil {
		return fmt.Errorf("data file is not a valid collection: %w", err)
	}

	// Create the output archive.
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	gw := gzip.NewWriter(outFile)
	defer gw.Close()

	tw := tar.NewWriter(gw)
	defer tw.Close()

	// Add the collection file.
	if err := addFileToTar(tw, dataPath, filepath.Base(dataPath)); err != nil {
		return fmt.Errorf("adding data file to archive: %w", err)
	}

	// Add the config file if specified and it exists.
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := addFileToTar(tw, configPath, filepath.Base(configPath)); err != nil {
				return fmt.Errorf("adding config to archive: %w", err)
			}
		}
		// If the config file doesn't exist, skip silently.
	}

	return nil
}

// Restore extracts a backup archive into dataDir. Existing files abort the
// restore unless force is set.
func Restore(_ context.Context, inputPath, dataDir string, force bool) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	defer gr.Close()

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating target directory: %w", err)
	}

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		// Archives are written flat; anything else is suspect.
		if strings.Contains(hdr.Name, "..") || strings.ContainsAny(hdr.Name, `/\`) {
			return fmt.Errorf("unsafe path in archive: %s", hdr.Name)
		}

		target := filepath.Join(dataDir, hdr.Name)
		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists (use -force to overwrite)", target)
			}
		}
		if err := extractFile(tr, target, hdr); err != nil {
			return fmt.Errorf("extracting %s: %w", hdr.Name, err)
		}
	}
}

// validateCollection parses the file as a JSON array without keeping the
// contents around.
func validateCollection(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var items []json.RawMessage
	return json.Unmarshal(data, &items)
}

// addFileToTar adds a single file to the tar archive under the given name.
func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}

// extractFile writes one archive entry to target with the archived mode.
func extractFile(tr *tar.Reader, target string, hdr *tar.Header) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0777)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, tr)
	return err
}
