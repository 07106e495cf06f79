// Package updater replaces the running binary with the latest GitHub
// release asset for this platform.
package updater

import (
	"archive/tar"
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/octylFractal/clock-resonator/internal/version"
)

const githubAPIURL = "https://api.github.com/repos/%s/%s/releases/latest"

// executableBase is the asset binary name, without any .exe suffix.
const executableBase = "clock-resonator"

type githubRelease struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// SelfUpdate checks GitHub for a newer release and swaps the running
// executable for it. "dev" builds never update. The new version takes
// effect on the next launch.
func SelfUpdate(owner, repo string) error {
	current := version.Version
	if current == "dev" {
		slog.Info("development build, skipping update check")
		return nil
	}

	latestTag, downloadURL, err := checkForUpdate(owner, repo)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if latestTag == "" || downloadURL == "" {
		slog.Info("no update found")
		return nil
	}
	if compareVersions(current, latestTag) >= 0 {
		slog.Info("already up to date", "current", current, "latest", latestTag)
		return nil
	}

	slog.Info("downloading update", "current", current, "latest", latestTag)

	executablePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := downloadAndReplace(downloadURL, executablePath); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	slog.Info("update installed, restart to use it", "version", latestTag)
	return nil
}

// checkForUpdate returns the latest release tag and the download URL of the
// asset matching this OS and architecture.
func checkForUpdate(owner, repo string) (string, string, error) {
	resp, err := http.Get(fmt.Sprintf(githubAPIURL, owner, repo))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("GitHub API returned %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", fmt.Errorf("decode release: %w", err)
	}

	platform := fmt.Sprintf("%s-%s", runtime.GOOS, runtime.GOARCH)
	var suffix string
	switch runtime.GOOS {
	case "windows":
		suffix = platform + ".zip"
	case "linux", "darwin":
		suffix = platform + ".tar.xz"
	default:
		return "", "", fmt.Errorf("self-update not supported on %s", platform)
	}

	for _, a := range release.Assets {
		if strings.Contains(a.Name, executableBase) && strings.HasSuffix(a.Name, suffix) {
			return release.TagName, a.BrowserDownloadURL, nil
		}
	}
	return "", "", fmt.Errorf("no release asset for %s", platform)
}

func downloadAndReplace(downloadURL, executablePath string) error {
	tmpDir, err := os.MkdirTemp("", "clock-resonator-update-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	archiveName := filepath.Base(downloadURL)
	archivePath := filepath.Join(tmpDir, archiveName)

	resp, err := http.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download archive: %s", resp.Status)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	wantName := executableBase
	if runtime.GOOS == "windows" {
		wantName += ".exe"
	}

	var extracted string
	switch {
	case strings.HasSuffix(archiveName, ".tar.xz"):
		extracted, err = extractTarXz(archivePath, tmpDir, wantName)
	case strings.HasSuffix(archiveName, ".zip"):
		extracted, err = extractZip(archivePath, tmpDir, wantName)
	default:
		return fmt.Errorf("unsupported archive format: %s", archiveName)
	}
	if err != nil {
		return err
	}

	return replaceExecutable(executablePath, extracted)
}

func extractTarXz(archivePath, destDir, wantName string) (string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	xzReader, err := xz.NewReader(file)
	if err != nil {
		return "", err
	}

	tarReader := tar.NewReader(xzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if header.Typeflag != tar.TypeReg || filepath.Base(header.Name) != wantName {
			continue
		}
		return writeExtracted(destDir, wantName, tarReader, header.FileInfo().Mode())
	}
	return "", fmt.Errorf("%s not found in archive", wantName)
}

func extractZip(archivePath, destDir, wantName string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if filepath.Base(f.Name) != wantName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		path, err := writeExtracted(destDir, wantName, rc, f.Mode())
		rc.Close()
		return path, err
	}
	return "", fmt.Errorf("%s not found in archive", wantName)
}

func writeExtracted(destDir, name string, src io.Reader, mode os.FileMode) (string, error) {
	path := filepath.Join(destDir, name)
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// replaceExecutable swaps new in for old by renaming old aside first, so a
// failed move can roll back. On Windows the rename fails while the binary is
// running; the caller surfaces that as an error.
func replaceExecutable(oldPath, newPath string) error {
	backupPath := oldPath + ".old"
	if err := os.Rename(oldPath, backupPath); err != nil {
		return fmt.Errorf("back up current executable (close the app and retry if it is locked): %w", err)
	}

	if err := os.Rename(newPath, oldPath); err != nil {
		_ = os.Rename(backupPath, oldPath)
		return fmt.Errorf("install new executable: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(oldPath, 0755); err != nil {
			return fmt.Errorf("set executable permissions: %w", err)
		}
		_ = os.Remove(backupPath)
	}
	// On Windows the .old file stays locked until the process exits and is
	// cleaned up on the next update.

	return nil
}

// compareVersions orders two dotted version strings numerically, ignoring a
// leading "v". Returns -1, 0 or 1.
func compareVersions(a, b string) int {
	aParts := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bParts := strings.Split(strings.TrimPrefix(b, "v"), ".")

	n := len(aParts)
	if len(bParts) > n {
		n = len(bParts)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(aParts) {
			av, _ = strconv.Atoi(aParts[i])
		}
		if i < len(bParts) {
			bv, _ = strconv.Atoi(bParts[i])
		}
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}
