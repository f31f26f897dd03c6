package installer

import (
	"context"
	"io"
	"net/http"
	"os"

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// downloadFile saves the content at url to destPath.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Wrap(err, "failed to build download request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, "failed to GET %s", url)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return apperrors.Errorf("download of %s failed: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return apperrors.Wrapf(err, "failed to create file %s", destPath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = apperrors.Wrapf(cerr, "failed to close %s", destPath)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return apperrors.Wrap(err, "failed to write response to file")
	}

	logger.Debug("[DEBUG] Downloaded %s to: %s\n", url, destPath)
	return nil
}
