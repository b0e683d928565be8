package utilities

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/rs/zerolog/log"
)

// DownloadFileWithVersioning fetches fileURL into folder, using a
// side-car .etag file to skip the transfer when the remote copy hasn't
// changed. Returns the local path of the downloaded (or unchanged) file
func DownloadFileWithVersioning(fileURL, folder string) (string, error) {
	_, fileName := path.Split(fileURL)
	outputFile := path.Join(folder, fileName)
	etagFile := outputFile + ".etag"

	req, err := http.NewRequest("GET", fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("cant request %s, newrequest threw -> %w", fileURL, err)
	}
	if etag, err := os.ReadFile(etagFile); err == nil && len(etag) > 0 {
		req.Header.Add("If-None-Match", string(etag))
	}

	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request for %s failed -> %w", fileURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotModified {
		return outputFile, nil
	}
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("couldn't download file %s -> %d", fileURL, response.StatusCode)
	}

	// Etag save failures are non-essential, worst case we re-download
	if err := os.WriteFile(etagFile, []byte(response.Header.Get("ETag")), 0666); err != nil {
		log.Warn().Str("url", fileURL).Err(err).Msg("Saving ETag failed, continuing anyway")
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("couldn't download file, writing to %s failed; url: %s -> %w", outputFile, fileURL, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, response.Body); err != nil {
		return "", fmt.Errorf("couldn't download file, writing to %s failed; url: %s -> %w", outputFile, fileURL, err)
	}
	return outputFile, nil
}
