package titledb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/nxtools/titleshelf/settings"
	"github.com/nxtools/titleshelf/utilities"
	"github.com/rs/zerolog/log"
)

/*

This is not actually a _DB_ but its a close enough name for its intended use case.

It maps title id's to their human facing details (name, publisher, art)
so the scanner can label entries without ever opening the files.
Downloads are ETag versioned; the on-disk cache is kept zstd compressed
since the raw region json files are large, and is used as the fallback
when the network is unavailable.

*/

// TitleDBEntry is the stored subset of data from the titledb json files
type TitleDBEntry struct {
	StringID       string   `json:"id"`
	Name           string   `json:"name"`
	Publisher      string   `json:"publisher"`
	ReleaseDate    int      `json:"releaseDate"`
	NumPlayers     int      `json:"numberOfPlayers"`
	IconURL        string   `json:"iconUrl"`
	BannerURL      string   `json:"bannerUrl"`
	ScreenshotURLs []string `json:"screenshots"`
}

type TitlesDB struct {
	entriesLock sync.RWMutex
	entries     map[uint64]TitleDBEntry
	settings    *settings.Settings
}

func CreateTitlesDB(settings *settings.Settings) *TitlesDB {
	return &TitlesDB{
		entries:  make(map[uint64]TitleDBEntry),
		settings: settings,
	}
}

// UpdateTitlesDB syncs the latest titlesdb files, then updates the in
// memory state. Falls back to the compressed cache per url on failure
func (db *TitlesDB) UpdateTitlesDB() {
	_ = os.MkdirAll(db.settings.CacheFolder, 0755)

	for _, fileURL := range db.settings.TitlesDBURLs {
		path, err := utilities.DownloadFileWithVersioning(fileURL, db.settings.CacheFolder)
		if err != nil {
			log.Warn().Str("url", fileURL).Err(err).Msg("Downloading latest TitlesDB failed, will continue using cached")
		}
		if err := db.IngestTitleDBFile(path); err != nil {
			log.Error().Err(err).Str("url", fileURL).Msg("TitleDB couldn't parse downloaded data")
			continue
		}
		log.Info().Str("url", fileURL).Msg("Loaded TitleDB")
		if !strings.HasSuffix(path, ".zst") {
			if err := compressCachedCopy(path); err != nil {
				log.Warn().Str("path", path).Err(err).Msg("Couldn't compress titledb cache")
			}
		}
	}
}

// IngestTitleDBFile loads one region file into the map; the plain file is
// preferred, the .zst cache is used when the plain one is gone
func (db *TitlesDB) IngestTitleDBFile(path string) error {
	fileContents, err := readMaybeCompressed(path)
	if err != nil {
		return fmt.Errorf("failed to load the Titledb - %w", err)
	}
	var entries map[string]TitleDBEntry
	if err := json.Unmarshal(fileContents, &entries); err != nil {
		return fmt.Errorf("failed to parse the Titledb - %w", err)
	}
	log.Info().Msgf("Loading %d entries from %s", len(entries), path)
	db.entriesLock.Lock()
	defer db.entriesLock.Unlock()
	for _, v := range entries {
		index, err := strconv.ParseUint(v.StringID, 16, 64)
		if err == nil {
			db.entries[index] = v
		}
	}
	return nil
}

func readMaybeCompressed(path string) ([]byte, error) {
	if strings.HasSuffix(path, ".zst") {
		return readCompressed(path)
	}
	contents, err := os.ReadFile(path)
	if err == nil {
		return contents, nil
	}
	if compressed, errz := readCompressed(path + ".zst"); errz == nil {
		return compressed, nil
	}
	return nil, err
}

func readCompressed(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return io.ReadAll(decoder)
}

// compressCachedCopy replaces the raw cached file with a .zst sibling
func compressCachedCopy(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	target, err := os.Create(path + ".zst")
	if err != nil {
		return err
	}
	defer target.Close()
	encoder, err := zstd.NewWriter(target)
	if err != nil {
		return err
	}
	if _, err := encoder.Write(contents); err != nil {
		encoder.Close()
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}

func (db *TitlesDB) QueryGameFromTitleID(titleID uint64) (TitleDBEntry, bool) {
	db.entriesLock.RLock()
	defer db.entriesLock.RUnlock()
	value, ok := db.entries[titleID]
	return value, ok
}

func (db *TitlesDB) DumpToJSON(writer io.Writer) error {
	db.entriesLock.RLock()
	defer db.entriesLock.RUnlock()
	data, err := json.Marshal(db.entries)
	if err != nil {
		return fmt.Errorf("cant JSON'ify TitleDB - %w", err)
	}
	_, err = writer.Write(data)
	return err
}
