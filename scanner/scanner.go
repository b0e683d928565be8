package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nxtools/titleshelf/catalog"
	"github.com/nxtools/titleshelf/titledb"
	"github.com/nxtools/titleshelf/utilities"
	"github.com/rs/zerolog/log"
)

// Scanner discovers title files under the search locations and turns
// them into catalog entries. It never opens the container files itself;
// identity comes from the file naming convention and the titles db.
// Per-file parse problems are recorded on the entry and never abort a
// scan; only a whole unreadable location does
type Scanner struct {
	titles *titledb.TitlesDB
}

func NewScanner(titles *titledb.TitlesDB) *Scanner {
	return &Scanner{titles: titles}
}

// Scan recursively walks every provided location and reports all
// discovered entries. A configured folder thats simply absent is skipped
// with a warning; a folder that fails mid-walk fails the scan
func (s *Scanner) Scan(ctx context.Context, locations []string, languageHint string) ([]catalog.Entry, error) {
	entries := []catalog.Entry{}
	for _, folder := range locations {
		if !utilities.Exists(folder) {
			log.Warn().Str("path", folder).Msg("Search folder does not exist, skipping")
			continue
		}
		err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if info.IsDir() {
				return nil
			}
			if !scannableExtension(path) {
				return nil
			}
			log.Debug().Str("path", path).Msg("File scan requested")
			entries = append(entries, s.entryForFile(path, info.Size()))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s failed -> %w", folder, err)
		}
	}
	log.Info().Int("entries", len(entries)).Str("language", languageHint).Msg("Scan pass complete")
	return entries, nil
}

func scannableExtension(path string) bool {
	ext := strings.ToUpper(filepath.Ext(path))
	switch ext {
	case ".NSP":
		return true
	case ".NSZ":
		return true
	case ".XCI":
		return true
	case ".XCZ":
		return true
	}
	return false
}

// entryForFile builds a catalog entry for one discovered file
func (s *Scanner) entryForFile(path string, size int64) catalog.Entry {
	entry := catalog.Entry{Path: path, Size: size}
	meta, err := parseFileName(filepath.Base(path))
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("Couldn't parse file name")
		entry.Outcome = catalog.OutcomeParseError
		entry.Role = catalog.RoleUnknown
		return entry
	}
	entry.Name = meta.name
	entry.Version = meta.version
	if meta.titleID == 0 {
		// Lightweight/homebrew style files without an embedded id are
		// still catalogued, they just can't own or be owned by anything
		entry.Outcome = catalog.OutcomeNoMetadata
		entry.Role = catalog.RoleUnknown
		return entry
	}
	entry.TitleID = meta.titleID
	entry.Role, entry.ParentID = catalog.RoleForTitleID(meta.titleID)
	s.resolveName(&entry)
	return entry
}

// resolveName fills in or upgrades the display name from the titles db.
// Updates and DLC are looked up under their owning base title, the way
// the db is keyed
func (s *Scanner) resolveName(entry *catalog.Entry) {
	if s.titles == nil {
		return
	}
	lookupID := entry.TitleID
	if entry.ParentID != 0 {
		lookupID = entry.ParentID
	}
	info, ok := s.titles.QueryGameFromTitleID(lookupID)
	if !ok || info.Name == "" {
		return
	}
	name := utilities.CleanName(info.Name)
	switch entry.Role {
	case catalog.RoleBase:
		entry.Name = name
	case catalog.RoleUpdate:
		if entry.Name == "" {
			entry.Name = name + " [Update]"
		}
	case catalog.RoleDLC:
		if entry.Name == "" {
			entry.Name = name + " [DLC]"
		}
	}
}
