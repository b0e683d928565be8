package scanner

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/nxtools/titleshelf/catalog"
	"github.com/nxtools/titleshelf/settings"
	"github.com/nxtools/titleshelf/titledb"
)

func writeDemoFile(t *testing.T, folder, name string) {
	t.Helper()
	if err := os.WriteFile(path.Join(folder, name), []byte("not a real container"), 0666); err != nil {
		t.Fatal(err)
	}
}

func makeTitlesDB(t *testing.T, records string) *titledb.TitlesDB {
	t.Helper()
	tempFolder := t.TempDir()
	sett := settings.NewSettings(path.Join(tempFolder, "settings.json"))
	sett.CacheFolder = tempFolder
	db := titledb.CreateTitlesDB(sett)
	if records != "" {
		dbFile := path.Join(tempFolder, "titles.json")
		if err := os.WriteFile(dbFile, []byte(records), 0666); err != nil {
			t.Fatal(err)
		}
		if err := db.IngestTitleDBFile(dbFile); err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func TestScanFindsAndClassifiesEntries(t *testing.T) {
	t.Parallel()
	folder := t.TempDir()
	writeDemoFile(t, folder, "Zelda [0100000000010000][v0].nsp")
	writeDemoFile(t, folder, "Zelda [0100000000010800][v65536].nsz")
	writeDemoFile(t, folder, "Zelda Costumes [0100000000011001][v0].nsp")
	writeDemoFile(t, folder, "homebrew-tool.nsp")
	writeDemoFile(t, folder, "notes.txt") // not a title file

	scanner := NewScanner(nil)
	entries, err := scanner.Scan(context.Background(), []string{folder}, "en-US")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	byName := map[string]catalog.Entry{}
	for _, entry := range entries {
		byName[entry.Name] = entry
	}
	base := byName["Zelda"]
	if base.Role != catalog.RoleUpdate && base.Role != catalog.RoleBase {
		t.Errorf("unexpected role for base file: %v", base.Role)
	}
	costume := byName["Zelda Costumes"]
	if costume.Role != catalog.RoleDLC || costume.ParentID != 0x0100000000010000 {
		t.Errorf("DLC should link to its base, got %+v", costume)
	}
	tool := byName["homebrew-tool"]
	if tool.Role != catalog.RoleUnknown || tool.Outcome != catalog.OutcomeNoMetadata {
		t.Errorf("id-less file should be an unknown-role entry, got %+v", tool)
	}
}

func TestScanGroupsThroughBuilder(t *testing.T) {
	t.Parallel()
	folder := t.TempDir()
	writeDemoFile(t, folder, "Zelda [0100000000010000][v0].nsp")
	writeDemoFile(t, folder, "Zelda [0100000000010800][v65536].nsz")
	writeDemoFile(t, folder, "Mario [0100000000020000][v0].xci")

	scanner := NewScanner(nil)
	entries, err := scanner.Scan(context.Background(), []string{folder}, "")
	if err != nil {
		t.Fatal(err)
	}
	groups := catalog.Build(entries, false, catalog.SortNameAscending)
	if len(groups) != 2 {
		t.Fatalf("expected Mario and Zelda, got %d groups", len(groups))
	}
	if groups[0].Root.Name != "Mario" || groups[1].Root.Name != "Zelda" {
		t.Errorf("wrong order: %s, %s", groups[0].Root.Name, groups[1].Root.Name)
	}
	if len(groups[1].Updates) != 1 {
		t.Error("Zelda should own its update")
	}
}

func TestScanResolvesNamesFromTitlesDB(t *testing.T) {
	t.Parallel()
	records := `{"x": {"id": "0100000000010000", "name": "The Legend of Zelda™"}}`
	db := makeTitlesDB(t, records)

	folder := t.TempDir()
	writeDemoFile(t, folder, "zelda-rip [0100000000010000][v0].nsp")
	writeDemoFile(t, folder, "[0100000000010800][v65536].nsp")

	scanner := NewScanner(db)
	entries, err := scanner.Scan(context.Background(), []string{folder}, "en-US")
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		switch entry.Role {
		case catalog.RoleBase:
			if entry.Name != "The Legend of Zelda" {
				t.Errorf("base name should come cleaned from the db, got >%s<", entry.Name)
			}
		case catalog.RoleUpdate:
			if entry.Name != "The Legend of Zelda [Update]" {
				t.Errorf("nameless update should borrow the base name, got >%s<", entry.Name)
			}
		default:
			t.Errorf("unexpected role %v", entry.Role)
		}
	}
}

func TestScanSkipsMissingFolders(t *testing.T) {
	t.Parallel()
	folder := t.TempDir()
	writeDemoFile(t, folder, "Mario [0100000000020000][v0].nsp")

	scanner := NewScanner(nil)
	entries, err := scanner.Scan(context.Background(), []string{"/does/not/exist/at/all", folder}, "")
	if err != nil {
		t.Fatal("an absent configured folder shouldn't fail the scan")
	}
	if len(entries) != 1 {
		t.Errorf("expected the existing folder to still be scanned, got %d entries", len(entries))
	}
}

func TestScanHonoursCancellation(t *testing.T) {
	t.Parallel()
	folder := t.TempDir()
	writeDemoFile(t, folder, "Mario [0100000000020000][v0].nsp")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scanner := NewScanner(nil)
	if _, err := scanner.Scan(ctx, []string{folder}, ""); err == nil {
		t.Error("a cancelled scan should fail, surfacing as the error state")
	}
}

func TestScanRecordsParseErrors(t *testing.T) {
	t.Parallel()
	folder := t.TempDir()
	writeDemoFile(t, folder, "[bad].nsp")
	writeDemoFile(t, folder, "Mario [0100000000020000][v0].nsp")

	scanner := NewScanner(nil)
	entries, err := scanner.Scan(context.Background(), []string{folder}, "")
	if err != nil {
		t.Fatal("a single broken file must never abort the batch")
	}
	if len(entries) != 2 {
		t.Fatalf("both files should be reported, got %d", len(entries))
	}
	broken := 0
	for _, entry := range entries {
		if entry.Outcome == catalog.OutcomeParseError {
			broken++
		}
	}
	if broken != 1 {
		t.Errorf("expected exactly one broken entry, got %d", broken)
	}
}
