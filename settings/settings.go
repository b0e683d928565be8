package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	SearchFolders     []string `json:"searchFolders"`     // Folders scanned for title files
	CacheFolder       string   `json:"cacheFolder"`       // Folder for titledb downloads and other cached data
	TitlesDBURLs      []string `json:"titlesDbUrls"`      // URL's to use when loading the local titledb
	PreferredLanguage string   `json:"preferredLanguage"` // Language hint handed to the scanner for name lookups
	HideInvalidTitles bool     `json:"hideInvalidTitles"` // Drop entries that failed parsing or lack a rootable role
	SortOrder         string   `json:"sortOrder"`         // "name-asc", "name-desc", anything else keeps discovery order
	HTTPPort          int      `json:"httpPort"`          // Port used for the JSON catalog views
	ServerMOTD        string   `json:"serverMotd"`        // Server title used for public facing info
	LogLevel          string   `json:"logLevel"`          // zerolog level name
	// Private
	filePath string
}

// NewSettings creates settings with sane defaults
// And then loads any settings from the provided path (overwriting defaults)
func NewSettings(path string) *Settings {
	settings := &Settings{
		filePath:          path,
		SearchFolders:     []string{"./titles"},
		CacheFolder:       "/tmp/",
		PreferredLanguage: "en-US",
		HideInvalidTitles: false, // default permissive, id-less homebrew stays visible
		SortOrder:         "name-asc",
		HTTPPort:          8080,
		ServerMOTD:        "TitleShelf",
		LogLevel:          "info",
		TitlesDBURLs: []string{
			"https://raw.githubusercontent.com/blawar/titledb/master/US.en.json",
			"https://raw.githubusercontent.com/blawar/titledb/master/AU.en.json",
		},
	}
	//Load the settings file if it exists, which will override the defaults above if specified
	settings.Load()
	//Save to preserve if we have added anything to the file, and drop no-longer used settings for clarity
	settings.Save()
	return settings
}

func (s *Settings) Load() {
	//Load existing settings file if possible; if not do nothing
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, s); err != nil {
		fmt.Println("Couldn't load settings", err)
	}
}

// LoadFrom overlays settings read from the provided reader
func (s *Settings) LoadFrom(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, s)
}

func (s *Settings) Save() {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't save settings - %v", err)
		return
	}
	err = os.WriteFile(s.filePath, data, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't save settings - %v", err)
	}
}

func (s *Settings) GetAllScanFolders() []string {
	return append([]string{}, s.SearchFolders...)
}

// SetupLogging points the global zerolog logger at the given writer
func (s *Settings) SetupLogging(writer io.Writer) {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}
