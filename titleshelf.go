package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"github.com/nxtools/titleshelf/catalog"
	"github.com/nxtools/titleshelf/scanner"
	"github.com/nxtools/titleshelf/server"
	"github.com/nxtools/titleshelf/settings"
	"github.com/nxtools/titleshelf/termui"
	"github.com/nxtools/titleshelf/titledb"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

type TitleShelf struct {
	ConfigFilePath string `flag:"config" help:"Path to config file"`
	NoCUI          bool   `flag:"noCUI" help:"Disable the console UI"`
	OneShot        bool   `flag:"oneshot" help:"Scan once, print the catalog as JSON and exit"`

	catalog  *catalog.Service   `flag:"-"`
	ui       *termui.TermUI     `flag:"-"`
	settings *settings.Settings `flag:"-"`
	titleDB  *titledb.TitlesDB  `flag:"-"`
}

func NewTitleShelf() *TitleShelf {
	return &TitleShelf{}
}

func (m *TitleShelf) Run() error {
	uiExit := make(chan bool, 1)

	settingsPath := "./config.json"
	if m.ConfigFilePath != "" {
		settingsPath = m.ConfigFilePath
	}
	m.settings = settings.NewSettings(settingsPath)

	m.titleDB = titledb.CreateTitlesDB(m.settings)
	m.catalog = catalog.NewService(scanner.NewScanner(m.titleDB), catalog.NewStore())
	m.catalog.SetLocations(m.settings.GetAllScanFolders())
	m.catalog.SetLanguageHint(m.settings.PreferredLanguage)
	m.catalog.SetHideInvalid(m.settings.HideInvalidTitles)
	m.catalog.SetSortOrder(catalog.SortOrder(m.settings.SortOrder))

	if m.OneShot {
		m.settings.SetupLogging(os.Stderr)
		m.titleDB.UpdateTitlesDB()
		return m.runOneShot()
	}

	if !m.NoCUI {
		m.ui = termui.NewTermUI(m.catalog)
		m.settings.SetupLogging(tview.ANSIWriter(m.ui.LogsView))
		m.ui.Watch()
		go func() {
			m.ui.Run()
			m.ui.Stop()
			uiExit <- true
		}()
	} else {
		m.settings.SetupLogging(os.Stdout)
		//Run hook listener for ctrl-c
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				log.Warn().Msg("Control-C received, shutting down")
				uiExit <- true
			}
		}()
	}

	// Sync the titledb before the first scan so names resolve
	m.titleDB.UpdateTitlesDB()

	m.catalog.StartLoad(context.Background(), false)

	srv := server.NewServer(m.catalog, m.titleDB, m.settings)
	srv.Run()

	//Wait for exit
	<-uiExit

	//Redirect logs back to the terminal since the UI is going away
	m.settings.SetupLogging(os.Stdout)
	log.Warn().Msg("Closing up")
	srv.Stop()
	return nil
}

// runOneShot waits out a single load cycle and dumps the result
func (m *TitleShelf) runOneShot() error {
	observer := m.catalog.Store().Observe()
	m.catalog.StartLoad(context.Background(), false)
	for state := range observer {
		switch state.Phase {
		case catalog.PhaseLoaded:
			groups := catalog.Filter(state.Groups, m.catalog.FilterQuery())
			data, err := json.MarshalIndent(groups, "", "  ")
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		case catalog.PhaseError:
			return state.Err
		}
	}
	return nil
}
