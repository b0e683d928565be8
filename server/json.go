package server

import (
	"encoding/json"
	"net/http"

	"github.com/nxtools/titleshelf/catalog"
	"github.com/rs/zerolog/log"
)

// The catalog endpoint mirrors the loading lifecycle in its status code:
// 202 while a first load is still running, 503 when the last scan failed,
// 200 with the grouped titles otherwise. An empty title list with a 200
// means "nothing found", which is deliberately distinct from the 503

type catalogResponse struct {
	State  string          `json:"state"`
	MOTD   string          `json:"motd"`
	Cause  string          `json:"cause,omitempty"`
	Titles []catalog.Group `json:"titles,omitempty"`
}

func (server *Server) writeCatalogJSON(res http.ResponseWriter, filterQuery string) {
	state := server.catalog.Store().Current()
	response := catalogResponse{
		State: state.Phase.String(),
		MOTD:  server.settings.ServerMOTD,
	}

	switch state.Phase {
	case catalog.PhaseLoading:
		res.WriteHeader(http.StatusAccepted)
	case catalog.PhaseError:
		response.Cause = state.Err.Error()
		res.WriteHeader(http.StatusServiceUnavailable)
	case catalog.PhaseLoaded:
		response.Titles = catalog.Filter(state.Groups, filterQuery)
	}

	if err := json.NewEncoder(res).Encode(response); err != nil {
		log.Warn().Err(err).Msg("Writing catalog response failed")
	}
}
