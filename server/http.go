package server

import (
	"context"
	"net/http"
	"path"
	"strings"
)

func (server *Server) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	var head string
	head, req.URL.Path = ShiftPath(req.URL.Path)

	switch head {
	case "rescan":
		server.httpHandleRescan(res, req)
	case "titledb.json":
		server.httpHandleTitlesDB(res, req)
	case "catalog.json":
		fallthrough
	case "":
		fallthrough
	case "/":
		server.httpHandleCatalog(res, req)
	default:
		http.Error(res, "Not found", http.StatusNotFound)
	}
}

func (server *Server) httpHandleCatalog(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(res, "Only GET is allowed", http.StatusMethodNotAllowed)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	server.writeCatalogJSON(res, req.URL.Query().Get("filter"))
}

func (server *Server) httpHandleTitlesDB(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(res, "Only GET is allowed", http.StatusMethodNotAllowed)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	if err := server.titledb.DumpToJSON(res); err != nil {
		http.Error(res, "Generating titledb dump failed", http.StatusInternalServerError)
	}
}

// httpHandleRescan kicks off a fresh load cycle; the scan runs on its own
// context since it outlives this request
func (server *Server) httpHandleRescan(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(res, "Only POST is allowed", http.StatusMethodNotAllowed)
		return
	}
	server.catalog.StartLoad(context.Background(), false)
	res.WriteHeader(http.StatusAccepted)
}

//ShiftPath splits off the front portion of the provided path into head and then returns the remainder in tail
func ShiftPath(pathIn string) (head, tail string) {
	pathIn = path.Clean("/" + pathIn)
	i := strings.Index(pathIn[1:], "/") + 1
	if i <= 0 {
		return pathIn[1:], "/"
	}
	return pathIn[1:i], pathIn[i:]
}
