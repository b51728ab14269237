package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"path/filepath"

	"github.com/patrickmn/go-cache"

	"github.com/textmill/corpusdiff/cli"
	"github.com/textmill/corpusdiff/compare"
	"github.com/textmill/corpusdiff/config"
	"github.com/textmill/corpusdiff/dtm"
	"github.com/textmill/corpusdiff/logger"
	"github.com/textmill/corpusdiff/termstats"
	"github.com/textmill/corpusdiff/util"
)

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// App holds the loaded config and a cache of computed tables. Matrices are
// snapshotted to disk on first build and reloaded from the snapshot when a
// corpus falls out of the in-memory cache.
type App struct {
	cfg     config.Config
	tables  *cache.Cache
	fileOps dtm.FileOps
}

func NewApp(cfg config.Config, fileOps dtm.FileOps) *App {
	return &App{
		cfg:     cfg,
		tables:  cache.New(10*time.Minute, 30*time.Minute),
		fileOps: fileOps,
	}
}

func writeJSON(w http.ResponseWriter, status int, response interface{}) {
	jsonBytes, err := json.Marshal(response)
	if err != nil {
		log.Println("Unable to marshal json: ", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonBytes); err != nil {
		logger.HandleError(err)
	}
}

// Server route to list the available corpus directories
func (a *App) handleApiCorpora(w http.ResponseWriter, r *http.Request) {
	directories, err := util.ListCorpusDirectories(a.cfg.CorporaRoot)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, &Response{Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, &Response{
		Message: "Available corpora",
		Data:    directories,
	})
}

// statsTable returns the cached term statistics for a corpus, computing
// them on a miss.
func (a *App) statsTable(name string) ([]termstats.Row, error) {
	key := "stats:" + name
	if cached, found := a.tables.Get(key); found {
		return cached.([]termstats.Row), nil
	}

	matrix, err := a.loadMatrix(name)
	if err != nil {
		return nil, err
	}
	rows := termstats.Compute(matrix)
	a.tables.Set(key, rows, cache.DefaultExpiration)
	return rows, nil
}

// loadMatrix reads the corpus snapshot if one exists, otherwise builds the
// matrix from the corpus documents and writes a snapshot for the next start.
func (a *App) loadMatrix(name string) (*dtm.Matrix, error) {
	snapshotName := name + ".gz"
	if matrix, err := dtm.LoadCompressed(filepath.Join(a.cfg.SnapshotRoot, snapshotName)); err == nil {
		return matrix, nil
	}

	dir := a.cfg.CorporaRoot + "/" + name
	if isValid, err := util.CheckDirIsValid(dir); !isValid || err != nil {
		return nil, fmt.Errorf("corpus %q is not valid or does not exist", name)
	}

	matrix, err := cli.LoadMatrix(a.cfg, dir)
	if err != nil {
		return nil, err
	}
	if err := matrix.SaveCompressed(snapshotName, a.cfg.SnapshotRoot, a.fileOps); err != nil {
		logger.HandleError(err)
	}
	return matrix, nil
}

// Server route to compute term statistics for one corpus
func (a *App) handleApiStats(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("corpus")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, &Response{Message: "missing corpus parameter"})
		return
	}

	start := time.Now()
	rows, err := a.statsTable(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, &Response{Message: err.Error()})
		return
	}
	elapsed := time.Since(start)

	writeJSON(w, http.StatusOK, &Response{
		Message: fmt.Sprintf("Computed %d term rows in %d Ms", len(rows), elapsed.Milliseconds()),
		Data:    rows,
	})
}

// Server route to compare two corpora by word overrepresentation
func (a *App) handleApiCompare(w http.ResponseWriter, r *http.Request) {
	nameX := r.URL.Query().Get("x")
	nameY := r.URL.Query().Get("y")
	if nameX == "" || nameY == "" {
		writeJSON(w, http.StatusBadRequest, &Response{Message: "missing x or y parameter"})
		return
	}

	key := "compare:" + nameX + "|" + nameY
	if cached, found := a.tables.Get(key); found {
		writeJSON(w, http.StatusOK, &Response{Message: "Cached comparison", Data: cached})
		return
	}

	start := time.Now()
	tableX, err := a.statsTable(nameX)
	if err != nil {
		writeJSON(w, http.StatusNotFound, &Response{Message: err.Error()})
		return
	}
	tableY, err := a.statsTable(nameY)
	if err != nil {
		writeJSON(w, http.StatusNotFound, &Response{Message: err.Error()})
		return
	}

	rows := compare.Tables(tableX, tableY, compare.Options{Smoothing: a.cfg.Smoothing})
	compare.SortByChiSquared(rows)
	a.tables.Set(key, rows, cache.DefaultExpiration)
	elapsed := time.Since(start)

	logger.HandleLog(fmt.Sprintf("%sCompared %s against %s in %d ms%s", util.TerminalCyan, nameX, nameY, elapsed.Milliseconds(), util.TerminalReset))

	writeJSON(w, http.StatusOK, &Response{
		Message: fmt.Sprintf("Compared %s against %s in %d Ms", nameX, nameY, elapsed.Milliseconds()),
		Data:    rows,
	})
}

// Route handler
func (a *App) handleRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println(r.Method, r.URL.Path)
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/corpora":
			a.handleApiCorpora(w, r)
		case r.Method == "GET" && r.URL.Path == "/api/stats":
			a.handleApiStats(w, r)
		case r.Method == "GET" && r.URL.Path == "/api/compare":
			a.handleApiCompare(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "404 Not Found")
		}
	}
}

func Serve(cfg config.Config) {
	app := NewApp(cfg, dtm.FileOpsImpl{})
	http.HandleFunc("/", app.handleRequests())
	log.Printf("Listening on port %d...", cfg.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), nil))
}
