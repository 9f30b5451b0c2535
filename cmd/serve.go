package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/convert"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/store"
	"github.com/jsphweid/fretdex/tab"
	"github.com/jsphweid/fretdex/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var errTimeout = errors.New("processing timed out")

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the tab API",
	Long: `Serves the tab API on $PORT. Jobs are kept in memory, or in DynamoDB when
$DYNAMODB_ENDPOINT is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		cobra.CheckErr(err)
		jobs, err := openStore()
		cobra.CheckErr(err)

		s := &server{cfg: cfg, jobs: jobs, timeout: constants.GetProcessingTimeout()}
		handler := cors.New(cors.Options{
			AllowedOrigins:   constants.GetFrontendURLs(),
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowCredentials: true,
		}).Handler(s.router())

		addr := ":" + constants.GetPort()
		slog.Info("listening", "addr", addr, "tuning", cfg.Tuning)
		cobra.CheckErr(http.ListenAndServe(addr, handler))
	},
}

func openStore() (store.Store, error) {
	endpoint := constants.GetDynamoEndpoint()
	if endpoint == "" {
		return store.NewMemory(), nil
	}
	slog.Info("using DynamoDB job store", "endpoint", endpoint, "table", constants.GetDynamoTable())
	return store.DialDynamo(endpoint, constants.GetDynamoRegion(), constants.GetDynamoTable())
}

type server struct {
	cfg     config.Config
	jobs    store.Store
	timeout time.Duration
}

func (s *server) router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/tab", s.handleTab).Methods(http.MethodPost)
	router.HandleFunc("/tab/midi", s.handleMidi).Methods(http.MethodPost)
	router.HandleFunc("/tab/{id}", s.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/tab/{id}/text", s.handleText).Methods(http.MethodGet)
	router.HandleFunc("/status/{id}", s.handleStatus).Methods(http.MethodGet)
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, midi.ErrNotMidi):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "fretdex guitar tab API"})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// convertWithTimeout runs the conversion on its own goroutine and gives up
// waiting after timeout. The conversion itself is not interrupted.
func convertWithTimeout(ctx context.Context, timeout time.Duration, events []model.NoteEvent, cfg config.Config) (model.Result, error) {
	type outcome struct {
		res model.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := convert.Convert(events, cfg)
		done <- outcome{res, err}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return model.Result{}, fmt.Errorf("%w after %v", errTimeout, timeout)
	}
}

func (s *server) runJob(ctx context.Context, filename string, events []model.NoteEvent, cfg config.Config) (model.Job, error) {
	job := model.Job{
		ID:        uuid.New().String(),
		Filename:  filename,
		Status:    model.JobProcessing,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.jobs.Put(ctx, job); err != nil {
		return job, err
	}

	start := time.Now()
	res, err := convertWithTimeout(ctx, s.timeout, events, cfg)
	if err != nil {
		job.Status = model.JobFailed
		job.Error = err.Error()
	} else {
		job.Status = model.JobDone
		job.Result = &res
	}
	if perr := s.jobs.Put(ctx, job); perr != nil && err == nil {
		err = perr
	}

	slog.Info("job finished",
		"id", job.ID,
		"status", job.Status,
		"events", len(events),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return job, err
}

func (s *server) respondJob(w http.ResponseWriter, job model.Job, err error) {
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.JobResponse{
		ID:       job.ID,
		Filename: job.Filename,
		Status:   job.Status,
		Result:   job.Result,
	})
}

func (s *server) handleTab(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	var body model.TabRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, "could not decode request body: "+err.Error())
		return
	}

	cfg := s.cfg
	if body.Tuning != "" {
		cfg.Tuning = body.Tuning
	}
	if body.GroupingWindowMs > 0 {
		cfg.GroupingWindow = body.GroupingWindowMs / 1000
	}
	if body.MaxStretch > 0 {
		cfg.MaxStretch = body.MaxStretch
	}

	job, err := s.runJob(r.Context(), "", body.Notes, cfg)
	s.respondJob(w, job, err)
}

func (s *server) handleMidi(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, "expected a multipart \"file\" field: "+err.Error())
		return
	}
	defer file.Close()

	if !util.IsMidiPath(header.Filename) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported format %q, expected .mid or .midi", filepath.Ext(header.Filename)))
		return
	}
	parsed, err := midi.Read(file)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	job, err := s.runJob(r.Context(), header.Filename, midi.NoteEvents(parsed), s.cfg)
	s.respondJob(w, job, err)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), mux.Vars(r)["id"])
	s.respondJob(w, job, err)
}

func (s *server) handleText(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if job.Result == nil {
		writeError(w, http.StatusNotFound, "tab not generated for "+job.ID)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, tab.Render(job.Result.Tab, labels(s.cfg), tab.DefaultPerLine))
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{
		ID:           job.ID,
		Status:       job.Status,
		TabGenerated: job.Result != nil,
		Error:        job.Error,
	})
}
