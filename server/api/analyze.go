package api

import (
	"errors"
	"net/http"

	"github.com/zlang-project/zsema/server/dao"
	"github.com/zlang-project/zsema/server/result"
)

// HTTPAnalyze returns a HandlerFunc that runs the analyzer against the
// request body (a token stream in the token file format) and persists the
// run.
func (api API) HTTPAnalyze() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epAnalyze)
}

func (api API) epAnalyze(req *http.Request) result.Result {
	tokenPath := req.URL.Query().Get("path")
	if tokenPath == "" {
		tokenPath = "<request body>"
	}

	run, _, err := api.Backend.Analyze(req.Context(), tokenPath, req.Body)
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := AnalyzeResponse{
		RunID:       run.ID.String(),
		TokenPath:   run.TokenPath,
		ExitCode:    run.ExitCode,
		Diagnostics: run.Diagnostics,
	}
	return result.Created(resp, "analysis %s completed with exit code %d", run.ID, run.ExitCode)
}

// HTTPGetRun returns a HandlerFunc that retrieves a previously persisted run
// by ID.
func (api API) HTTPGetRun() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetRun)
}

func (api API) epGetRun(req *http.Request) result.Result {
	id := requireIDParam(req)

	run, err := api.Backend.GetRun(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(runToModel(run), "run %s retrieved", id)
}

// HTTPListRuns returns a HandlerFunc that retrieves every persisted run.
func (api API) HTTPListRuns() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epListRuns)
}

func (api API) epListRuns(req *http.Request) result.Result {
	runs, err := api.Backend.ListRuns(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	models := make([]RunModel, len(runs))
	for i, run := range runs {
		models[i] = runToModel(run)
	}
	return result.OK(models, "%d run(s) retrieved", len(models))
}

func runToModel(run dao.Run) RunModel {
	return RunModel{
		ID:          run.ID.String(),
		TokenPath:   run.TokenPath,
		StartedAt:   run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		EndedAt:     run.EndedAt.Format("2006-01-02T15:04:05Z07:00"),
		ExitCode:    run.ExitCode,
		Diagnostics: run.Diagnostics,
	}
}
