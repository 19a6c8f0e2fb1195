package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gorilla/schema"
	"github.com/haveachin/q3tool/internal/app/q3tool"
	"github.com/haveachin/q3tool/pkg/q3"
)

type playerDTO struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Ping  int    `json:"ping"`
}

func newPlayerDTOs(players []q3.Player) []playerDTO {
	dtos := make([]playerDTO, 0, len(players))
	for _, p := range players {
		dtos = append(dtos, playerDTO{
			Name:  p.Name,
			Score: p.Score,
			Ping:  p.Ping,
		})
	}
	return dtos
}

func getStatusHandler(api q3tool.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := api.Snapshot()

		dto := struct {
			Server      string            `json:"server"`
			Up          bool              `json:"up"`
			PolledAt    *time.Time        `json:"polledAt,omitempty"`
			Fingerprint uint64            `json:"fingerprint"`
			Error       string            `json:"error,omitempty"`
			Vars        map[string]string `json:"vars"`
			Players     []playerDTO       `json:"players"`
		}{
			Server:      s.Server,
			Up:          s.Up(),
			Fingerprint: s.Fingerprint,
			Vars:        s.ServerInfo.Vars,
			Players:     newPlayerDTOs(s.ServerInfo.Players),
		}

		if !s.PolledAt.IsZero() {
			dto.PolledAt = &s.PolledAt
		}

		if s.Err != nil {
			dto.Error = s.Err.Error()
		}

		if dto.Vars == nil {
			dto.Vars = map[string]string{}
		}

		render.JSON(w, r, dto)
	}
}

func getVarsHandler(api q3tool.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := api.Snapshot().ServerInfo.Vars
		if vars == nil {
			vars = q3.Vars{}
		}
		render.JSON(w, r, vars)
	}
}

func getVarHandler(api q3tool.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		value, ok := api.Snapshot().ServerInfo.Vars[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		dto := struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}{
			Key:   key,
			Value: value,
		}

		render.JSON(w, r, dto)
	}
}

func getPlayersHandler(api q3tool.API) http.HandlerFunc {
	decoder := schema.NewDecoder()
	return func(w http.ResponseWriter, r *http.Request) {
		reqDTO := &struct {
			NameRegex string `schema:"nameRegex"`
		}{}

		if err := decoder.Decode(reqDTO, r.URL.Query()); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		players, err := api.Players(reqDTO.NameRegex)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		render.JSON(w, r, newPlayerDTOs(players))
	}
}

func postRconHandler(api q3tool.API, allowRcon bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRcon {
			http.Error(w, "rcon is disabled", http.StatusForbidden)
			return
		}

		reqDTO := struct {
			Command string `json:"command"`
		}{}

		if err := render.DecodeJSON(r.Body, &reqDTO); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if reqDTO.Command == "" {
			http.Error(w, "command is empty", http.StatusUnprocessableEntity)
			return
		}

		resp, err := api.Rcon(r.Context(), reqDTO.Command)
		if err != nil {
			http.Error(w, err.Error(), rconErrorStatus(err))
			return
		}

		dto := struct {
			Response string `json:"response"`
		}{
			Response: resp,
		}

		render.JSON(w, r, dto)
	}
}

func rconErrorStatus(err error) int {
	switch {
	case errors.Is(err, q3.ErrMissingCredential):
		return http.StatusPreconditionFailed
	case errors.Is(err, q3.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
