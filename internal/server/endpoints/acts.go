package endpoints

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lawtext/gazette/internal/api"
	"github.com/lawtext/gazette/internal/reference"
	"github.com/lawtext/gazette/internal/registry"
)

// ActEndpoint handles GET /acts/{year}/{serial}.
type ActEndpoint struct {
	store *registry.Store
}

func (e *ActEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/acts/{year}/{serial}", e.handler
}

func (e *ActEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}
	serial := strings.ToUpper(r.PathValue("serial"))

	rec, err := e.store.GetAct(reference.ActID{Year: year, Serial: serial})
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("act %d/%s not found", year, serial))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (e *ActEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "act <year> <serial>",
		Short: "Fetch one parsed act as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var rec registry.ActRecord
			path := fmt.Sprintf("/acts/%s/%s", args[0], args[1])
			if err := client.Get(cmd.Context(), path, &rec); err != nil {
				return err
			}
			fmt.Println(string(rec.Body))
			return nil
		},
	}
}
