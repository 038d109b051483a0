package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lawtext/gazette/internal/api"
	"github.com/lawtext/gazette/internal/registry"
)

// IssuesEndpoint handles GET /issues.
type IssuesEndpoint struct {
	store *registry.Store
}

func (e *IssuesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/issues", e.handler
}

func (e *IssuesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	issues, err := e.store.Issues()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if issues == nil {
		issues = []registry.IssueRecord{}
	}
	writeJSON(w, http.StatusOK, issues)
}

func (e *IssuesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "issues",
		Short: "List processed issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var issues []registry.IssueRecord
			if err := client.Get(cmd.Context(), "/issues", &issues); err != nil {
				return err
			}
			for _, is := range issues {
				fmt.Printf("%d/%d  acts=%d degradations=%d run=%s\n",
					is.Year, is.Number, is.ActCount, is.Degradations, is.RunID)
			}
			return nil
		},
	}
}

// IssueActsEndpoint handles GET /issues/{year}/{number}/acts.
type IssueActsEndpoint struct {
	store *registry.Store
}

func (e *IssueActsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/issues/{year}/{number}/acts", e.handler
}

func (e *IssueActsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(r.PathValue("year"))
	number, err2 := strconv.Atoi(r.PathValue("number"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "year and number must be integers")
		return
	}
	acts, err := e.store.ActsOfIssue(year, number)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if acts == nil {
		acts = []registry.ActRecord{}
	}
	writeJSON(w, http.StatusOK, acts)
}

func (e *IssueActsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "issue-acts <year> <number>",
		Short: "List acts parsed from one issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var acts []registry.ActRecord
			path := fmt.Sprintf("/issues/%s/%s/acts", args[0], args[1])
			if err := client.Get(cmd.Context(), path, &acts); err != nil {
				return err
			}
			for _, a := range acts {
				fmt.Printf("%s  %s\n", a.ID, a.Subject)
			}
			return nil
		},
	}
}
