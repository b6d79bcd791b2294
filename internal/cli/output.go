package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/guard"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/dashboard"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates an Output writing to cmd's streams
func NewOutput(cmd *cobra.Command) *Output {
	return &Output{format: cfg.Output, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	msg := describe(err)
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": msg,
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", msg)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

// describe renders err for the terminal
func describe(err error) string {
	var rejected *guard.RejectedError
	switch {
	case errors.As(err, &rejected):
		return "the server rejected your token; run 'rqadmin login'"
	case errors.Is(err, guard.ErrLoginRequired):
		return "not logged in; run 'rqadmin login'"
	case errors.Is(err, model.ErrReasonRequired):
		return "a rejection reason is required (--reason)"
	}
	return backend.Message(err, err.Error())
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case whoami:
		o.printWhoami(v)
	case []dashboard.Card:
		table(o, []string{"CARD", "COUNT", "PATH"}, v, func(c dashboard.Card) []string {
			return []string{c.Title, strconv.Itoa(c.Count), c.Path}
		})
	case []model.User:
		table(o, []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "JOINED"}, v, func(u model.User) []string {
			return []string{u.ID, u.Name, u.Email, string(u.Role), u.Status(), u.JoinDate}
		})
	case []reviewItem:
		table(o, []string{"ID", "ROCK", "SUBMITTED BY", "STATE", "CONFIDENCE", "REASON"}, v, func(p reviewItem) []string {
			confidence := "-"
			if p.Confidence != nil {
				confidence = fmt.Sprintf("%.0f%%", *p.Confidence*100)
			}
			return []string{p.ID, p.RockName, p.Username, string(p.State), confidence, p.RejectedReason}
		})
	case []reportItem:
		table(o, []string{"ID", "REPORTED BY", "ITEM", "REASON", "STATUS", "REPORTED"}, v, func(r reportItem) []string {
			return []string{r.ID, r.Username, r.ReportedItemType + " " + r.ReportedID, r.Reason, string(r.Status), r.ReportedAt.Date()}
		})
	case []model.Post:
		table(o, []string{"ID", "ROCK", "CREATOR", "CREATED"}, v, func(p model.Post) []string {
			return []string{p.ID, p.RockName, p.Creator(), p.CreatedAt.Date()}
		})
	case []model.Announcement:
		table(o, []string{"ID", "TITLE", "TYPE", "PUBLISHED"}, v, func(a model.Announcement) []string {
			return []string{a.ID, a.Title, string(a.Type), a.PublishDate.Date()}
		})
	case []model.Fact:
		table(o, []string{"ID", "TITLE", "AUTHOR", "CREATED"}, v, func(f model.Fact) []string {
			return []string{f.ID, f.Title, f.Author + " (" + f.AuthorRole + ")", f.CreatedAt.Date()}
		})
	case []model.Rock:
		table(o, []string{"ID", "NAME", "TYPE", "ADDED"}, v, func(r model.Rock) []string {
			return []string{r.ID, r.Name, string(r.Type), r.DateAdded.Date()}
		})
	case []model.Quest:
		table(o, []string{"ID", "TITLE", "TYPE", "DIFFICULTY", "STATUS", "REWARD"}, v, func(q model.Quest) []string {
			return []string{q.ID, q.Title, string(q.Type), string(q.Difficulty), string(q.Status), q.Reward}
		})
	case []model.Spawn:
		table(o, []string{"ID", "ROCK TYPE", "LOCATION", "LATITUDE", "LONGITUDE", "STATUS"}, v, func(s model.Spawn) []string {
			return []string{s.ID, s.RockType, s.Location, formatFloat(s.Latitude), formatFloat(s.Longitude), s.Status}
		})
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// table writes rows as aligned columns
func table[T any](o *Output, header []string, rows []T, cells func(T) []string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(o.out, "Nothing found")
		return
	}

	tw := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
	writeRow(tw, header)
	for _, row := range rows {
		writeRow(tw, cells(row))
	}
	_ = tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			_, _ = io.WriteString(w, "\t")
		}
		_, _ = io.WriteString(w, cell)
	}
	_, _ = io.WriteString(w, "\n")
}

func (o *Output) printWhoami(w whoami) {
	_, _ = fmt.Fprintf(o.out, "Server: %s\n", w.Server)
	if w.Email != "" {
		_, _ = fmt.Fprintf(o.out, "Email: %s\n", w.Email)
	}
	if w.Subject != "" {
		_, _ = fmt.Fprintf(o.out, "Subject: %s\n", w.Subject)
	}
	if w.ExpiresAt != nil {
		_, _ = fmt.Fprintf(o.out, "Expires: %s\n", w.ExpiresAt.Format("02/01/2006, 15:04:05"))
	}
	if w.Email == "" && w.Subject == "" {
		_, _ = fmt.Fprintln(o.out, "Logged in (opaque token)")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
