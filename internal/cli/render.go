package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/xavierca1/fluent-crm/internal/crmclient"
	"github.com/xavierca1/fluent-crm/internal/entity"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

var locale = language.MustParse("es-AR")

type renderer struct {
	w      io.Writer
	format string
	p      *message.Printer
}

func newRenderer(w io.Writer, format string) (*renderer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported format %q (use text, json or yaml)", format)
	}
	return &renderer{w: w, format: format, p: message.NewPrinter(locale)}, nil
}

// structured writes v as JSON or YAML and reports whether it did.
func (r *renderer) structured(v any) (bool, error) {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		// round trip through JSON so YAML keys match the API field names
		raw, err := json.Marshal(v)
		if err != nil {
			return true, err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return true, err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return true, err
		}
		_, err = r.w.Write(out)
		return true, err
	default:
		return false, nil
	}
}

func (r *renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// money renders whole currency units with es-AR grouping.
func (r *renderer) money(v float64) string {
	return r.p.Sprintf("$ %d", int64(math.Round(v)))
}

func (r *renderer) board(columns []crmclient.StageColumn, summary entity.Summary) error {
	if ok, err := r.structured(columns); ok {
		return err
	}

	r.printf("PIPELINE · %s en %d oportunidades\n", r.money(summary.TotalPipelineValue), countDeals(columns))
	for _, col := range columns {
		r.printf("\n%s (%d) · %s\n", label(col.Stage), len(col.Deals), r.money(col.Total))
		if len(col.Deals) == 0 {
			r.printf("  (sin oportunidades)\n")
			continue
		}
		for _, d := range col.Deals {
			r.printf("  - %s\n", r.dealLine(d))
		}
	}
	return nil
}

func countDeals(columns []crmclient.StageColumn) int {
	n := 0
	for _, c := range columns {
		n += len(c.Deals)
	}
	return n
}

func (r *renderer) dealLine(d *entity.Deal) string {
	parts := []string{d.Title}
	if d.Contact != nil {
		parts = append(parts, fullName(d.Contact.FirstName, d.Contact.LastName))
	}
	parts = append(parts, r.money(d.Value))
	if d.Probability != nil {
		parts = append(parts, fmt.Sprintf("%d%%", *d.Probability))
	}
	return strings.Join(parts, " · ")
}

func (r *renderer) summary(s entity.Summary) error {
	if ok, err := r.structured(s); ok {
		return err
	}

	rows := []struct {
		label string
		value string
	}{
		{"Valor del pipeline", r.money(s.TotalPipelineValue)},
		{"Valor ganado", r.money(s.WonDealsValue)},
		{"Deals abiertos", r.p.Sprintf("%d", s.OpenDeals)},
		{"Contactos activos", r.p.Sprintf("%d", s.ActiveContacts)},
		{"Contactos totales", r.p.Sprintf("%d", s.TotalContacts)},
		{"Tareas vencidas", r.p.Sprintf("%d", s.OverdueTasks)},
		{"Interacciones (14 días)", r.p.Sprintf("%d", s.RecentInteractions)},
	}
	for _, row := range rows {
		r.printf("%-25s %s\n", row.label+":", row.value)
	}
	return nil
}

func (r *renderer) list(res crmclient.Resource, env *crmclient.Envelope) error {
	if ok, err := r.structured(env); ok {
		return err
	}

	var lines []string
	switch res {
	case crmclient.Contacts:
		for _, c := range env.Contacts {
			lines = append(lines, r.contactLine(c))
		}
	case crmclient.Deals:
		for _, d := range env.Deals {
			lines = append(lines, label(d.Stage)+" · "+r.dealLine(d))
		}
	case crmclient.Tasks:
		for _, t := range env.Tasks {
			lines = append(lines, r.taskLine(t))
		}
	case crmclient.Interactions:
		for _, i := range env.Interactions {
			lines = append(lines, r.interactionLine(i))
		}
	}

	r.printf("%s (%d)\n", resourceNames[string(res)], len(lines))
	for _, l := range lines {
		r.printf("  %s\n", l)
	}
	return nil
}

func (r *renderer) contactLine(c *entity.Contact) string {
	parts := []string{fullName(c.FirstName, c.LastName), c.Email, label(c.Status)}
	if c.Company != nil {
		parts = append(parts, c.Company.Name)
	}
	return strings.Join(parts, " · ")
}

func (r *renderer) taskLine(t *entity.Task) string {
	due := "sin fecha"
	if t.DueDate != nil {
		due = t.DueDate.Format(dateLayout)
	}
	return strings.Join([]string{t.Title, label(t.Status), label(t.Priority), due}, " · ")
}

func (r *renderer) interactionLine(i *entity.Interaction) string {
	return strings.Join([]string{i.OccurredAt.Format(dateTimeLayout), i.Channel, i.Summary}, " · ")
}

// record renders a single mutation result followed by the locally
// reconciled summary.
func (r *renderer) record(verb string, env *crmclient.Envelope, local entity.Summary) error {
	if ok, err := r.structured(env); ok {
		return err
	}

	switch {
	case env.Contact != nil:
		r.printf("Contacto %s: %s\n", verb, r.contactLine(env.Contact))
	case env.Deal != nil:
		r.printf("Oportunidad %s: %s\n", feminine(verb), r.dealLine(env.Deal))
	case env.Task != nil:
		r.printf("Tarea %s: %s\n", feminine(verb), r.taskLine(env.Task))
	case env.Interaction != nil:
		r.printf("Interacción %s: %s\n", feminine(verb), r.interactionLine(env.Interaction))
	}
	r.localSummary(local)
	return nil
}

func (r *renderer) removed(res crmclient.Resource, id string, local entity.Summary) error {
	if ok, err := r.structured(map[string]any{"success": true, "resource": res, "id": id}); ok {
		return err
	}
	r.printf("%s: eliminado %s\n", resourceNames[string(res)], id)
	r.localSummary(local)
	return nil
}

func (r *renderer) localSummary(s entity.Summary) {
	r.printf("Pipeline: %s · %d deals abiertos · %d tareas vencidas\n", r.money(s.TotalPipelineValue), s.OpenDeals, s.OverdueTasks)
}

func (r *renderer) lead(c *entity.Contact, created bool) error {
	if ok, err := r.structured(map[string]any{"contact": c, "created": created}); ok {
		return err
	}
	verb := "existente"
	if created {
		verb = "creado"
	}
	r.printf("Contacto %s: %s\n", verb, r.contactLine(c))
	return nil
}

// feminine turns a participle like "creado" into "creada".
func feminine(participle string) string {
	return strings.TrimSuffix(participle, "o") + "a"
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
