// Package cli implements crmctl, a terminal view over the CRM API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xavierca1/fluent-crm/internal/crmclient"
	"github.com/xavierca1/fluent-crm/internal/entity"
)

const defaultAPIURL = "http://localhost:8080"

// API is the part of crmclient.Client the commands use.
type API interface {
	Overview(ctx context.Context) (*crmclient.Overview, error)
	Summary(ctx context.Context) (entity.Summary, error)
	CaptureLead(ctx context.Context, email string) (*entity.Contact, bool, error)
	List(ctx context.Context, r crmclient.Resource) (*crmclient.Envelope, error)
	Create(ctx context.Context, r crmclient.Resource, fields map[string]any) (*crmclient.Envelope, error)
	Update(ctx context.Context, r crmclient.Resource, id string, fields map[string]any) (*crmclient.Envelope, error)
	Delete(ctx context.Context, r crmclient.Resource, id string) error
}

type Config struct {
	// API overrides the HTTP client built from --api-url.
	API API
	// Now defaults to time.Now.
	Now func() time.Time
}

type app struct {
	cfg    Config
	v      *viper.Viper
	api    API
	render *renderer
}

func NewRootCommand(cfg Config) *cobra.Command {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	a := &app{cfg: cfg, v: viper.New()}

	cmd := &cobra.Command{
		Use:           "crmctl",
		Short:         "Terminal view of the CRM pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-url", defaultAPIURL, "CRM API base URL ($CRM_API_URL)")
	flags.StringP("format", "o", FormatText, "output format: text, json or yaml")
	_ = a.v.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = a.v.BindPFlag("format", flags.Lookup("format"))
	_ = a.v.BindEnv("api_url", "CRM_API_URL")
	_ = a.v.BindEnv("format", "CRM_FORMAT")

	cmd.AddCommand(
		a.boardCmd(),
		a.summaryCmd(),
		a.listCmd(),
		a.leadCmd(),
		a.createCmd(),
		a.updateCmd(),
		a.deleteCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	r, err := newRenderer(cmd.OutOrStdout(), a.v.GetString("format"))
	if err != nil {
		return err
	}
	a.render = r

	a.api = a.cfg.API
	if a.api == nil {
		a.api = crmclient.New(a.v.GetString("api_url"), nil)
	}
	return nil
}

func (a *app) boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show deals grouped by pipeline stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview, err := a.api.Overview(cmd.Context())
			if err != nil {
				return err
			}
			view := crmclient.NewView(overview)
			return a.render.board(view.Pipeline(), view.Summary(a.cfg.Now()))
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the CRM summary metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.api.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return a.render.summary(s)
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <resource>",
		Short:     "List contacts, deals, tasks or interactions",
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := crmclient.ParseResource(args[0])
			if err != nil {
				return err
			}
			env, err := a.api.List(cmd.Context(), res)
			if err != nil {
				return err
			}
			return a.render.list(res, env)
		},
	}
}

func (a *app) leadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lead <email>",
		Short: "Register a landing page lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contact, created, err := a.api.CaptureLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render.lead(contact, created)
		},
	}
}

func (a *app) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "create <resource> field=value...",
		Short:   "Create a record",
		Example: "  crmctl create deal title='Plan anual' contactId=... value=12500",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := crmclient.ParseResource(args[0])
			if err != nil {
				return err
			}
			fields, err := parseFields(args[1:])
			if err != nil {
				return err
			}
			return a.mutate(cmd.Context(), "creado", func(ctx context.Context) (*crmclient.Envelope, error) {
				return a.api.Create(ctx, res, fields)
			})
		},
	}
}

func (a *app) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "update <resource> <id> field=value...",
		Short:   "Patch a record; field=null clears it",
		Example: "  crmctl update deal 0b6f... stage=WON probability=null",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := crmclient.ParseResource(args[0])
			if err != nil {
				return err
			}
			fields, err := parseFields(args[2:])
			if err != nil {
				return err
			}
			return a.mutate(cmd.Context(), "actualizado", func(ctx context.Context) (*crmclient.Envelope, error) {
				return a.api.Update(ctx, res, args[1], fields)
			})
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := crmclient.ParseResource(args[0])
			if err != nil {
				return err
			}
			view, err := a.view(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.api.Delete(cmd.Context(), res, args[1]); err != nil {
				return err
			}
			view.Remove(res, args[1])
			return a.render.removed(res, args[1], view.Summary(a.cfg.Now()))
		},
	}
}

// mutate runs a write against the API and reconciles the result into the
// locally loaded view instead of reloading it.
func (a *app) mutate(ctx context.Context, verb string, write func(context.Context) (*crmclient.Envelope, error)) error {
	view, err := a.view(ctx)
	if err != nil {
		return err
	}
	env, err := write(ctx)
	if err != nil {
		return err
	}
	view.ApplyMutation(env)
	return a.render.record(verb, env, view.Summary(a.cfg.Now()))
}

func (a *app) view(ctx context.Context) (*crmclient.View, error) {
	overview, err := a.api.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}
	return crmclient.NewView(overview), nil
}

func resourceArgs() []string {
	out := make([]string, 0, len(crmclient.Resources))
	for _, r := range crmclient.Resources {
		out = append(out, string(r))
	}
	return out
}

var errBadField = errors.New("fields must look like name=value")

// parseFields turns name=value arguments into a JSON body. The literal null
// sends an explicit null.
func parseFields(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errBadField, arg)
		}
		if value == "null" {
			fields[name] = nil
			continue
		}
		fields[name] = value
	}
	return fields, nil
}
