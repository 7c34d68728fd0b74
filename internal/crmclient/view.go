package crmclient

import (
	"slices"
	"time"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

// View is the local copy of the CRM a client renders. Mutations are
// reconciled from server responses instead of reloading everything, so it
// may drift from the server until the next full load.
type View struct {
	Contacts     []*entity.Contact
	Deals        []*entity.Deal
	Tasks        []*entity.Task
	Interactions []*entity.Interaction
}

func NewView(o *Overview) *View {
	if o == nil {
		return &View{}
	}
	return &View{
		Contacts:     o.Contacts,
		Deals:        o.Deals,
		Tasks:        o.Tasks,
		Interactions: o.Interactions,
	}
}

// ApplyMutation upserts every record in a mutation response to the front of
// its collection.
func (v *View) ApplyMutation(e *Envelope) {
	if e == nil {
		return
	}
	if e.Contact != nil {
		v.Contacts = upsertFront(v.Contacts, e.Contact, func(c *entity.Contact) string { return c.ID })
	}
	if e.Deal != nil {
		v.Deals = upsertFront(v.Deals, e.Deal, func(d *entity.Deal) string { return d.ID })
	}
	if e.Task != nil {
		v.Tasks = upsertFront(v.Tasks, e.Task, func(t *entity.Task) string { return t.ID })
	}
	if e.Interaction != nil {
		v.Interactions = upsertFront(v.Interactions, e.Interaction, func(i *entity.Interaction) string { return i.ID })
	}
}

func upsertFront[T any](items []T, item T, id func(T) string) []T {
	key := id(item)
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	for _, existing := range items {
		if id(existing) != key {
			out = append(out, existing)
		}
	}
	return out
}

// Remove drops a record locally. A contact takes its deals and tasks with
// it; a deal takes its tasks.
func (v *View) Remove(r Resource, id string) {
	switch r {
	case Contacts:
		v.Contacts = slices.DeleteFunc(v.Contacts, func(c *entity.Contact) bool { return c.ID == id })
		v.Deals = slices.DeleteFunc(v.Deals, func(d *entity.Deal) bool { return d.ContactID == id })
		v.Tasks = slices.DeleteFunc(v.Tasks, func(t *entity.Task) bool { return t.ContactID != nil && *t.ContactID == id })
	case Deals:
		v.Deals = slices.DeleteFunc(v.Deals, func(d *entity.Deal) bool { return d.ID == id })
		v.Tasks = slices.DeleteFunc(v.Tasks, func(t *entity.Task) bool { return t.DealID != nil && *t.DealID == id })
	case Tasks:
		v.Tasks = slices.DeleteFunc(v.Tasks, func(t *entity.Task) bool { return t.ID == id })
	case Interactions:
		v.Interactions = slices.DeleteFunc(v.Interactions, func(i *entity.Interaction) bool { return i.ID == id })
	}
}

func (v *View) Summary(now time.Time) entity.Summary {
	return entity.Summarize(v.Contacts, v.Deals, v.Tasks, v.Interactions, now)
}

// StageColumn is one column of the pipeline board.
type StageColumn struct {
	Stage entity.DealStage
	Deals []*entity.Deal
	Total float64
}

// Pipeline groups deals by stage in pipeline order, keeping the local order
// inside each column. Every stage gets a column, empty or not.
func (v *View) Pipeline() []StageColumn {
	columns := make([]StageColumn, len(entity.DealStages))
	index := make(map[entity.DealStage]int, len(entity.DealStages))
	for i, stage := range entity.DealStages {
		columns[i] = StageColumn{Stage: stage}
		index[stage] = i
	}
	for _, d := range v.Deals {
		i, ok := index[d.Stage]
		if !ok {
			continue
		}
		columns[i].Deals = append(columns[i].Deals, d)
		columns[i].Total += d.Value
	}
	return columns
}
