package usecase

import "github.com/xavierca1/fluent-crm/internal/entity"

func attachContactRelations(contacts []*entity.Contact, deals []*entity.Deal, tasks []*entity.Task) {
	byContact := make(map[string]*entity.Contact, len(contacts))
	for _, c := range contacts {
		c.Deals, c.Tasks = nil, nil
		byContact[c.ID] = c
	}
	for _, d := range deals {
		if c, ok := byContact[d.ContactID]; ok {
			c.Deals = append(c.Deals, d.Plain())
		}
	}
	for _, t := range tasks {
		if t.ContactID == nil {
			continue
		}
		if c, ok := byContact[*t.ContactID]; ok {
			c.Tasks = append(c.Tasks, t.Plain())
		}
	}
}

func attachDealTasks(deals []*entity.Deal, tasks []*entity.Task) {
	byDeal := make(map[string]*entity.Deal, len(deals))
	for _, d := range deals {
		d.Tasks = nil
		byDeal[d.ID] = d
	}
	for _, t := range tasks {
		if t.DealID == nil {
			continue
		}
		if d, ok := byDeal[*t.DealID]; ok {
			d.Tasks = append(d.Tasks, t.Plain())
		}
	}
}

func plainTasks(tasks []*entity.Task) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Plain())
	}
	return out
}

func plainDeals(deals []*entity.Deal) []entity.Deal {
	out := make([]entity.Deal, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.Plain())
	}
	return out
}

func plainInteractions(interactions []*entity.Interaction) []entity.Interaction {
	out := make([]entity.Interaction, 0, len(interactions))
	for _, i := range interactions {
		out = append(out, i.Plain())
	}
	return out
}
