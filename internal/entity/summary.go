package entity

import "time"

type Summary struct {
	// Sum of every deal value, WON and LOST included.
	TotalPipelineValue float64 `json:"totalPipelineValue"`
	OpenDeals          int     `json:"openDeals"`
	ActiveContacts     int     `json:"activeContacts"`
	OverdueTasks       int     `json:"overdueTasks"`
	RecentInteractions int     `json:"recentInteractions"`
	TotalContacts      int     `json:"totalContacts"`
	WonDealsValue      float64 `json:"wonDealsValue"`
}

func Summarize(contacts []*Contact, deals []*Deal, tasks []*Task, interactions []*Interaction, now time.Time) Summary {
	s := Summary{TotalContacts: len(contacts)}

	for _, d := range deals {
		s.TotalPipelineValue += d.Value
		if d.Open() {
			s.OpenDeals++
		}
		if d.Stage == DealStageWon {
			s.WonDealsValue += d.Value
		}
	}
	for _, c := range contacts {
		if c.Status == ContactStatusActive {
			s.ActiveContacts++
		}
	}
	for _, t := range tasks {
		if t.Overdue(now) {
			s.OverdueTasks++
		}
	}
	for _, i := range interactions {
		if i.Recent(now) {
			s.RecentInteractions++
		}
	}
	return s
}
