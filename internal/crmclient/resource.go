package crmclient

import (
	"fmt"
	"strings"
)

// Resource names one CRM collection as it appears in the API path.
type Resource string

const (
	Contacts     Resource = "contacts"
	Deals        Resource = "deals"
	Tasks        Resource = "tasks"
	Interactions Resource = "interactions"
)

var Resources = []Resource{Contacts, Deals, Tasks, Interactions}

// ParseResource accepts the plural or singular name, in any case.
func ParseResource(raw string) (Resource, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range Resources {
		if name == string(r) || name == r.Singular() {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q", raw)
}

func (r Resource) Singular() string {
	return strings.TrimSuffix(string(r), "s")
}
