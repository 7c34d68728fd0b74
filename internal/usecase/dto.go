package usecase

import "github.com/xavierca1/fluent-crm/internal/entity"

type CaptureLeadInput struct {
	Email  Text `json:"email" validate:"required,contains=@,max=320"`
	Source Text `json:"source"`
	Notes  Text `json:"notes"`
}

type CaptureLeadOutput struct {
	Contact *entity.Contact `json:"contact"`
	Created bool            `json:"-"`
}

// CompanyInput is the nested form of the company fields a contact may carry.
type CompanyInput struct {
	Name     Text `json:"name"`
	Industry Text `json:"industry"`
	Website  Text `json:"website"`
}

type CreateContactInput struct {
	FirstName Text `json:"firstName" validate:"required"`
	LastName  Text `json:"lastName" validate:"required"`
	Email     Text `json:"email" validate:"required"`
	Phone     Text `json:"phone"`
	Position  Text `json:"position"`
	Source    Text `json:"source"`
	Notes     Text `json:"notes"`
	Status    Text `json:"status"`

	CompanyID       Text          `json:"companyId"`
	Company         *CompanyInput `json:"company"`
	CompanyName     Text          `json:"companyName"`
	CompanyIndustry Text          `json:"companyIndustry"`
	CompanyWebsite  Text          `json:"companyWebsite"`
}

// company merges the nested and flat company fields, nested first.
func (in CreateContactInput) company() (name string, industry, website *string, ok bool) {
	var nested CompanyInput
	if in.Company != nil {
		nested = *in.Company
	}
	name, ok = firstText(nested.Name, in.CompanyName)
	if !ok {
		return "", nil, nil, false
	}
	if v, set := firstText(nested.Industry, in.CompanyIndustry); set {
		industry = &v
	}
	if v, set := firstText(nested.Website, in.CompanyWebsite); set {
		website = &v
	}
	return name, industry, website, true
}

func firstText(values ...Text) (string, bool) {
	for _, t := range values {
		if v, ok := t.Get(); ok {
			return v, true
		}
	}
	return "", false
}

type UpdateContactInput struct {
	FirstName Text `json:"firstName"`
	LastName  Text `json:"lastName"`
	Email     Text `json:"email"`
	Phone     Text `json:"phone"`
	Position  Text `json:"position"`
	Source    Text `json:"source"`
	Notes     Text `json:"notes"`
	Status    Text `json:"status"`
	CompanyID Text `json:"companyId"`
}

type CreateDealInput struct {
	Title         Text   `json:"title" validate:"required"`
	ContactID     Text   `json:"contactId" validate:"required"`
	Value         Number `json:"value"`
	Probability   Number `json:"probability"`
	ExpectedClose Text   `json:"expectedClose"`
	Stage         Text   `json:"stage"`
	Notes         Text   `json:"notes"`
	CompanyID     Text   `json:"companyId"`
}

type UpdateDealInput struct {
	// ID and DealID identify the deal on the collection-level routes.
	ID     Text `json:"id"`
	DealID Text `json:"dealId"`

	Title         Text   `json:"title"`
	Value         Number `json:"value"`
	Probability   Number `json:"probability"`
	ExpectedClose Text   `json:"expectedClose"`
	Stage         Text   `json:"stage"`
	Notes         Text   `json:"notes"`
	ContactID     Text   `json:"contactId"`
	CompanyID     Text   `json:"companyId"`
}

func (in UpdateDealInput) TargetID() (string, bool) {
	return firstText(in.ID, in.DealID)
}

type CreateTaskInput struct {
	Title       Text `json:"title" validate:"required"`
	Description Text `json:"description"`
	DueDate     Text `json:"dueDate"`
	Status      Text `json:"status"`
	Priority    Text `json:"priority"`
	ContactID   Text `json:"contactId"`
	DealID      Text `json:"dealId"`
}

type UpdateTaskInput struct {
	ID     Text `json:"id"`
	TaskID Text `json:"taskId"`

	Title       Text `json:"title"`
	Description Text `json:"description"`
	DueDate     Text `json:"dueDate"`
	Status      Text `json:"status"`
	Priority    Text `json:"priority"`
	ContactID   Text `json:"contactId"`
	DealID      Text `json:"dealId"`
}

func (in UpdateTaskInput) TargetID() (string, bool) {
	return firstText(in.ID, in.TaskID)
}

type CreateInteractionInput struct {
	Channel    Text `json:"channel" validate:"required"`
	Summary    Text `json:"summary" validate:"required"`
	OccurredAt Text `json:"occurredAt"`
	ContactID  Text `json:"contactId"`
	DealID     Text `json:"dealId"`
}

type UpdateInteractionInput struct {
	Channel    Text `json:"channel"`
	Summary    Text `json:"summary"`
	OccurredAt Text `json:"occurredAt"`
	ContactID  Text `json:"contactId"`
	DealID     Text `json:"dealId"`
}

// IDInput is the body of the collection-level delete routes.
type IDInput struct {
	ID     Text `json:"id"`
	DealID Text `json:"dealId"`
	TaskID Text `json:"taskId"`
}

func (in IDInput) TargetID() (string, bool) {
	return firstText(in.ID, in.DealID, in.TaskID)
}

type Overview struct {
	Contacts     []*entity.Contact     `json:"contacts"`
	Deals        []*entity.Deal        `json:"deals"`
	Tasks        []*entity.Task        `json:"tasks"`
	Interactions []*entity.Interaction `json:"interactions"`
	Summary      entity.Summary        `json:"summary"`
}
