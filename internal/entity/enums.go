package entity

// ContactStatus is the lifecycle state of a contact.
type ContactStatus string

const (
	ContactStatusLead    ContactStatus = "LEAD"
	ContactStatusActive  ContactStatus = "ACTIVE"
	ContactStatusChurned ContactStatus = "CHURNED"
)

var ContactStatuses = []ContactStatus{
	ContactStatusLead,
	ContactStatusActive,
	ContactStatusChurned,
}

// DealStage is a pipeline stage. The order of DealStages is the board order.
type DealStage string

const (
	DealStageQualification DealStage = "QUALIFICATION"
	DealStageNeedsAnalysis DealStage = "NEEDS_ANALYSIS"
	DealStageProposal      DealStage = "PROPOSAL"
	DealStageNegotiation   DealStage = "NEGOTIATION"
	DealStageWon           DealStage = "WON"
	DealStageLost          DealStage = "LOST"
)

var DealStages = []DealStage{
	DealStageQualification,
	DealStageNeedsAnalysis,
	DealStageProposal,
	DealStageNegotiation,
	DealStageWon,
	DealStageLost,
}

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses is in sort order: listings put OPEN first and COMPLETED last.
var TaskStatuses = []TaskStatus{
	TaskStatusOpen,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
}

func parseEnum[T ~string](values []T, raw string) (T, bool) {
	for _, v := range values {
		if string(v) == raw {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func ParseContactStatus(raw string) (ContactStatus, bool) { return parseEnum(ContactStatuses, raw) }
func ParseDealStage(raw string) (DealStage, bool)         { return parseEnum(DealStages, raw) }
func ParseTaskStatus(raw string) (TaskStatus, bool)       { return parseEnum(TaskStatuses, raw) }
func ParseTaskPriority(raw string) (TaskPriority, bool)   { return parseEnum(TaskPriorities, raw) }

func (s ContactStatus) Valid() bool {
	_, ok := ParseContactStatus(string(s))
	return ok
}

func (s DealStage) Valid() bool {
	_, ok := ParseDealStage(string(s))
	return ok
}

func (s TaskStatus) Valid() bool {
	_, ok := ParseTaskStatus(string(s))
	return ok
}

func (p TaskPriority) Valid() bool {
	_, ok := ParseTaskPriority(string(p))
	return ok
}

// Closed reports whether the deal left the pipeline (WON or LOST).
func (s DealStage) Closed() bool {
	return s == DealStageWon || s == DealStageLost
}
