package models

// Report is computed on demand and never persisted.
type Report struct {
	TotalTasks   int
	ByStatus     map[Status]int
	ByAssignee   map[int64]int
	Overdue      []Task
	Productivity []MemberProductivity
}

type MemberProductivity struct {
	MemberId       int64
	MemberName     string
	CompletedTasks int
	TotalTasks     int
	CompletionRate float64
	Workload       int
}
