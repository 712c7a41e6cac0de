package domain

// ActorType identifies who triggered a workflow change.
type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorStaff    ActorType = "staff"
)
