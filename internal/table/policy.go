package table

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Policy is how a controller resynchronizes its list after a confirmed change.
type Policy string

const (
	PolicyRefetch       Policy = "refetch"
	PolicyRemoveLocally Policy = "remove_locally"
)

// PolicyFor returns the post-mutate policy for op. Created and updated records carry
// server-computed fields, so they are fetched again; deleted records are dropped from the list.
func PolicyFor(op Operation) Policy {
	if op == OpDelete {
		return PolicyRemoveLocally
	}
	return PolicyRefetch
}
