package session

// MutationPolicy fixes when a local collection reflects a mutation
// relative to remote confirmation.
type MutationPolicy int

const (
	// ConfirmThenApply mutates the local collection only after the
	// persistent store confirms. A failed write leaves local state
	// untouched.
	ConfirmThenApply MutationPolicy = iota

	// Optimistic mutates the local collection immediately and issues
	// the remote request afterwards. Recovery from a failed write is a
	// full refetch, not a piecemeal rollback.
	Optimistic
)

func (p MutationPolicy) String() string {
	switch p {
	case ConfirmThenApply:
		return "confirm_then_apply"
	case Optimistic:
		return "optimistic"
	default:
		return "unknown"
	}
}

// Policies bundles the per-mutation disciplines of one view. Each view
// picks one set up front instead of improvising per call site.
type Policies struct {
	Add    MutationPolicy
	Update MutationPolicy
	Remove MutationPolicy
}

// DefaultPolicies returns the standard disciplines: add and update wait
// for confirmation, delete is optimistic.
func DefaultPolicies() Policies {
	return Policies{
		Add:    ConfirmThenApply,
		Update: ConfirmThenApply,
		Remove: Optimistic,
	}
}
