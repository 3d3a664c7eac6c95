package frame

import (
	"github.com/pkg/errors"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// Role is one named slot in an instruction's account declaration. Roles bind
// positionally against the host-provided account list, so declaration order
// is part of the program's external interface.
type Role struct {
	Name string

	// Constraints, evaluated in a fixed order: signer, writable, owner,
	// address/seeds, discriminant.
	Signer         bool
	Writable       bool
	OwnedByProgram bool              // owner must equal the executing program
	Owner          *solana.PublicKey // owner must equal a specific program
	Address        *solana.PublicKey // key must equal an exact address
	Seeds          *SeedSpec         // key must equal the derived address
	Discriminant   []byte            // leading account data bytes must match

	// Optional roles bind the absent sentinel (an account keyed by the
	// executing program id) or an exhausted cursor without failing.
	Optional bool

	// AllowDuplicate marks the role reentrant-safe: it may share an address
	// with another writable binding without tripping the aliasing check.
	AllowDuplicate bool

	// Init declares create-on-demand. Requires Seeds.
	Init *InitSpec

	// Close declares a closure obligation discharged after a successful
	// handler.
	Close *CloseSpec

	// Nested composes an inner account set in place of a single account.
	// A nested role carries no constraints of its own.
	Nested []Role
}

// InitSpec declares how an account is created for a role flagged
// create-on-demand. Creation is a host allocation request funded by the
// named funder role; the created account is owned by the executing program
// and stamped with the role's declared discriminant.
type InitSpec struct {
	// Eager creates during composition, before the handler runs, so the
	// handler observes the created account. Otherwise creation is deferred
	// until after the handler returns successfully.
	Eager bool

	// Space is the data size of the created account, including the
	// discriminant.
	Space uint64

	// Funder names the (signer, writable) role paying rent for the creation.
	Funder string
}

// CloseSpec declares the closure obligation for a role: after a successful
// handler, all lamports move to the destination role, the data is zeroed, and
// ownership reverts to the system program. A failed handler skips closure.
type CloseSpec struct {
	// Destination names the writable role receiving the closed account's
	// lamports.
	Destination string
}

// checkRoles validates a role declaration list at program definition time.
func checkRoles(roles []Role) error {
	seen := make(map[string]struct{})

	var walk func(roles []Role) error
	walk = func(roles []Role) error {
		for i, role := range roles {
			if role.Name == "" {
				return errors.Errorf("role %d has no name", i)
			}
			if _, ok := seen[role.Name]; ok {
				return errors.Errorf("duplicate role name %q", role.Name)
			}
			seen[role.Name] = struct{}{}

			if len(role.Nested) > 0 {
				if role.Signer || role.Writable || role.OwnedByProgram || role.Owner != nil ||
					role.Address != nil || role.Seeds != nil || role.Discriminant != nil ||
					role.Init != nil || role.Close != nil || role.Optional {
					return errors.Errorf("nested role %q cannot carry account constraints", role.Name)
				}
				if err := walk(role.Nested); err != nil {
					return err
				}
				continue
			}

			if role.Init != nil {
				if role.Seeds == nil {
					return errors.Errorf("init role %q requires seeds", role.Name)
				}
				if role.Seeds.Bump != nil {
					return errors.Errorf("init role %q cannot pin a bump", role.Name)
				}
				if !role.Writable {
					return errors.Errorf("init role %q must be writable", role.Name)
				}
				if role.Optional {
					return errors.Errorf("init role %q cannot be optional", role.Name)
				}
				if role.Init.Space < uint64(len(role.Discriminant)) {
					return errors.Errorf("init role %q space smaller than discriminant", role.Name)
				}
				funder := findRole(roles, role.Init.Funder)
				if funder == nil {
					return errors.Errorf("init role %q references unknown funder %q", role.Name, role.Init.Funder)
				}
				if !funder.Signer || !funder.Writable {
					return errors.Errorf("funder %q must be a writable signer", role.Init.Funder)
				}
			}

			if role.Close != nil {
				if !role.Writable {
					return errors.Errorf("close role %q must be writable", role.Name)
				}
				destination := findRole(roles, role.Close.Destination)
				if destination == nil {
					return errors.Errorf("close role %q references unknown destination %q", role.Name, role.Close.Destination)
				}
				if !destination.Writable {
					return errors.Errorf("close destination %q must be writable", role.Close.Destination)
				}
			}
		}
		return nil
	}

	return walk(roles)
}

func findRole(roles []Role, name string) *Role {
	for i := range roles {
		if roles[i].Name == name {
			return &roles[i]
		}
	}
	return nil
}
