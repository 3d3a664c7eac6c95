package frame

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// AccountSet is the validated, ordered binding of an instruction's declared
// roles to host-provided accounts. An AccountSet only reaches handler code
// after every role has been bound and every constraint has passed.
type AccountSet struct {
	roles    []Role
	accounts []*Account    // parallel to roles; nil for absent optionals and nested roles
	nested   []*AccountSet // parallel to roles; non-nil only for nested roles
	bumps    map[string]uint8
}

// Account returns the bound account for the named role, searching nested sets
// recursively. Absent optional roles return nil.
func (s *AccountSet) Account(name string) *Account {
	for i := range s.roles {
		if s.roles[i].Name == name {
			return s.accounts[i]
		}
		if s.nested[i] != nil {
			if account := s.nested[i].Account(name); account != nil {
				return account
			}
		}
	}
	return nil
}

// Nested returns the composed inner set for the named nested role.
func (s *AccountSet) Nested(name string) *AccountSet {
	for i := range s.roles {
		if s.roles[i].Name == name {
			return s.nested[i]
		}
	}
	return nil
}

// Bump returns the bump resolved for the named seeded role during
// composition.
func (s *AccountSet) Bump(name string) (uint8, bool) {
	bump, ok := s.bumps[name]
	return bump, ok
}

// cursor walks the host-provided account list. Binding is strictly
// positional: each role consumes the next account in order.
type cursor struct {
	accounts  []*Account
	pos       int
	programID solana.PublicKey
}

func (c *cursor) next(role *Role) (*Account, error) {
	if c.pos >= len(c.accounts) {
		if role.Optional {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrAccountMissing, "account %s", role.Name)
	}

	account := c.accounts[c.pos]
	c.pos++

	// The executing program id doubles as the absent sentinel, except where
	// a role explicitly expects that address.
	if account.Key.Equals(c.programID) && (role.Address == nil || !role.Address.Equals(c.programID)) {
		if role.Optional {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrAccountOrder, "account %s bound to absent sentinel", role.Name)
	}

	return account, nil
}

// Approximate compute cost of one program address derivation, matching the
// host runtime's pricing.
const computeUnitsPerDerivation = 1500

// composer drives binding, validation, and lifecycle obligations for one
// instruction's account declaration.
type composer struct {
	ctx         *Context
	obligations []obligation
}

type obligationKind uint8

const (
	obligationCreate obligationKind = iota
	obligationClose
)

type obligation struct {
	kind obligationKind
	set  *AccountSet
	idx  int
}

// compose binds and validates the full role tree. On return the account set
// is complete: every required role bound exactly once, every constraint
// checked, eager creations performed. Deferred creations and closures remain
// as obligations for discharge after the handler.
func (c *composer) compose(roles []Role, cur *cursor) (*AccountSet, error) {
	set, err := c.bind(roles, cur)
	if err != nil {
		return nil, err
	}

	if err := c.validate(set, set); err != nil {
		return nil, err
	}

	if err := checkAliasing(set); err != nil {
		return nil, err
	}

	// Eager creations happen during composition, before the handler, so the
	// bound handle already reflects the created account when handler code
	// runs. Deferred creations and closures discharge afterwards.
	for _, o := range c.obligations {
		if o.kind == obligationCreate && o.set.roles[o.idx].Init.Eager {
			if err := c.create(set, o.set, o.idx); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// bind consumes accounts positionally for every role, recursing into nested
// declarations. No constraint is evaluated yet; a binding failure aborts the
// whole composition.
func (c *composer) bind(roles []Role, cur *cursor) (*AccountSet, error) {
	set := &AccountSet{
		roles:    roles,
		accounts: make([]*Account, len(roles)),
		nested:   make([]*AccountSet, len(roles)),
		bumps:    make(map[string]uint8),
	}

	for i := range roles {
		if len(roles[i].Nested) > 0 {
			inner, err := c.bind(roles[i].Nested, cur)
			if err != nil {
				return nil, err
			}
			set.nested[i] = inner
			continue
		}

		account, err := cur.next(&roles[i])
		if err != nil {
			return nil, err
		}
		set.accounts[i] = account
	}

	return set, nil
}

// validate evaluates every role's constraints in declaration order, failing
// fast on the first violation. root is the top of the composed tree so seed
// components can reference roles across nesting levels.
func (c *composer) validate(root, set *AccountSet) error {
	for i := range set.roles {
		role := &set.roles[i]

		if set.nested[i] != nil {
			if err := c.validate(root, set.nested[i]); err != nil {
				return err
			}
			continue
		}

		account := set.accounts[i]
		if account == nil {
			continue // absent optional
		}

		if err := c.validateRole(root, set, i, role, account); err != nil {
			return err
		}
	}

	return nil
}

func (c *composer) validateRole(root, set *AccountSet, idx int, role *Role, account *Account) error {
	if role.Signer && !account.IsSigner {
		return errors.Wrapf(ErrNotSigner, "account %s", role.Name)
	}
	if role.Writable && !account.IsWritable {
		return errors.Wrapf(ErrNotWritable, "account %s", role.Name)
	}

	if role.Init != nil {
		return c.validateInitRole(root, set, idx, role, account)
	}

	if role.OwnedByProgram && !account.IsOwnedBy(c.ctx.programID) {
		return &OwnerMismatchError{Role: role.Name, Expected: c.ctx.programID, Actual: account.Owner}
	}
	if role.Owner != nil && !account.IsOwnedBy(*role.Owner) {
		return &OwnerMismatchError{Role: role.Name, Expected: *role.Owner, Actual: account.Owner}
	}

	if role.Address != nil && !account.Key.Equals(*role.Address) {
		return &AddressMismatchError{Role: role.Name, Expected: *role.Address, Actual: account.Key}
	}
	if role.Seeds != nil {
		if err := c.ctx.ConsumeUnits(computeUnitsPerDerivation); err != nil {
			return err
		}
		derived, bump, err := role.Seeds.Derive(c.ctx.programID, root)
		if err != nil {
			return errors.Wrapf(err, "failed to derive address for account %s", role.Name)
		}
		if !account.Key.Equals(derived) {
			return &AddressMismatchError{Role: role.Name, Expected: derived, Actual: account.Key}
		}
		set.bumps[role.Name] = bump
	}

	if len(role.Discriminant) > 0 {
		if len(account.Data) < len(role.Discriminant) ||
			!bytes.Equal(account.Data[:len(role.Discriminant)], role.Discriminant) {
			return errors.Wrapf(ErrDiscriminantMismatch, "account %s", role.Name)
		}
	}

	if role.Close != nil {
		c.obligations = append(c.obligations, obligation{kind: obligationClose, set: set, idx: idx})
	}

	return nil
}

// validateInitRole checks a create-on-demand role: the account must not be
// initialized yet, and its address must match the derived seeds. Ownership
// and discriminant constraints apply to the account as created, not as
// supplied.
func (c *composer) validateInitRole(root, set *AccountSet, idx int, role *Role, account *Account) error {
	if account.IsOwnedBy(c.ctx.programID) || len(account.Data) > 0 {
		return errors.Wrapf(ErrAccountAlreadyInitialized, "account %s", role.Name)
	}

	if err := c.ctx.ConsumeUnits(computeUnitsPerDerivation); err != nil {
		return err
	}
	derived, bump, err := role.Seeds.Derive(c.ctx.programID, root)
	if err != nil {
		return errors.Wrapf(err, "failed to derive address for account %s", role.Name)
	}
	if !account.Key.Equals(derived) {
		return &AddressMismatchError{Role: role.Name, Expected: derived, Actual: account.Key}
	}
	set.bumps[role.Name] = bump

	c.obligations = append(c.obligations, obligation{kind: obligationCreate, set: set, idx: idx})
	return nil
}

// create services one creation obligation through the host, then stamps the
// declared discriminant into the fresh account data.
func (c *composer) create(root, set *AccountSet, idx int) error {
	role := &set.roles[idx]
	account := set.accounts[idx]

	funder := set.Account(role.Init.Funder)
	if funder == nil {
		return errors.Wrapf(ErrAccountMissing, "funder %s", role.Init.Funder)
	}

	rent, err := c.ctx.Rent()
	if err != nil {
		return errors.Wrap(err, "failed to load rent sysvar")
	}

	seeds, err := role.Seeds.signerSeeds(root, set.bumps[role.Name])
	if err != nil {
		return err
	}

	lamports := rent.MinimumBalance(role.Init.Space)
	if err := c.ctx.host.CreateAccount(funder, account, c.ctx.programID, role.Init.Space, lamports, seeds); err != nil {
		return errors.Wrapf(err, "failed to create account %s", role.Name)
	}

	copy(account.Data, role.Discriminant)

	c.ctx.log.WithFields(logrus.Fields{
		"account":  account.Key.String(),
		"space":    role.Init.Space,
		"lamports": lamports,
	}).Debug("created account")

	return nil
}

// closeAccount discharges one closure obligation: drain lamports to the
// destination, zero the data, and return ownership to the system program.
func (c *composer) closeAccount(set *AccountSet, idx int) error {
	role := &set.roles[idx]
	account := set.accounts[idx]

	destination := set.Account(role.Close.Destination)
	if destination == nil {
		return errors.Wrapf(ErrAccountMissing, "close destination %s", role.Close.Destination)
	}

	destination.Lamports += account.Lamports
	account.Lamports = 0
	account.zero()
	account.Owner = solana.SystemProgramID

	c.ctx.log.WithField("account", account.Key.String()).Debug("closed account")

	return nil
}

// discharge runs the remaining obligations after a successful handler, in
// declaration order. Never called when the handler fails.
func (c *composer) discharge(root *AccountSet) error {
	for _, o := range c.obligations {
		switch o.kind {
		case obligationCreate:
			if o.set.roles[o.idx].Init.Eager {
				continue // already created during composition
			}
			if err := c.create(root, o.set, o.idx); err != nil {
				return err
			}
		case obligationClose:
			if err := c.closeAccount(o.set, o.idx); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkAliasing rejects two writable bindings of the same address unless
// every involved role opted in as reentrant-safe.
func checkAliasing(root *AccountSet) error {
	type binding struct {
		role           string
		writable       int
		allowDuplicate bool
	}
	seen := make(map[solana.PublicKey]*binding)

	var walk func(set *AccountSet) error
	walk = func(set *AccountSet) error {
		for i := range set.roles {
			if set.nested[i] != nil {
				if err := walk(set.nested[i]); err != nil {
					return err
				}
				continue
			}

			role := &set.roles[i]
			account := set.accounts[i]
			if account == nil {
				continue
			}

			prev, ok := seen[account.Key]
			if !ok {
				seen[account.Key] = &binding{
					role:           role.Name,
					writable:       boolToInt(role.Writable),
					allowDuplicate: role.AllowDuplicate,
				}
				continue
			}

			prev.writable += boolToInt(role.Writable)
			prev.allowDuplicate = prev.allowDuplicate && role.AllowDuplicate
			if prev.writable > 1 && !prev.allowDuplicate {
				return errors.Wrapf(ErrAliasedWritableAccounts, "accounts %s and %s", prev.role, role.Name)
			}
		}
		return nil
	}

	return walk(root)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
