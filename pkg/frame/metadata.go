package frame

import (
	"encoding/hex"
	"strconv"

	"github.com/code-payments/code-program-framework/pkg/solana"
)

// Declaration metadata, exposed so external tooling (IDL generation, client
// SDKs, scaffolding) can consume a program's interface without executing it.
// The JSON shape is the stable contract; field meanings mirror the Role and
// Instruction declarations.

type ProgramMetadata struct {
	Address      string                `json:"address"`
	Instructions []InstructionMetadata `json:"instructions"`
}

type InstructionMetadata struct {
	Name         string         `json:"name"`
	Discriminant uint8          `json:"discriminant"`
	Accounts     []RoleMetadata `json:"accounts"`
}

type RoleMetadata struct {
	Name           string         `json:"name"`
	Signer         bool           `json:"signer,omitempty"`
	Writable       bool           `json:"writable,omitempty"`
	OwnedByProgram bool           `json:"ownedByProgram,omitempty"`
	Owner          string         `json:"owner,omitempty"`
	Address        string         `json:"address,omitempty"`
	Seeds          []SeedMetadata `json:"seeds,omitempty"`
	Discriminant   string         `json:"discriminant,omitempty"` // hex
	Optional       bool           `json:"optional,omitempty"`
	Init           *InitMetadata  `json:"init,omitempty"`
	Close          *CloseMetadata `json:"close,omitempty"`
	Nested         []RoleMetadata `json:"nested,omitempty"`
}

type SeedMetadata struct {
	Kind  string `json:"kind"`            // const, string, u64, key, account
	Value string `json:"value,omitempty"` // constant value or referenced role
}

type InitMetadata struct {
	Eager  bool   `json:"eager,omitempty"`
	Space  uint64 `json:"space"`
	Funder string `json:"funder"`
}

type CloseMetadata struct {
	Destination string `json:"destination"`
}

// Metadata returns the program's full declaration metadata.
func (p *Program) Metadata() ProgramMetadata {
	md := ProgramMetadata{
		Address: p.id.String(),
	}
	for _, instruction := range p.instructions {
		md.Instructions = append(md.Instructions, InstructionMetadata{
			Name:         instruction.Name,
			Discriminant: instruction.Discriminant,
			Accounts:     rolesMetadata(instruction.Accounts),
		})
	}
	return md
}

func rolesMetadata(roles []Role) []RoleMetadata {
	result := make([]RoleMetadata, 0, len(roles))
	for _, role := range roles {
		md := RoleMetadata{
			Name:           role.Name,
			Signer:         role.Signer,
			Writable:       role.Writable,
			OwnedByProgram: role.OwnedByProgram,
			Optional:       role.Optional,
			Discriminant:   hex.EncodeToString(role.Discriminant),
			Nested:         rolesMetadata(role.Nested),
		}
		if len(role.Nested) == 0 {
			md.Nested = nil
		}
		if role.Owner != nil {
			md.Owner = role.Owner.String()
		}
		if role.Address != nil {
			md.Address = role.Address.String()
		}
		if role.Seeds != nil {
			for _, seed := range role.Seeds.Seeds {
				md.Seeds = append(md.Seeds, seed.seedMetadata())
			}
		}
		if role.Init != nil {
			md.Init = &InitMetadata{
				Eager:  role.Init.Eager,
				Space:  role.Init.Space,
				Funder: role.Init.Funder,
			}
		}
		if role.Close != nil {
			md.Close = &CloseMetadata{Destination: role.Close.Destination}
		}
		result = append(result, md)
	}
	return result
}

func (s BytesSeed) seedMetadata() SeedMetadata {
	return SeedMetadata{Kind: "const", Value: hex.EncodeToString(s)}
}

func (s StringSeed) seedMetadata() SeedMetadata {
	return SeedMetadata{Kind: "string", Value: string(s)}
}

func (s Uint64Seed) seedMetadata() SeedMetadata {
	return SeedMetadata{Kind: "u64", Value: strconv.FormatUint(uint64(s), 10)}
}

func (s KeySeed) seedMetadata() SeedMetadata {
	return SeedMetadata{Kind: "key", Value: solana.PublicKey(s).String()}
}

func (s RoleKeySeed) seedMetadata() SeedMetadata {
	return SeedMetadata{Kind: "account", Value: string(s)}
}
