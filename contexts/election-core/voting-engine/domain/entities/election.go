package entities

// Election is an admin-configured voting window with a fixed option set.
// Finalization is terminal: it clears Active and blocks further votes.
type Election struct {
	ID        uint64
	Start     uint64
	End       uint64
	Active    bool
	Finalized bool
	Options   []uint64
}

// AcceptsVotesAt reports whether the election takes votes at the given
// height. Both window boundaries are inclusive.
func (e Election) AcceptsVotesAt(height uint64) bool {
	return e.Active && !e.Finalized && height >= e.Start && height <= e.End
}

// HasOption reports whether option belongs to the configured option set.
func (e Election) HasOption(option uint64) bool {
	for _, candidate := range e.Options {
		if candidate == option {
			return true
		}
	}
	return false
}

// Settings holds the engine's admin-controlled configuration.
type Settings struct {
	Admin            string
	VoteFee          uint64
	MaxVotesPerVoter uint64
}

// TransferIntent records a value movement for the external ledger to settle.
type TransferIntent struct {
	Amount uint64
	From   string
	To     string
}

// TreasuryPrincipal is the counterparty recorded on self-custodied balance
// deposits and withdrawals.
const TreasuryPrincipal = "contract"
