/*
Package voting implements the token lifecycle and vote recording
engine: the only part of the service with real correctness hazards.

# Flow

	IssueTokens  -> hashed token records, raw tokens returned once
	RedeemToken  -> conditional flip to used, signed credential minted
	CastVote     -> credential verified, window checked, one vote inserted

# Token Lifecycle

Each token moves ISSUED(unused) -> REDEEMED(used) exactly once. The
transition is a store-level conditional update on is_used; when N
redemptions race on the same token, exactly one succeeds and the rest
fail with ErrTokenAlreadyUsed. There is no lock, lease, or queue - the
store's atomic conditional write is the whole mechanism.

# Double-Voting Protection

Enforced at redemption time: one token redemption yields one
credential, and the credential's voter can insert at most one vote per
session (UNIQUE voter_hash guard). The vote insert's own
conditional-write check is defense in depth against replayed requests,
not the primary safeguard.

# Error Taxonomy

All expected outcomes are package sentinels (ErrInvalidToken,
ErrTokenAlreadyUsed, ErrTokenExpired, ErrVotingNotStarted,
ErrVotingClosed, ErrInvalidCandidate, ErrDuplicateVote, ...) matched
with errors.Is. ErrStorage wraps collaborator failures and is kept
distinct from definite precondition failures: a timeout during the
token flip is an unknown outcome, and callers should re-read token
state instead of retrying blindly.

Raw tokens and signing secrets never appear in errors or logs.
*/
package voting
